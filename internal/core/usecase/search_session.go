package usecase

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"property-search-service/internal/constants"
	"property-search-service/internal/contextkeys"
	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
	usecases_port "property-search-service/internal/core/port/usecases_port"
)

// SearchSessionDeps - зависимости поисковой сессии. Все внешние участники
// (бэкенд, карта, адресная строка, навигация) заходят через порты.
type SearchSessionDeps struct {
	Results   usecases_port.FetchResultsUseCase
	Suggest   usecases_port.SuggestListingsUseCase
	Favorites usecases_port.ToggleFavoriteUseCase
	Counties  usecases_port.LoadCountyCirclesUseCase
	View      port.ViewSinkPort
	MapWidget port.MapWidgetPort
	URL       port.URLSinkPort
	Navigator port.NavigatorPort
	Logger    port.LoggerPort
}

// SearchSession - оркестратор одного вида (сетка или карта): владеет
// QueryState и коллекцией выдачи, переводит действия пользователя в
// запросы и согласует ответы обратно в состояние.
//
// Дисциплина конкурентности: состояние мутирует только под mu; каждый
// replace-запрос получает монотонный номер при выстреле, и применяется
// только ответ с актуальным номером. Append сериализован флагом
// loadingMore и дополнительно привязан к поколению replace - смена
// фильтров в полёте обесценивает и его.
type SearchSession struct {
	mode domain.ViewMode
	deps SearchSessionDeps

	mu             sync.Mutex
	query          domain.QueryState
	pendingText    string
	listings       []domain.ListingSummary
	meta           domain.PageMeta
	phase          domain.SessionPhase
	fetchSeq       uint64
	replacePending bool
	loadingMore    bool
	favoriteIDs    map[string]struct{}
	lastError      string
}

// NewSearchSession создаёт сессию вида. Сетка восстанавливает QueryState
// из URL; карта всегда стартует с чистого состояния (fresh-session) и
// параметры входного URL игнорирует.
func NewSearchSession(mode domain.ViewMode, initial url.Values, deps SearchSessionDeps) *SearchSession {
	var query domain.QueryState
	if mode == domain.ViewModeMap {
		query = domain.NewQueryState(constants.MapPageSize)
	} else {
		query = domain.QueryStateFromValues(initial, constants.GridPageSize)
	}

	return &SearchSession{
		mode:        mode,
		deps:        deps,
		query:       query,
		pendingText: query.SearchText,
		phase:       domain.PhaseIdle,
		favoriteIDs: make(map[string]struct{}),
	}
}

// Start выполняет работу монтирования: проецирует состояние в URL,
// на сетке выстреливает первый запрос, на карте грузит круги округов.
// Неограниченный запрос "всех объектов" на первом кадре карты не
// выполняется намеренно.
func (s *SearchSession) Start(ctx context.Context) {
	ctx, _ = s.interactionContext(ctx, "mount")

	s.mu.Lock()
	s.pushURLLocked()
	if s.mode == domain.ViewModeMap {
		s.renderLocked()
		s.syncMapLocked()
		s.mu.Unlock()
		go s.loadCountyCircles(ctx)
		return
	}
	s.issueReplaceLocked(ctx)
	s.mu.Unlock()
}

// StartAutoRefresh запускает фоновый повтор текущего replace-запроса.
// Останавливается с отменой контекста.
func (s *SearchSession) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.AutoRefreshInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rctx, _ := s.interactionContext(ctx, "auto_refresh")
				s.mu.Lock()
				if s.phase == domain.PhaseIdle || s.loadingMore {
					s.mu.Unlock()
					continue
				}
				s.issueReplaceLocked(rctx)
				s.mu.Unlock()
			}
		}
	}()
}

// --- ввод текста и подсказки ---

// OnSearchInput вызывается на каждое нажатие клавиши в поле поиска.
// QueryState при этом не меняется: текст фиксируется только на Enter
// или при выборе подсказки.
func (s *SearchSession) OnSearchInput(ctx context.Context, text string) {
	ctx, _ = s.interactionContext(ctx, "search_input")
	s.mu.Lock()
	s.pendingText = text
	s.mu.Unlock()
	s.deps.Suggest.OnTextChanged(ctx, text)
}

// SubmitSearch - Enter в поле поиска: закрывает подсказки и фиксирует
// набранный текст как поисковое ограничение.
func (s *SearchSession) SubmitSearch(ctx context.Context) {
	ctx, _ = s.interactionContext(ctx, "submit_search")
	s.deps.Suggest.Dismiss()

	s.mu.Lock()
	text := s.pendingText
	if strings.TrimSpace(text) == "" && s.query.SearchText == "" {
		// Пустой поиск при пустом состоянии - нечего отправлять.
		s.mu.Unlock()
		return
	}
	s.applyPatchLocked(ctx, domain.QueryPatch{SearchText: &text})
	s.mu.Unlock()
}

func (s *SearchSession) SelectCitySuggestion(ctx context.Context, c domain.CitySuggestion) {
	s.commitSearchText(ctx, "select_city_suggestion", c.City)
}

func (s *SearchSession) SelectCountySuggestion(ctx context.Context, c domain.CountySuggestion) {
	s.commitSearchText(ctx, "select_county_suggestion", c.County)
}

// SelectPropertySuggestion уводит на страницу объявления, минуя поисковый
// конвейер.
func (s *SearchSession) SelectPropertySuggestion(ctx context.Context, p domain.PropertySuggestion) {
	s.deps.Suggest.Dismiss()
	s.deps.Navigator.OpenListing(p.ListingKey)
}

// DismissSuggestions - клик вне области ввода.
func (s *SearchSession) DismissSuggestions(ctx context.Context) {
	s.deps.Suggest.Dismiss()
}

func (s *SearchSession) commitSearchText(ctx context.Context, action, text string) {
	ctx, _ = s.interactionContext(ctx, action)
	s.deps.Suggest.Dismiss()

	s.mu.Lock()
	s.pendingText = text
	s.applyPatchLocked(ctx, domain.QueryPatch{SearchText: &text})
	s.mu.Unlock()
}

// --- фильтры, сортировка, пагинация ---

func (s *SearchSession) SetSort(ctx context.Context, field domain.SortField, order domain.SortOrder) {
	ctx, _ = s.interactionContext(ctx, "set_sort")
	s.mu.Lock()
	s.applyPatchLocked(ctx, domain.QueryPatch{SortField: &field, SortOrder: &order})
	s.mu.Unlock()
}

func (s *SearchSession) SetPropertyType(ctx context.Context, value string) {
	ctx, _ = s.interactionContext(ctx, "set_property_type")
	s.mu.Lock()
	s.applyPatchLocked(ctx, domain.QueryPatch{PropertyType: &value})
	s.mu.Unlock()
}

func (s *SearchSession) SetPropertySubtype(ctx context.Context, value string) {
	ctx, _ = s.interactionContext(ctx, "set_property_subtype")
	s.mu.Lock()
	s.applyPatchLocked(ctx, domain.QueryPatch{PropertySubtype: &value})
	s.mu.Unlock()
}

// SetMLSActiveOnly включает или снимает фильтр по статусу Active.
func (s *SearchSession) SetMLSActiveOnly(ctx context.Context, on bool) {
	ctx, _ = s.interactionContext(ctx, "set_mls_status")
	value := ""
	if on {
		value = domain.MLSStatusActive
	}
	s.mu.Lock()
	s.applyPatchLocked(ctx, domain.QueryPatch{MLSStatusFilter: &value})
	s.mu.Unlock()
}

// SelectCounty - клик по кругу округа на карте: ставит фильтр округа и
// сбрасывает свободный текст.
func (s *SearchSession) SelectCounty(ctx context.Context, county string) {
	ctx, logger := s.interactionContext(ctx, "select_county")
	if s.mode != domain.ViewModeMap {
		logger.Warn("County selection is a map-view interaction, ignoring", nil)
		return
	}
	empty := ""
	s.mu.Lock()
	s.pendingText = ""
	s.applyPatchLocked(ctx, domain.QueryPatch{County: &county, SearchText: &empty})
	s.mu.Unlock()
}

// GoToPage - явный переход по страницам в сеточном виде. Единственная
// мутация QueryState, не сбрасывающая номер страницы.
func (s *SearchSession) GoToPage(ctx context.Context, page int) {
	ctx, _ = s.interactionContext(ctx, "go_to_page")
	s.mu.Lock()
	s.applyPatchLocked(ctx, domain.QueryPatch{Page: &page})
	s.mu.Unlock()
}

// ClearFilters сбрасывает сортировку и все фильтры, сохраняя свободный
// текст поиска. Контракт один для обоих видов.
func (s *SearchSession) ClearFilters(ctx context.Context) {
	ctx, _ = s.interactionContext(ctx, "clear_filters")
	var (
		sortField = domain.SortFieldCreatedAt
		sortOrder = domain.SortOrderDesc
		empty     = ""
	)
	s.mu.Lock()
	s.applyPatchLocked(ctx, domain.QueryPatch{
		SortField:       &sortField,
		SortOrder:       &sortOrder,
		MLSStatusFilter: &empty,
		PropertyType:    &empty,
		PropertySubtype: &empty,
		County:          &empty,
	})
	s.mu.Unlock()
}

// --- Load More (только карта) ---

// LoadMore догружает следующую страницу в конец коллекции. Отклонённая
// догрузка сообщает причину: другой запрос в полёте или страницы
// кончились.
func (s *SearchSession) LoadMore(ctx context.Context) error {
	ctx, logger := s.interactionContext(ctx, "load_more")
	if s.mode != domain.ViewModeMap {
		logger.Warn("Load more is a map-view interaction, ignoring", nil)
		return nil
	}

	s.mu.Lock()
	switch {
	case s.phase == domain.PhaseIdle:
		s.mu.Unlock()
		return nil
	case s.loadingMore:
		logger.Debug("Load more already in flight, ignoring", nil)
		s.mu.Unlock()
		return domain.ErrLoadMoreInFlight
	case s.replacePending:
		// Пока replace текущего поколения не разрешился, meta принадлежит
		// прежнему запросу - догружать по ней нельзя.
		logger.Debug("Replace request still in flight, load more rejected", nil)
		s.mu.Unlock()
		return domain.ErrLoadMoreInFlight
	case !s.meta.HasMorePages():
		logger.Debug("No more pages to load", port.Fields{"current_page": s.meta.CurrentPage})
		s.mu.Unlock()
		return domain.ErrNoMorePages
	}

	s.loadingMore = true
	s.phase = domain.PhaseLoadingMore
	issued := s.fetchSeq
	query := s.query
	query.Page = s.meta.CurrentPage + 1
	s.renderLocked()
	s.mu.Unlock()

	go func() {
		page, err := s.deps.Results.Execute(ctx, s.mode, query)
		s.applyAppend(ctx, issued, page, err)
	}()
	return nil
}

// --- избранное ---

// ToggleFavorite - двухфазное оптимистичное обновление: локальное
// изменение сразу, вызов бэкенда следом, откат при неудаче.
func (s *SearchSession) ToggleFavorite(ctx context.Context, listingID string) {
	ctx, logger := s.interactionContext(ctx, "toggle_favorite")

	s.mu.Lock()
	_, was := s.favoriteIDs[listingID]
	target := !was
	s.setFavoriteLocked(listingID, target)
	s.renderLocked()
	s.mu.Unlock()

	go func() {
		err := s.deps.Favorites.Execute(ctx, listingID, target)
		if err == nil {
			return
		}

		// Компенсирующее действие вместо молчаливого расхождения.
		s.mu.Lock()
		s.setFavoriteLocked(listingID, was)
		if errors.Is(err, domain.ErrNotAuthenticated) {
			s.renderLocked()
			s.mu.Unlock()
			s.deps.Navigator.RedirectToLogin()
			return
		}
		logger.Warn("Favorite toggle rolled back", port.Fields{"error": err.Error()})
		s.lastError = "failed to update favorites"
		s.renderLocked()
		s.mu.Unlock()
	}()
}

func (s *SearchSession) setFavoriteLocked(listingID string, favorite bool) {
	if favorite {
		s.favoriteIDs[listingID] = struct{}{}
	} else {
		delete(s.favoriteIDs, listingID)
	}
}

// Snapshot возвращает текущий срез состояния без перерисовки.
func (s *SearchSession) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// --- внутренности ---

// applyPatchLocked - общий путь всех мутаций QueryState: влить патч,
// спроецировать в URL, выстрелить replace-запрос.
func (s *SearchSession) applyPatchLocked(ctx context.Context, patch domain.QueryPatch) {
	s.query = s.query.Apply(patch)
	s.pushURLLocked()
	s.issueReplaceLocked(ctx)
}

// issueReplaceLocked нумерует и выстреливает replace-запрос. На карте без
// единого ограничения запрос не уходит - остаются только круги округов.
func (s *SearchSession) issueReplaceLocked(ctx context.Context) {
	s.fetchSeq++
	issued := s.fetchSeq

	if s.mode == domain.ViewModeMap && !s.query.HasListingConstraints() {
		s.listings = nil
		s.meta = domain.PageMeta{}
		s.phase = domain.PhaseIdle
		s.replacePending = false
		s.lastError = ""
		s.renderLocked()
		s.syncMapLocked()
		return
	}

	prevPhase := s.phase
	s.phase = domain.PhaseQuerying
	s.replacePending = true
	query := s.query
	s.renderLocked()

	go func() {
		page, err := s.deps.Results.Execute(ctx, s.mode, query)
		s.applyReplace(ctx, issued, prevPhase, page, err)
	}()
}

func (s *SearchSession) applyReplace(ctx context.Context, issued uint64, prevPhase domain.SessionPhase, page *domain.ResultPage, err error) {
	logger := contextkeys.LoggerFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if issued != s.fetchSeq {
		// Тот же принцип, что и у подсказок: применяется только ответ
		// последнего выданного запроса.
		logger.Debug("Replace response superseded, discarding", port.Fields{"issued": issued, "current": s.fetchSeq})
		return
	}

	s.replacePending = false

	if err != nil {
		// Прежняя выдача остаётся на экране, автоповтора нет. Фаза
		// возвращается к состоянию до выстрела: карта без данных снова
		// idle, а не "запрашивает".
		s.lastError = "failed to load listings"
		s.phase = prevPhase
		if prevPhase == domain.PhaseLoadingMore {
			s.phase = domain.PhaseQuerying
		}
		s.renderLocked()
		return
	}

	s.lastError = ""
	s.listings = page.Items
	s.meta = page.Meta
	if len(page.Items) == 0 {
		s.phase = domain.PhaseEmpty
	} else {
		s.phase = domain.PhaseQuerying
	}
	s.renderLocked()
	s.syncMapLocked()
}

func (s *SearchSession) applyAppend(ctx context.Context, issued uint64, page *domain.ResultPage, err error) {
	logger := contextkeys.LoggerFromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadingMore = false

	if issued != s.fetchSeq {
		// Пока страница грузилась, фильтры сменились - дописывать
		// нечего и некуда.
		logger.Debug("Append response belongs to a superseded query, discarding", nil)
		s.renderLocked()
		return
	}

	if err != nil {
		s.lastError = "failed to load more listings"
		s.phase = domain.PhaseQuerying
		s.renderLocked()
		return
	}

	s.lastError = ""
	s.listings = append(s.listings, page.Items...)
	s.meta = page.Meta
	// Номер страницы продвигается только через meta полученного ответа.
	s.query.Page = page.Meta.CurrentPage
	s.phase = domain.PhaseQuerying
	s.pushURLLocked()
	s.renderLocked()
	s.syncMapLocked()
}

func (s *SearchSession) loadCountyCircles(ctx context.Context) {
	logger := contextkeys.LoggerFromContext(ctx)
	circles, err := s.deps.Counties.Execute(ctx)
	if err != nil {
		// Деградация: карта без кликабельных кругов, но живая.
		logger.Warn("County circles unavailable", port.Fields{"error": err.Error()})
		circles = nil
	}
	s.deps.MapWidget.SetCountyCircles(circles)
}

func (s *SearchSession) pushURLLocked() {
	s.deps.URL.ReplaceQuery(s.query.Values())
}

func (s *SearchSession) renderLocked() {
	s.deps.View.RenderSession(s.snapshotLocked())
}

func (s *SearchSession) snapshotLocked() domain.SessionSnapshot {
	favorites := make([]string, 0, len(s.favoriteIDs))
	for id := range s.favoriteIDs {
		favorites = append(favorites, id)
	}
	sort.Strings(favorites)

	return domain.SessionSnapshot{
		Phase:        s.phase,
		Query:        s.query,
		Listings:     append([]domain.ListingSummary(nil), s.listings...),
		Meta:         s.meta,
		FavoriteIDs:  favorites,
		CanLoadMore:  s.mode == domain.ViewModeMap && s.phase != domain.PhaseIdle && !s.loadingMore && !s.replacePending && s.meta.HasMorePages(),
		ErrorMessage: s.lastError,
	}
}

func (s *SearchSession) syncMapLocked() {
	if s.mode != domain.ViewModeMap {
		return
	}
	markers := ProjectMarkers(s.listings)
	s.deps.MapWidget.SetMarkers(markers)
	s.deps.MapWidget.SetCenter(SelectCenter(markers, s.query.County))
}

// interactionContext снабжает каждое действие пользователя собственным
// trace_id и обогащённым логгером.
func (s *SearchSession) interactionContext(ctx context.Context, action string) (context.Context, port.LoggerPort) {
	traceID := uuid.New().String()
	logger := s.deps.Logger.WithFields(port.Fields{
		"trace_id": traceID,
		"action":   action,
		"view":     s.mode,
	})
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, logger)
	return ctx, logger
}
