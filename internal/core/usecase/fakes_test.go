package usecase

import (
	"context"
	"net/url"
	"sync"
	"time"

	"property-search-service/internal/core/domain"
	"property-search-service/internal/core/port"
)

// stubMarketplaceAPI - заглушка порта бэкенда; нужные методы
// переопределяются функциями-полями.
type stubMarketplaceAPI struct {
	searchListings    func(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error)
	searchMapListings func(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error)
	fetchSuggestions  func(ctx context.Context, text string) (*domain.SuggestionSet, error)
	fetchCounties     func(ctx context.Context) ([]string, error)
	addFavorite       func(ctx context.Context, token, listingID string) error
	removeFavorite    func(ctx context.Context, token, listingID string) error
}

func (s *stubMarketplaceAPI) SearchListings(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error) {
	if s.searchListings == nil {
		return &domain.ResultPage{}, nil
	}
	return s.searchListings(ctx, q)
}

func (s *stubMarketplaceAPI) SearchMapListings(ctx context.Context, q domain.ListingSearchQuery) (*domain.ResultPage, error) {
	if s.searchMapListings == nil {
		return &domain.ResultPage{}, nil
	}
	return s.searchMapListings(ctx, q)
}

func (s *stubMarketplaceAPI) FetchSuggestions(ctx context.Context, text string) (*domain.SuggestionSet, error) {
	if s.fetchSuggestions == nil {
		return &domain.SuggestionSet{}, nil
	}
	return s.fetchSuggestions(ctx, text)
}

func (s *stubMarketplaceAPI) FetchCounties(ctx context.Context) ([]string, error) {
	if s.fetchCounties == nil {
		return nil, nil
	}
	return s.fetchCounties(ctx)
}

func (s *stubMarketplaceAPI) AddFavorite(ctx context.Context, token, listingID string) error {
	if s.addFavorite == nil {
		return nil
	}
	return s.addFavorite(ctx, token, listingID)
}

func (s *stubMarketplaceAPI) RemoveFavorite(ctx context.Context, token, listingID string) error {
	if s.removeFavorite == nil {
		return nil
	}
	return s.removeFavorite(ctx, token, listingID)
}

// manualDebouncer даёт тесту полный контроль над моментом срабатывания.
type manualDebouncer struct {
	mu        sync.Mutex
	pending   func()
	gen       int
	scheduled int
	cancelled int
}

func (d *manualDebouncer) Schedule(fn func()) port.CancelFunc {
	d.mu.Lock()
	d.scheduled++
	gen := d.scheduled
	d.gen = gen
	d.pending = fn
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		d.cancelled++
		if d.gen == gen {
			d.pending = nil
		}
		d.mu.Unlock()
	}
}

// firePending выполняет отложенную задачу, как будто окно тишины истекло.
func (d *manualDebouncer) firePending() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (d *manualDebouncer) scheduleCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scheduled
}

type suggestionEvent struct {
	cleared bool
	set     domain.SuggestionSet
}

type recordingSuggestionSink struct {
	mu     sync.Mutex
	events []suggestionEvent
}

func (s *recordingSuggestionSink) RenderSuggestions(set domain.SuggestionSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, suggestionEvent{set: set})
}

func (s *recordingSuggestionSink) ClearSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, suggestionEvent{cleared: true})
}

func (s *recordingSuggestionSink) snapshot() []suggestionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]suggestionEvent(nil), s.events...)
}

// --- фейки для SearchSession ---

type resultReply struct {
	page *domain.ResultPage
	err  error
}

type resultCall struct {
	view  domain.ViewMode
	query domain.QueryState
	reply chan resultReply
}

// blockingResults держит каждый Execute заблокированным, пока тест не
// пришлёт ответ - так моделируются гонки сети.
type blockingResults struct {
	calls chan resultCall
}

func newBlockingResults() *blockingResults {
	return &blockingResults{calls: make(chan resultCall, 16)}
}

func (f *blockingResults) Execute(ctx context.Context, view domain.ViewMode, query domain.QueryState) (*domain.ResultPage, error) {
	call := resultCall{view: view, query: query, reply: make(chan resultReply, 1)}
	f.calls <- call
	r := <-call.reply
	return r.page, r.err
}

// nextCall забирает очередной выстреливший запрос или валит тест по
// таймауту.
func (f *blockingResults) nextCall(timeout time.Duration) (resultCall, bool) {
	select {
	case c := <-f.calls:
		return c, true
	case <-time.After(timeout):
		return resultCall{}, false
	}
}

func (f *blockingResults) noCall(d time.Duration) bool {
	select {
	case c := <-f.calls:
		// Вернуть обратно не получится; сигнализируем и отвечаем пустым.
		c.reply <- resultReply{page: &domain.ResultPage{}}
		return false
	case <-time.After(d):
		return true
	}
}

type fakeSuggest struct {
	mu        sync.Mutex
	texts     []string
	dismissed int
}

func (f *fakeSuggest) OnTextChanged(ctx context.Context, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
}

func (f *fakeSuggest) Dismiss() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
}

type favoriteCall struct {
	listingID string
	favorite  bool
}

type fakeFavorites struct {
	mu    sync.Mutex
	err   error
	calls []favoriteCall
	done  chan struct{}
}

func newFakeFavorites(err error) *fakeFavorites {
	return &fakeFavorites{err: err, done: make(chan struct{}, 16)}
}

func (f *fakeFavorites) Execute(ctx context.Context, listingID string, favorite bool) error {
	f.mu.Lock()
	f.calls = append(f.calls, favoriteCall{listingID: listingID, favorite: favorite})
	err := f.err
	f.mu.Unlock()
	f.done <- struct{}{}
	return err
}

type fakeCounties struct {
	circles []domain.CountyCircle
	err     error
	done    chan struct{}
}

func newFakeCounties(circles []domain.CountyCircle, err error) *fakeCounties {
	return &fakeCounties{circles: circles, err: err, done: make(chan struct{}, 1)}
}

func (f *fakeCounties) Execute(ctx context.Context) ([]domain.CountyCircle, error) {
	defer func() { f.done <- struct{}{} }()
	return f.circles, f.err
}

type fakeView struct {
	snapshots chan domain.SessionSnapshot
}

func newFakeView() *fakeView {
	return &fakeView{snapshots: make(chan domain.SessionSnapshot, 64)}
}

func (v *fakeView) RenderSession(s domain.SessionSnapshot) {
	v.snapshots <- s
}

// waitSnapshot ждёт срез, удовлетворяющий предикату.
func (v *fakeView) waitSnapshot(timeout time.Duration, pred func(domain.SessionSnapshot) bool) (domain.SessionSnapshot, bool) {
	deadline := time.After(timeout)
	for {
		select {
		case s := <-v.snapshots:
			if pred(s) {
				return s, true
			}
		case <-deadline:
			return domain.SessionSnapshot{}, false
		}
	}
}

type fakeMapWidget struct {
	mu      sync.Mutex
	markers []domain.MapMarker
	center  domain.Coordinates
	circles []domain.CountyCircle
	setOps  chan struct{}
}

func newFakeMapWidget() *fakeMapWidget {
	return &fakeMapWidget{setOps: make(chan struct{}, 64)}
}

func (m *fakeMapWidget) SetMarkers(markers []domain.MapMarker) {
	m.mu.Lock()
	m.markers = markers
	m.mu.Unlock()
	m.setOps <- struct{}{}
}

func (m *fakeMapWidget) SetCenter(center domain.Coordinates) {
	m.mu.Lock()
	m.center = center
	m.mu.Unlock()
}

func (m *fakeMapWidget) SetCountyCircles(circles []domain.CountyCircle) {
	m.mu.Lock()
	m.circles = circles
	m.mu.Unlock()
	m.setOps <- struct{}{}
}

func (m *fakeMapWidget) markerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

type fakeURLSink struct {
	mu     sync.Mutex
	values []url.Values
}

func (u *fakeURLSink) ReplaceQuery(values url.Values) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.values = append(u.values, values)
}

func (u *fakeURLSink) last() url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.values) == 0 {
		return nil
	}
	return u.values[len(u.values)-1]
}

type fakeNavigator struct {
	mu       sync.Mutex
	listings []string
	logins   int
	events   chan string
}

func newFakeNavigator() *fakeNavigator {
	return &fakeNavigator{events: make(chan string, 16)}
}

func (n *fakeNavigator) OpenListing(listingKey string) {
	n.mu.Lock()
	n.listings = append(n.listings, listingKey)
	n.mu.Unlock()
	n.events <- "listing:" + listingKey
}

func (n *fakeNavigator) RedirectToLogin() {
	n.mu.Lock()
	n.logins++
	n.mu.Unlock()
	n.events <- "login"
}

type noopLogger struct{}

func (noopLogger) Info(msg string, fields port.Fields)             {}
func (noopLogger) Warn(msg string, fields port.Fields)             {}
func (noopLogger) Error(msg string, err error, fields port.Fields) {}
func (noopLogger) Debug(msg string, fields port.Fields)            {}
func (noopLogger) WithFields(fields port.Fields) port.LoggerPort   { return noopLogger{} }
