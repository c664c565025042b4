package domain

// ViewMode - режим представления выдачи.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeMap  ViewMode = "map"
)

// SessionPhase - фаза поисковой сессии.
type SessionPhase string

const (
	// PhaseIdle - ограничений поиска нет, запрос объявлений не выполнялся.
	PhaseIdle SessionPhase = "idle"
	// PhaseQuerying - replace-запрос в полёте или уже применён.
	PhaseQuerying SessionPhase = "querying"
	// PhaseLoadingMore - append-запрос в полёте, Load More заблокирован.
	PhaseLoadingMore SessionPhase = "loading_more"
	// PhaseEmpty - завершённый replace-запрос вернул ноль объявлений.
	// Отличается от Idle: это явное "ничего не найдено", а не отсутствие
	// запроса.
	PhaseEmpty SessionPhase = "empty"
)

// SessionSnapshot - срез состояния сессии для слоя отображения.
type SessionSnapshot struct {
	Phase       SessionPhase
	Query       QueryState
	Listings    []ListingSummary
	Meta        PageMeta
	FavoriteIDs []string
	CanLoadMore bool
	// ErrorMessage не пустое, когда последний запрос завершился ошибкой;
	// данные при этом остаются прежними.
	ErrorMessage string
}
