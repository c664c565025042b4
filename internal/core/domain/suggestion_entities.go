package domain

// CitySuggestion - подсказка по городу.
type CitySuggestion struct {
	City            string
	StateOrProvince string
}

// CountySuggestion - подсказка по округу.
type CountySuggestion struct {
	County          string
	StateOrProvince string
}

// PropertySuggestion - прямая подсказка-объявление. Её выбор уводит
// пользователя на страницу объекта, минуя поисковый конвейер.
type PropertySuggestion struct {
	ListingKey string
	Title      string
}

// SuggestionSet - группы автодополнения для введённого текста.
type SuggestionSet struct {
	Cities     []CitySuggestion
	Counties   []CountySuggestion
	Properties []PropertySuggestion
}

func (s SuggestionSet) IsEmpty() bool {
	return len(s.Cities) == 0 && len(s.Counties) == 0 && len(s.Properties) == 0
}
