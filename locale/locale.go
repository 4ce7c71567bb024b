// Package locale holds the HUD strings in every supported language.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	Score        = "Score: %d"
	Best         = "Best: %d"
	Round        = "Round %d"
	Rank         = "Rank %d of %d"
	WellDone     = "WELL DONE!"
	GameOver     = "GAME OVER"
	RestartHint  = "Press R to restart"
	Offline      = "Offline"
	NetworkError = "Network or server error."
	EnableOnline = "Enable online mode."
	NameTooShort = "The player name must be at least 4 characters."
	Registered   = "Registered as %s."
)

var supported = []language.Tag{language.English, language.Russian}

var russian = map[string]string{
	Score:        "Очки: %d",
	Best:         "Макс Очко: %d",
	Round:        "Раунд %d",
	Rank:         "Место %d из %d",
	WellDone:     "МОЛОДЕЦ!",
	GameOver:     "ИГРА ОКОНЧЕНА",
	RestartHint:  "Нажмите R для новой игры",
	Offline:      "Оффлайн",
	NetworkError: "Ошибка подключения к интернету или серверная ошибка.",
	EnableOnline: "Включите ONLINE режим.",
	NameTooShort: "Имя пользователя не может быть меньше 4 символов.",
	Registered:   "Вы вошли как %s.",
}

// Strings formats messages for one language.
type Strings struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the strings for the supported language closest to tag.
func New(tag language.Tag) *Strings {
	_, index, _ := language.NewMatcher(supported).Match(tag)
	best := supported[index]

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range russian {
		_ = b.SetString(language.Russian, key, msg)
	}

	return &Strings{
		tag:     best,
		printer: message.NewPrinter(best, message.Catalog(b)),
	}
}

// Tag returns the language in use.
func (s *Strings) Tag() language.Tag {
	return s.tag
}

// Sprintf formats the message registered under key.
func (s *Strings) Sprintf(key string, args ...any) string {
	return s.printer.Sprintf(key, args...)
}
