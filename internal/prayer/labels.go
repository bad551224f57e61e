package prayer

import "fmt"

// Locale selects one of the fixed label tables.
type Locale string

const (
	English Locale = "en"
	Arabic  Locale = "ar"
)

// ParseLocale validates a locale code. Empty means English.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case "", English:
		return English, nil
	case Arabic:
		return Arabic, nil
	default:
		return "", fmt.Errorf("invalid locale %q: must be \"en\" or \"ar\"", s)
	}
}

var names = map[Locale][Count]string{
	English: {"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"},
	Arabic:  {"الفجر", "الشروق", "الظهر", "العصر", "المغرب", "العشاء"},
}

// ShortNames maps each prayer to a short abbreviation for status bars.
var ShortNames = [Count]string{"F", "S", "D", "A", "M", "I"}

// Label returns the display name of id in the given locale.
func Label(id ID, loc Locale) string {
	table, ok := names[loc]
	if !ok {
		table = names[English]
	}
	if !id.Valid() {
		return id.String()
	}
	return table[id]
}

func (l Locale) am() string {
	if l == Arabic {
		return "ص"
	}
	return "AM"
}

func (l Locale) pm() string {
	if l == Arabic {
		return "م"
	}
	return "PM"
}

// GeocodeLanguage is the language code sent to the reverse geocoder.
func (l Locale) GeocodeLanguage() string {
	if l == Arabic {
		return "ar"
	}
	return "en"
}
