package api

// Response is the envelope of an Al Adhan timings answer. Code mirrors the
// HTTP status; anything but 200 carries an error message in Status.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data is one day's answer.
type Data struct {
	Timings Timings `json:"timings"`
	Date    Date    `json:"date"`
	Meta    Meta    `json:"meta"`
}

// Timings holds the six daily times as "HH:MM", optionally followed by a
// timezone suffix such as " (BST)".
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// Empty reports whether the provider sent no prayer time at all.
func (t Timings) Empty() bool {
	return t.Fajr == "" && t.Sunrise == "" && t.Dhuhr == "" && t.Asr == "" && t.Maghrib == "" && t.Isha == ""
}

// Date is the requested day in both calendars.
type Date struct {
	Gregorian CalendarDate `json:"gregorian"`
	Hijri     CalendarDate `json:"hijri"`
}

// CalendarDate is the shape both calendars share. Gregorian months have no
// Arabic name.
type CalendarDate struct {
	Day         string      `json:"day"`
	Month       Month       `json:"month"`
	Year        string      `json:"year"`
	Designation Designation `json:"designation"`
}

// Month names a calendar month.
type Month struct {
	Number int    `json:"number"`
	En     string `json:"en"`
	Ar     string `json:"ar"`
}

// Designation is the era, e.g. "AH".
type Designation struct {
	Abbreviated string `json:"abbreviated"`
}

// Format renders "17 October 2026", or "" when a part is missing.
func (d CalendarDate) Format() string {
	if d.Day == "" || d.Month.En == "" || d.Year == "" {
		return ""
	}
	return d.Day + " " + d.Month.En + " " + d.Year
}

// FormatHijri renders a Hijri date with its era: "10 Shaʿbān 1447 AH", or
// "10 شَعْبان 1447 هـ" when arabic is set and the month has an Arabic name.
func (d CalendarDate) FormatHijri(arabic bool) string {
	if arabic && d.Month.Ar != "" && d.Day != "" && d.Year != "" {
		return d.Day + " " + d.Month.Ar + " " + d.Year + " هـ"
	}
	base := d.Format()
	if base == "" {
		return ""
	}
	era := d.Designation.Abbreviated
	if era == "" {
		era = "AH"
	}
	return base + " " + era
}

// Meta describes how the provider computed the answer.
type Meta struct {
	Timezone string `json:"timezone"`
	Method   Method `json:"method"`
}

// Method is the calculation method the provider applied. It is the
// provider's own pick when the request named none.
type Method struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
