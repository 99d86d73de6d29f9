package view

import (
	"fmt"
	"strings"
	"time"
)

var months = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

var weekdays = [...]string{
	"domenica", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato",
}

// FormatDate renders t as "15 gennaio 2024". Zero times render empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatLongDate renders t as "giovedì 18 gennaio 2024".
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return weekdays[t.Weekday()] + " " + FormatDate(t)
}

var maritalLabels = map[string]string{
	"celibe":     "Celibe",
	"nubile":     "Nubile",
	"coniugato":  "Coniugato/a",
	"vedovo":     "Vedovo/a",
	"divorziato": "Divorziato/a",
}

var spouseLinks = map[string]string{
	"coniugato":  "con",
	"vedovo":     "di",
	"divorziato": "da",
}

// MaritalStatusText renders a marital status with the spouse name when the
// status has one.
func MaritalStatusText(status, spouse string) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return ""
	}
	text, ok := maritalLabels[status]
	if !ok {
		text = status
	}
	if link, ok := spouseLinks[status]; ok && strings.TrimSpace(spouse) != "" {
		text += " " + link + " " + strings.TrimSpace(spouse)
	}
	return text
}
