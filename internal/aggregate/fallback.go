package aggregate

import (
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// Placeholders are the demonstration records shown when no source has any
// data. Ids are bare so they also resolve from old static links.
func Placeholders() []obituary.Obituary {
	return []obituary.Obituary{
		{
			ID:              "1",
			Name:            "Mario Rossi",
			BirthDate:       ptr(day(1945, time.March, 15)),
			DeathDate:       day(2024, time.January, 15),
			Age:             ptr(78),
			City:            "Nola",
			Photo:           "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=300&h=400&fit=crop&crop=face",
			FuneralDate:     day(2024, time.January, 18),
			FuneralTime:     "10:00",
			FuneralLocation: "Chiesa San Giuseppe, Via Roma 45, Nola",
			BodyText:        "Ci ha lasciati serenamente circondato dall'affetto dei suoi cari. Marito devoto, padre amorevole e nonno premuroso, sarà sempre nei nostri cuori.",
			Condolences:     []obituary.Condolence{},
			Source:          obituary.SourceStatic,
		},
		{
			ID:              "2",
			Name:            "Anna Bianchi",
			BirthDate:       ptr(day(1952, time.July, 22)),
			DeathDate:       day(2024, time.January, 14),
			Age:             ptr(71),
			City:            "Nola",
			Photo:           "https://images.unsplash.com/photo-1544725121-be3bf52e2dc8?w=300&h=400&fit=crop&crop=face",
			FuneralDate:     day(2024, time.January, 17),
			FuneralTime:     "15:30",
			FuneralLocation: "Chiesa Santa Maria, Piazza del Duomo 12, Nola",
			BodyText:        "Una donna di grande fede e generosità, ha dedicato la sua vita alla famiglia e al prossimo. Il suo sorriso e la sua bontà rimarranno per sempre con noi.",
			Condolences:     []obituary.Condolence{},
			Source:          obituary.SourceStatic,
		},
		{
			ID:              "3",
			Name:            "Giuseppe Verdi",
			BirthDate:       ptr(day(1940, time.November, 8)),
			DeathDate:       day(2024, time.January, 13),
			Age:             ptr(83),
			City:            "Caserta",
			Photo:           "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=300&h=400&fit=crop&crop=face",
			FuneralDate:     day(2024, time.January, 16),
			FuneralTime:     "11:00",
			FuneralLocation: "Chiesa San Francesco, Via Nazionale 78, Caserta",
			BodyText:        "Maestro di vita e di lavoro, ha lasciato un segno indelebile in tutti coloro che hanno avuto la fortuna di conoscerlo. Riposa in pace.",
			Condolences:     []obituary.Condolence{},
			Source:          obituary.SourceStatic,
		},
	}
}
