package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"go.uber.org/zap"
)

var ErrIncomplete = errors.New("record has no id or name")

// fields is the common shape every native record is reduced to before the
// shared rules run.
type fields struct {
	rawID           string
	name            string
	birthDate       string
	deathDate       string
	age             *int
	city            string
	body            string
	photo           string
	photoFile       *obituary.Attachment
	attachment      *obituary.Attachment
	funeralDate     string
	funeralTime     string
	funeralLocation string
	maritalStatus   string
	spouseName      string
}

// Normalize maps one native record into an Obituary.
func Normalize(rec source.NativeRecord) (obituary.Obituary, error) {
	var f fields
	switch r := rec.(type) {
	case source.RemoteRecord:
		f = fields{
			rawID:           r.ID,
			name:            r.Name,
			birthDate:       r.BirthDate,
			deathDate:       r.DeathDate,
			age:             r.Age,
			city:            r.City,
			body:            r.Description,
			photo:           r.PhotoLink,
			photoFile:       r.Photo,
			attachment:      r.Manifesto,
			funeralDate:     r.FuneralDate,
			funeralLocation: orDefault(r.FuneralLocation, obituary.DefaultFuneralLocation),
			maritalStatus:   r.MaritalStatus,
			spouseName:      r.SpouseName,
		}
	case source.ManifestRecord:
		f = fields{
			rawID:           string(r.ID),
			name:            r.Name,
			birthDate:       r.BirthDate,
			deathDate:       r.DeathDate,
			age:             r.Age.Ptr(),
			city:            r.City,
			body:            r.Description,
			photo:           r.Photo,
			funeralDate:     r.FuneralDate,
			funeralTime:     r.FuneralTime,
			funeralLocation: r.FuneralLocation,
			maritalStatus:   r.MaritalStatus,
			spouseName:      r.SpouseName,
		}
	case source.LocalRecord:
		age := r.Age.Ptr()
		if age == nil {
			age = r.Eta.Ptr()
		}
		f = fields{
			rawID:           string(r.ID),
			name:            firstOf(r.Name, r.Nome),
			birthDate:       firstOf(r.BirthDate, r.DataNascita),
			deathDate:       firstOf(r.DeathDate, r.DataMorte),
			age:             age,
			city:            firstOf(r.City, r.Comune),
			body:            firstOf(r.Description, r.Testo),
			photo:           firstOf(r.Foto, r.Photo),
			photoFile:       r.PhotoFile,
			attachment:      r.ManifestoFile,
			funeralDate:     firstOf(r.FuneralDate, r.DataEsequie),
			funeralTime:     r.OraEsequie,
			funeralLocation: orDefault(firstOf(r.FuneralLocation, r.LuogoEsequie), obituary.DefaultFuneralLocation),
			maritalStatus:   firstOf(r.MaritalStatus, r.StatoCivile),
			spouseName:      firstOf(r.SpouseName, r.Coniuge),
		}
	case nil:
		return obituary.Obituary{}, fmt.Errorf("nil record: %w", ErrIncomplete)
	default:
		return obituary.Obituary{}, fmt.Errorf("unknown record type %T", rec)
	}
	return build(rec.Source(), f)
}

func build(src obituary.Source, f fields) (obituary.Obituary, error) {
	rawID := strings.TrimSpace(f.rawID)
	name := strings.TrimSpace(f.name)
	if rawID == "" || name == "" {
		return obituary.Obituary{}, ErrIncomplete
	}

	o := obituary.Obituary{
		ID:              obituary.BuildPrefixedID(src, rawID),
		Name:            name,
		City:            strings.TrimSpace(f.city),
		BodyText:        f.body,
		Photo:           strings.TrimSpace(f.photo),
		PhotoFile:       attachmentOrNil(f.photoFile),
		Attachment:      attachmentOrNil(f.attachment),
		FuneralLocation: strings.TrimSpace(f.funeralLocation),
		MaritalStatus:   strings.ToLower(strings.TrimSpace(f.maritalStatus)),
		SpouseName:      strings.TrimSpace(f.spouseName),
		Condolences:     []obituary.Condolence{},
		Source:          src,
	}

	if t, ok := obituary.ParseDate(f.deathDate); ok {
		o.DeathDate = obituary.DateOnly(t)
	}
	if t, ok := obituary.ParseDate(f.birthDate); ok {
		b := obituary.DateOnly(t)
		o.BirthDate = &b
	}

	if f.age != nil && *f.age > 0 {
		a := *f.age
		o.Age = &a
	} else if o.BirthDate != nil {
		if a, ok := obituary.CalculateAge(*o.BirthDate, o.DeathDate); ok {
			o.Age = &a
		}
	}

	o.FuneralDate, o.FuneralTime = funeral(f.funeralDate, f.funeralTime, o.DeathDate)
	return o, nil
}

// funeral resolves the service date and time. The date falls back to the
// death date; the time prefers an explicit value, then the clock time of a
// full timestamp, then the default.
func funeral(date, clock string, death time.Time) (time.Time, string) {
	day := death
	hm := ""
	if t, ok := obituary.ParseDate(date); ok {
		day = obituary.DateOnly(t)
		hm, _ = obituary.ClockTime(t)
	}
	if c := strings.TrimSpace(clock); c != "" {
		hm = c
	}
	if hm == "" {
		hm = obituary.DefaultFuneralTime
	}
	return day, hm
}

// All normalizes recs in order, dropping and logging rows that cannot be
// trusted.
func All(recs []source.NativeRecord, logger *zap.Logger) []obituary.Obituary {
	out := make([]obituary.Obituary, 0, len(recs))
	for i, rec := range recs {
		o, err := Normalize(rec)
		if err != nil {
			logger.Warn("dropping record", zap.Int("row", i), zap.Error(err))
			continue
		}
		out = append(out, o)
	}
	return out
}

func attachmentOrNil(a *obituary.Attachment) *obituary.Attachment {
	if a == nil || a.Empty() {
		return nil
	}
	c := *a
	return &c
}

func firstOf(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
