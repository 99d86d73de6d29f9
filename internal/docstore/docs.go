package docstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObituaryDoc mirrors documents written by the admin console: flat fields
// with the photo and manifesto metadata alongside their URLs.
type ObituaryDoc struct {
	ID                interface{} `bson:"_id"`
	Name              string      `bson:"name"`
	BirthDate         interface{} `bson:"birthDate,omitempty"`
	DeathDate         interface{} `bson:"deathDate,omitempty"`
	Age               interface{} `bson:"age,omitempty"`
	City              string      `bson:"city,omitempty"`
	Description       string      `bson:"description,omitempty"`
	FuneralDate       interface{} `bson:"funeralDate,omitempty"`
	FuneralLocation   string      `bson:"funeralLocation,omitempty"`
	MaritalStatus     string      `bson:"maritalStatus,omitempty"`
	SpouseName        string      `bson:"spouseName,omitempty"`
	Photo             string      `bson:"photo,omitempty"`
	PhotoURL          string      `bson:"photoURL,omitempty"`
	PhotoFileName     string      `bson:"photoFileName,omitempty"`
	PhotoFileType     string      `bson:"photoFileType,omitempty"`
	PhotoFileSize     int64       `bson:"photoFileSize,omitempty"`
	ManifestoURL      string      `bson:"manifestoURL,omitempty"`
	ManifestoFileName string      `bson:"manifestoFileName,omitempty"`
	ManifestoFileType string      `bson:"manifestoFileType,omitempty"`
	ManifestoFileSize int64       `bson:"manifestoFileSize,omitempty"`
	Status            string      `bson:"status,omitempty"`
	CreatedAt         time.Time   `bson:"createdAt,omitempty"`
}

type CondolenceDoc struct {
	ID           string    `bson:"_id"`
	NecrologioID string    `bson:"necrologioId"`
	Nome         string    `bson:"nome"`
	Email        string    `bson:"email,omitempty"`
	Messaggio    string    `bson:"messaggio"`
	DataInvio    time.Time `bson:"dataInvio"`
	Status       string    `bson:"status"`
}

// Record flattens the document. BSON dates are rendered in loc so that
// calendar dates and funeral times read as they do locally; nil means UTC.
func (d ObituaryDoc) Record(loc *time.Location) source.RemoteRecord {
	rec := source.RemoteRecord{
		ID:              idString(d.ID),
		Name:            d.Name,
		BirthDate:       dateString(d.BirthDate, loc),
		DeathDate:       dateString(d.DeathDate, loc),
		City:            d.City,
		Description:     d.Description,
		FuneralDate:     dateString(d.FuneralDate, loc),
		FuneralLocation: d.FuneralLocation,
		MaritalStatus:   d.MaritalStatus,
		SpouseName:      d.SpouseName,
		PhotoLink:       d.Photo,
	}
	if age, ok := intValue(d.Age); ok {
		rec.Age = &age
	}
	if d.PhotoURL != "" {
		rec.Photo = &obituary.Attachment{URL: d.PhotoURL, Name: d.PhotoFileName, Type: d.PhotoFileType, Size: d.PhotoFileSize}
	}
	if d.ManifestoURL != "" {
		rec.Manifesto = &obituary.Attachment{URL: d.ManifestoURL, Name: d.ManifestoFileName, Type: d.ManifestoFileType, Size: d.ManifestoFileSize}
	}
	return rec
}

func (d CondolenceDoc) Condolence() obituary.Condolence {
	return obituary.Condolence{
		ID:          d.ID,
		Name:        d.Nome,
		Email:       d.Email,
		Message:     d.Messaggio,
		SubmittedAt: d.DataInvio.UTC(),
	}
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

// dateString renders BSON dates and strings into the text form the
// normalizer parses.
func dateString(v interface{}, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case primitive.DateTime:
		return t.Time().In(loc).Format(time.RFC3339)
	case time.Time:
		return t.In(loc).Format(time.RFC3339)
	default:
		return ""
	}
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	default:
		return 0, false
	}
}
