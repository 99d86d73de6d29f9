package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/source"
)

type ObituaryDto struct {
	Id                sql.NullString `db:"id"`
	Name              sql.NullString `db:"name"`
	BirthDate         sql.NullString `db:"birth_date"`
	DeathDate         sql.NullString `db:"death_date"`
	Age               sql.NullInt64  `db:"age"`
	City              sql.NullString `db:"city"`
	Description       sql.NullString `db:"description"`
	FuneralDate       sql.NullString `db:"funeral_date"`
	FuneralLocation   sql.NullString `db:"funeral_location"`
	MaritalStatus     sql.NullString `db:"marital_status"`
	SpouseName        sql.NullString `db:"spouse_name"`
	PhotoUrl          sql.NullString `db:"photo_url"`
	PhotoFileName     sql.NullString `db:"photo_file_name"`
	PhotoFileSize     sql.NullInt64  `db:"photo_file_size"`
	PhotoFileType     sql.NullString `db:"photo_file_type"`
	ManifestoUrl      sql.NullString `db:"manifesto_url"`
	ManifestoFileName sql.NullString `db:"manifesto_file_name"`
	ManifestoFileSize sql.NullInt64  `db:"manifesto_file_size"`
	ManifestoFileType sql.NullString `db:"manifesto_file_type"`
}

type CondolenceDto struct {
	Id           string         `db:"id"`
	NecrologioId string         `db:"necrologio_id"`
	Nome         sql.NullString `db:"nome"`
	Email        sql.NullString `db:"email"`
	Messaggio    sql.NullString `db:"messaggio"`
	DataInvio    sql.NullString `db:"data_invio"`
}

func (d ObituaryDto) Record() source.RemoteRecord {
	rec := source.RemoteRecord{
		ID:              strings.TrimSpace(d.Id.String),
		Name:            d.Name.String,
		BirthDate:       d.BirthDate.String,
		DeathDate:       d.DeathDate.String,
		City:            d.City.String,
		Description:     d.Description.String,
		FuneralDate:     d.FuneralDate.String,
		FuneralLocation: d.FuneralLocation.String,
		MaritalStatus:   d.MaritalStatus.String,
		SpouseName:      d.SpouseName.String,
		Photo:           newAttachment(d.PhotoUrl, d.PhotoFileName, d.PhotoFileType, d.PhotoFileSize),
		Manifesto:       newAttachment(d.ManifestoUrl, d.ManifestoFileName, d.ManifestoFileType, d.ManifestoFileSize),
	}
	if d.Age.Valid {
		age := int(d.Age.Int64)
		rec.Age = &age
	}
	return rec
}

func (d CondolenceDto) Condolence() obituary.Condolence {
	c := obituary.Condolence{
		ID:      d.Id,
		Name:    d.Nome.String,
		Email:   d.Email.String,
		Message: d.Messaggio.String,
	}
	if t, ok := obituary.ParseDate(d.DataInvio.String); ok {
		c.SubmittedAt = t.UTC()
	}
	return c
}

func NewCondolenceDto(id, obituaryID string, in obituary.CondolenceInput, at time.Time) CondolenceDto {
	return CondolenceDto{
		Id:           id,
		NecrologioId: obituaryID,
		Nome:         sql.NullString{String: in.Name, Valid: true},
		Email:        sql.NullString{String: in.Email, Valid: in.Email != ""},
		Messaggio:    sql.NullString{String: in.Message, Valid: true},
		DataInvio:    sql.NullString{String: at.UTC().Format(TimestampLayout), Valid: true},
	}
}

func newAttachment(url, name, mime sql.NullString, size sql.NullInt64) *obituary.Attachment {
	if !url.Valid || url.String == "" {
		return nil
	}
	return &obituary.Attachment{
		URL:  url.String,
		Name: name.String,
		Type: mime.String,
		Size: size.Int64,
	}
}
