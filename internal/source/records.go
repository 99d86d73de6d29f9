package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
)

// NativeRecord is one row as a source delivers it. Only the normalize package
// switches on the concrete type.
type NativeRecord interface {
	Source() obituary.Source
	isNative()
}

// RemoteRecord is a row from the remote store, already flattened by the
// store client. Dates are kept as the store rendered them.
type RemoteRecord struct {
	ID              string
	Name            string
	BirthDate       string
	DeathDate       string
	Age             *int
	City            string
	Description     string
	FuneralDate     string
	FuneralLocation string
	MaritalStatus   string
	SpouseName      string
	PhotoLink       string
	Photo           *obituary.Attachment
	Manifesto       *obituary.Attachment
}

func (RemoteRecord) Source() obituary.Source { return obituary.SourceRemote }
func (RemoteRecord) isNative()               {}

// ManifestRecord is a row of the static manifest file.
type ManifestRecord struct {
	ID              RawID   `json:"id"`
	Name            string  `json:"name"`
	BirthDate       string  `json:"birthDate"`
	DeathDate       string  `json:"deathDate"`
	Age             FlexInt `json:"age"`
	Photo           string  `json:"photo"`
	City            string  `json:"city"`
	Description     string  `json:"description"`
	FuneralDate     string  `json:"funeralDate"`
	FuneralTime     string  `json:"funeralTime"`
	FuneralLocation string  `json:"funeralLocation"`
	MaritalStatus   string  `json:"maritalStatus"`
	SpouseName      string  `json:"spouseName"`
}

func (ManifestRecord) Source() obituary.Source { return obituary.SourceStatic }
func (ManifestRecord) isNative()               {}

// LocalRecord is a row written by the admin tool into the on-device cache.
// Older versions of the tool stored Italian field names, so both are read.
type LocalRecord struct {
	ID              RawID                `json:"id"`
	Name            string               `json:"name"`
	Nome            string               `json:"nome"`
	BirthDate       string               `json:"birthDate"`
	DataNascita     string               `json:"dataNascita"`
	DeathDate       string               `json:"deathDate"`
	DataMorte       string               `json:"dataMorte"`
	Age             FlexInt              `json:"age"`
	Eta             FlexInt              `json:"eta"`
	City            string               `json:"city"`
	Comune          string               `json:"comune"`
	Description     string               `json:"description"`
	Testo           string               `json:"testo"`
	Photo           string               `json:"photo"`
	Foto            string               `json:"foto"`
	PhotoFile       *obituary.Attachment `json:"photoFile"`
	ManifestoFile   *obituary.Attachment `json:"manifestoFile"`
	FuneralDate     string               `json:"funeralDate"`
	DataEsequie     string               `json:"dataEsequie"`
	OraEsequie      string               `json:"oraEsequie"`
	FuneralLocation string               `json:"funeralLocation"`
	LuogoEsequie    string               `json:"luogoEsequie"`
	MaritalStatus   string               `json:"maritalStatus"`
	StatoCivile     string               `json:"statoCivile"`
	SpouseName      string               `json:"spouseName"`
	Coniuge         string               `json:"coniuge"`
}

func (LocalRecord) Source() obituary.Source { return obituary.SourceLocal }
func (LocalRecord) isNative()               {}

// RawID accepts a JSON string or number.
type RawID string

func (r *RawID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	*r = RawID(n.String())
	return nil
}

// FlexInt accepts a JSON number, a numeric string, or null.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*f = FlexInt{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Free-text ages are ignored rather than rejecting the row.
		return nil
	}
	*f = FlexInt{Value: int(v), Valid: true}
	return nil
}

func (f FlexInt) Ptr() *int {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

// decodeRows decodes a JSON array row by row, skipping rows that do not fit.
func decodeRows[T any](data []byte, skipped func(i int, err error)) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	rows := make([]T, 0, len(raw))
	for i, r := range raw {
		var row T
		if err := json.Unmarshal(r, &row); err != nil {
			if skipped != nil {
				skipped(i, err)
			}
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
