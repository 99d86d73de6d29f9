package normalize

import (
	"testing"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/ChaseHampton/goobituaries/internal/source"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestNormalize_Remote(t *testing.T) {
	got, err := Normalize(source.RemoteRecord{
		ID:          "12",
		Name:        " Carmela De Luca ",
		BirthDate:   "1938-02-10",
		DeathDate:   "2024-05-03T00:00:00Z",
		City:        "Nola",
		Description: "Una vita dedicata alla famiglia.",
		FuneralDate: "2024-05-05T15:30:00Z",
		Photo:       &obituary.Attachment{URL: "https://cdn.example.com/p.jpg", Name: "p.jpg", Type: "image/jpeg", Size: 1024},
		Manifesto:   &obituary.Attachment{URL: "https://cdn.example.com/m.pdf", Type: "application/pdf"},
	})
	require.NoError(t, err)

	want := obituary.Obituary{
		ID:              "remote-store_12",
		Name:            "Carmela De Luca",
		BirthDate:       timePtr(day(1938, 2, 10)),
		DeathDate:       day(2024, 5, 3),
		Age:             intPtr(86),
		City:            "Nola",
		BodyText:        "Una vita dedicata alla famiglia.",
		PhotoFile:       &obituary.Attachment{URL: "https://cdn.example.com/p.jpg", Name: "p.jpg", Type: "image/jpeg", Size: 1024},
		Attachment:      &obituary.Attachment{URL: "https://cdn.example.com/m.pdf", Type: "application/pdf"},
		FuneralDate:     day(2024, 5, 5),
		FuneralTime:     "15:30",
		FuneralLocation: obituary.DefaultFuneralLocation,
		Condolences:     []obituary.Condolence{},
		Source:          obituary.SourceRemote,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "https://cdn.example.com/p.jpg", obituary.ResolvePhoto(&got))
}

func TestNormalize_Manifest(t *testing.T) {
	got, err := Normalize(source.ManifestRecord{
		ID:              "7",
		Name:            "Maria Esposito",
		DeathDate:       "2024-02-01",
		Age:             source.FlexInt{Value: 90, Valid: true},
		Photo:           "images/maria.jpg",
		City:            "Caserta",
		FuneralLocation: "Chiesa del Carmine",
	})
	require.NoError(t, err)

	assert.Equal(t, "static-manifest_7", got.ID)
	assert.Equal(t, 90, *got.Age)
	assert.Nil(t, got.BirthDate)
	// No funeral date: the death date stands in and the default time applies.
	assert.Equal(t, day(2024, 2, 1), got.FuneralDate)
	assert.Equal(t, obituary.DefaultFuneralTime, got.FuneralTime)
	assert.Equal(t, "Chiesa del Carmine", got.FuneralLocation)
	assert.Equal(t, "images/maria.jpg", obituary.ResolvePhoto(&got))
}

func TestNormalize_ManifestKeepsEmptyLocation(t *testing.T) {
	got, err := Normalize(source.ManifestRecord{ID: "1", Name: "A", DeathDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Empty(t, got.FuneralLocation)
	assert.Equal(t, obituary.PlaceholderPhoto, obituary.ResolvePhoto(&got))
}

func TestNormalize_LocalItalianFields(t *testing.T) {
	got, err := Normalize(source.LocalRecord{
		ID:          "3",
		Nome:        "Luigi Russo",
		DataNascita: "1950-09-01",
		DataMorte:   "2024-08-31",
		Comune:      "Nola",
		Testo:       "Riposa in pace.",
		Foto:        "https://example.com/luigi.jpg",
		PhotoFile:   &obituary.Attachment{Data: "data:image/png;base64,AAAA", Type: "image/png"},
		OraEsequie:  "11:30",
		DataEsequie: "2024-09-02",
		StatoCivile: "Vedovo",
		Coniuge:     "Rosa",
	})
	require.NoError(t, err)

	assert.Equal(t, "local-cache_3", got.ID)
	assert.Equal(t, "Luigi Russo", got.Name)
	assert.Equal(t, 73, *got.Age)
	assert.Equal(t, "Nola", got.City)
	assert.Equal(t, day(2024, 9, 2), got.FuneralDate)
	assert.Equal(t, "11:30", got.FuneralTime)
	assert.Equal(t, obituary.DefaultFuneralLocation, got.FuneralLocation)
	assert.Equal(t, "vedovo", got.MaritalStatus)
	assert.Equal(t, "Rosa", got.SpouseName)
	// Uploaded payload wins over the URL.
	assert.Equal(t, "data:image/png;base64,AAAA", obituary.ResolvePhoto(&got))
}

func TestNormalize_EnglishFieldsWinOverItalian(t *testing.T) {
	got, err := Normalize(source.LocalRecord{ID: "4", Name: "Teresa", Nome: "Teresa Old", City: "Nola", Comune: "Caserta", DeathDate: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "Teresa", got.Name)
	assert.Equal(t, "Nola", got.City)
}

func TestNormalize_Age(t *testing.T) {
	got, err := Normalize(source.ManifestRecord{ID: "1", Name: "A", BirthDate: "1960-06-15", DeathDate: "2024-06-14"})
	require.NoError(t, err)
	assert.Equal(t, 63, *got.Age)

	got, err = Normalize(source.ManifestRecord{ID: "1", Name: "A", BirthDate: "1960-06-15", DeathDate: "2024-06-15"})
	require.NoError(t, err)
	assert.Equal(t, 64, *got.Age)

	// Explicit zero is not an age.
	got, err = Normalize(source.ManifestRecord{ID: "1", Name: "A", Age: source.FlexInt{Value: 0, Valid: true}, DeathDate: "2024-06-15"})
	require.NoError(t, err)
	assert.Nil(t, got.Age)

	got, err = Normalize(source.ManifestRecord{ID: "1", Name: "A", BirthDate: "2024-06-15", DeathDate: "2024-06-15"})
	require.NoError(t, err)
	assert.Nil(t, got.Age)
}

func TestNormalize_FuneralTimeFromMidnightTimestamp(t *testing.T) {
	got, err := Normalize(source.RemoteRecord{ID: "1", Name: "A", DeathDate: "2024-01-01", FuneralDate: "2024-01-03T00:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 3), got.FuneralDate)
	assert.Equal(t, obituary.DefaultFuneralTime, got.FuneralTime)
}

func TestNormalize_Incomplete(t *testing.T) {
	_, err := Normalize(source.ManifestRecord{ID: "", Name: "A"})
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = Normalize(source.LocalRecord{ID: "1", Name: "  "})
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestNormalize_DropsEmptyAttachments(t *testing.T) {
	got, err := Normalize(source.LocalRecord{ID: "1", Name: "A", PhotoFile: &obituary.Attachment{Name: "x.png"}, ManifestoFile: &obituary.Attachment{}})
	require.NoError(t, err)
	assert.Nil(t, got.PhotoFile)
	assert.Nil(t, got.Attachment)
}

func TestAll_KeepsOrderAndDropsBadRows(t *testing.T) {
	recs := []source.NativeRecord{
		source.ManifestRecord{ID: "1", Name: "A"},
		source.ManifestRecord{ID: "2"},
		source.ManifestRecord{ID: "3", Name: "C"},
	}
	got := All(recs, zap.NewNop())
	require.Len(t, got, 2)
	assert.Equal(t, "static-manifest_1", got[0].ID)
	assert.Equal(t, "static-manifest_3", got[1].ID)
}
