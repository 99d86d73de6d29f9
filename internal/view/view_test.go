package view

import (
	"strings"
	"testing"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sample() obituary.Obituary {
	birth := day(1945, time.March, 15)
	return obituary.Obituary{
		ID:              "static-manifest_7",
		Name:            "Mario Rossi",
		BirthDate:       &birth,
		DeathDate:       day(2024, time.January, 15),
		City:            "Nola",
		MaritalStatus:   "coniugato",
		SpouseName:      "Anna",
		FuneralDate:     day(2024, time.January, 18),
		FuneralTime:     "10:00",
		FuneralLocation: "Chiesa San Giuseppe",
		BodyText:        "Marito devoto e padre amorevole.",
		Attachment:      &obituary.Attachment{URL: "https://cdn.example.com/m.pdf", Type: "application/pdf", Name: "m.pdf"},
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 gennaio 2024", FormatDate(day(2024, time.January, 15)))
	assert.Equal(t, "3 dicembre 1999", FormatDate(day(1999, time.December, 3)))
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "giovedì 18 gennaio 2024", FormatLongDate(day(2024, time.January, 18)))
}

func TestMaritalStatusText(t *testing.T) {
	assert.Equal(t, "Coniugato/a con Anna", MaritalStatusText("coniugato", "Anna"))
	assert.Equal(t, "Vedovo/a di Rosa", MaritalStatusText("Vedovo", "Rosa"))
	assert.Equal(t, "Divorziato/a da Luca", MaritalStatusText("divorziato", "Luca"))
	assert.Equal(t, "Nubile", MaritalStatusText("nubile", "ignored"))
	assert.Equal(t, "Coniugato/a", MaritalStatusText("coniugato", ""))
	assert.Equal(t, "convivente", MaritalStatusText("convivente", "X"))
	assert.Equal(t, "", MaritalStatusText("", "X"))
}

func TestViewerFor(t *testing.T) {
	assert.Equal(t, ViewerEmbed, ViewerFor("application/pdf"))
	assert.Equal(t, ViewerImage, ViewerFor("image/png"))
	assert.Equal(t, ViewerImage, ViewerFor("IMAGE/JPEG"))
	assert.Equal(t, ViewerDownload, ViewerFor("application/msword"))
	assert.Equal(t, ViewerDownload, ViewerFor(""))
}

func TestNewCard(t *testing.T) {
	o := sample()
	c := NewCard(&o)

	assert.Equal(t, obituary.PlaceholderPhoto, c.Photo)
	assert.Equal(t, "15 marzo 1945", c.BirthDate)
	assert.Equal(t, "15 gennaio 2024", c.DeathDate)
	assert.Equal(t, "Coniugato/a con Anna", c.MaritalStatus)
	assert.True(t, c.HasManifesto)
	assert.Equal(t, "necrologio-detail.html?id=static-manifest_7", c.Link)
}

func TestNewCard_LongExcerpt(t *testing.T) {
	o := sample()
	o.BodyText = strings.Repeat("parola ", 100)
	c := NewCard(&o)
	assert.True(t, strings.HasSuffix(c.Excerpt, "…"))
	assert.LessOrEqual(t, len([]rune(c.Excerpt)), excerptLen+1)
}

func TestNewDetail(t *testing.T) {
	o := sample()
	at := day(2024, time.January, 16)
	d := NewDetail(&o, []obituary.Condolence{{ID: "c1", Name: "Paolo", Message: "Condoglianze", SubmittedAt: at}}, "Onoranze Funebri Santaniello")

	require.NotNil(t, d.Age)
	assert.Equal(t, 78, *d.Age)
	assert.True(t, d.ShowMemory)
	require.NotNil(t, d.Manifesto)
	assert.Equal(t, ViewerEmbed, d.Manifesto.Viewer)
	assert.Equal(t, "https://cdn.example.com/m.pdf", d.Manifesto.Href)
	assert.Equal(t, "Necrologio di Mario Rossi - Onoranze Funebri Santaniello", d.Title)
	assert.Equal(t,
		"Ci ha lasciati Mario Rossi (1945-2024), i funerali si svolgeranno giovedì 18 gennaio 2024 presso la Chiesa San Giuseppe. Onoranze Funebri Santaniello.",
		d.SocialDescription)
	require.Len(t, d.Condolences, 1)
	assert.Equal(t, "16 gennaio 2024", d.Condolences[0].SubmittedAt)
}

func TestNewDetail_Sparse(t *testing.T) {
	o := obituary.Obituary{ID: "1", Name: "Anna Bianchi", BodyText: "   "}
	d := NewDetail(&o, nil, "Santaniello")

	assert.Nil(t, d.Age)
	assert.False(t, d.ShowMemory)
	assert.Nil(t, d.Manifesto)
	assert.Empty(t, d.Condolences)
	assert.Equal(t, "Ci ha lasciati Anna Bianchi. Santaniello.", d.SocialDescription)
}

func TestSocialDescription_LocationOnly(t *testing.T) {
	o := obituary.Obituary{Name: "A", FuneralLocation: "Cappella"}
	assert.Equal(t, "Ci ha lasciati A, i funerali si svolgeranno presso la Cappella. S.", SocialDescription(&o, "S"))
}
