package view

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
)

type Viewer string

const (
	ViewerEmbed    Viewer = "embed"
	ViewerImage    Viewer = "image"
	ViewerDownload Viewer = "download"
)

const detailPage = "necrologio-detail.html"

// ViewerFor picks how an attachment is shown from its MIME type.
func ViewerFor(mime string) Viewer {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch {
	case mime == "application/pdf":
		return ViewerEmbed
	case strings.HasPrefix(mime, "image/"):
		return ViewerImage
	default:
		return ViewerDownload
	}
}

func Link(o *obituary.Obituary) string {
	return detailPage + "?id=" + url.QueryEscape(o.ID)
}

type Card struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Photo           string `json:"photo"`
	BirthDate       string `json:"birthDate,omitempty"`
	DeathDate       string `json:"deathDate"`
	City            string `json:"city"`
	MaritalStatus   string `json:"maritalStatus,omitempty"`
	Excerpt         string `json:"excerpt,omitempty"`
	HasManifesto    bool   `json:"hasManifesto"`
	FuneralDate     string `json:"funeralDate"`
	FuneralTime     string `json:"funeralTime"`
	FuneralLocation string `json:"funeralLocation"`
	Link            string `json:"link"`
}

type AttachmentView struct {
	Href   string `json:"href"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty"`
	Viewer Viewer `json:"viewer"`
}

type CondolenceView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Message     string `json:"message"`
	SubmittedAt string `json:"submittedAt"`
}

type Detail struct {
	Card
	Age               *int             `json:"age,omitempty"`
	BodyText          string           `json:"bodyText,omitempty"`
	ShowMemory        bool             `json:"showMemory"`
	Manifesto         *AttachmentView  `json:"manifesto,omitempty"`
	Title             string           `json:"title"`
	SocialDescription string           `json:"socialDescription"`
	Condolences       []CondolenceView `json:"condolences"`
}

const excerptLen = 160

func NewCard(o *obituary.Obituary) Card {
	c := Card{
		ID:              o.ID,
		Name:            o.Name,
		Photo:           obituary.ResolvePhoto(o),
		DeathDate:       FormatDate(o.DeathDate),
		City:            o.City,
		MaritalStatus:   MaritalStatusText(o.MaritalStatus, o.SpouseName),
		Excerpt:         excerpt(o.BodyText, excerptLen),
		HasManifesto:    !o.Attachment.Empty(),
		FuneralDate:     FormatDate(o.FuneralDate),
		FuneralTime:     o.FuneralTime,
		FuneralLocation: o.FuneralLocation,
		Link:            Link(o),
	}
	if o.BirthDate != nil {
		c.BirthDate = FormatDate(*o.BirthDate)
	}
	return c
}

func NewCards(obits []obituary.Obituary) []Card {
	cards := make([]Card, len(obits))
	for i := range obits {
		cards[i] = NewCard(&obits[i])
	}
	return cards
}

// NewDetail builds the detail page model. condolences are listed as given.
func NewDetail(o *obituary.Obituary, condolences []obituary.Condolence, siteName string) Detail {
	d := Detail{
		Card:              NewCard(o),
		BodyText:          o.BodyText,
		ShowMemory:        strings.TrimSpace(o.BodyText) != "",
		Title:             "Necrologio di " + o.Name + " - " + siteName,
		SocialDescription: SocialDescription(o, siteName),
		Condolences:       make([]CondolenceView, len(condolences)),
	}
	if o.Age != nil && *o.Age > 0 {
		a := *o.Age
		d.Age = &a
	} else if o.BirthDate != nil {
		if a, ok := obituary.CalculateAge(*o.BirthDate, o.DeathDate); ok {
			d.Age = &a
		}
	}
	if !o.Attachment.Empty() {
		d.Manifesto = &AttachmentView{
			Href:   o.Attachment.Href(),
			Name:   o.Attachment.Name,
			Type:   o.Attachment.Type,
			Viewer: ViewerFor(o.Attachment.Type),
		}
	}
	for i, c := range condolences {
		d.Condolences[i] = CondolenceView{
			ID:          c.ID,
			Name:        c.Name,
			Message:     c.Message,
			SubmittedAt: FormatDate(c.SubmittedAt),
		}
	}
	return d
}

// SocialDescription is the sharing preview text for an obituary.
func SocialDescription(o *obituary.Obituary, siteName string) string {
	var b strings.Builder
	b.WriteString("Ci ha lasciati ")
	b.WriteString(o.Name)
	if o.BirthDate != nil && !o.DeathDate.IsZero() {
		b.WriteString(" (" + strconv.Itoa(o.BirthDate.Year()) + "-" + strconv.Itoa(o.DeathDate.Year()) + ")")
	}
	date := FormatLongDate(o.FuneralDate)
	switch {
	case date != "" && o.FuneralLocation != "":
		b.WriteString(", i funerali si svolgeranno " + date + " presso la " + o.FuneralLocation)
	case date != "":
		b.WriteString(", i funerali si svolgeranno " + date)
	case o.FuneralLocation != "":
		b.WriteString(", i funerali si svolgeranno presso la " + o.FuneralLocation)
	}
	b.WriteString(". " + siteName + ".")
	return b.String()
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
