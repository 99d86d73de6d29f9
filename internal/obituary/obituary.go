package obituary

import "time"

type Source string

const (
	SourceRemote Source = "remote-store"
	SourceStatic Source = "static-manifest"
	SourceLocal  Source = "local-cache"
)

// Sources in merge priority order.
var Sources = []Source{SourceRemote, SourceStatic, SourceLocal}

const DefaultFuneralLocation = "Casa Funeraria Santaniello"

const DefaultFuneralTime = "10:00"

// Attachment is an uploaded file. Data holds an inline payload (usually a
// data: URL), URL a remote location. Either may be empty.
type Attachment struct {
	Data string `json:"data,omitempty"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Href returns the inline payload when present, the remote URL otherwise.
func (a *Attachment) Href() string {
	if a == nil {
		return ""
	}
	if a.Data != "" {
		return a.Data
	}
	return a.URL
}

func (a *Attachment) Empty() bool {
	return a.Href() == ""
}

type Condolence struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type CondolenceInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

type Obituary struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	BirthDate       *time.Time   `json:"birthDate,omitempty"`
	DeathDate       time.Time    `json:"deathDate"`
	Age             *int         `json:"age,omitempty"`
	City            string       `json:"city"`
	MaritalStatus   string       `json:"maritalStatus,omitempty"`
	SpouseName      string       `json:"spouseName,omitempty"`
	Photo           string       `json:"photo,omitempty"`
	PhotoFile       *Attachment  `json:"photoFile,omitempty"`
	Attachment      *Attachment  `json:"attachment,omitempty"`
	FuneralDate     time.Time    `json:"funeralDate"`
	FuneralTime     string       `json:"funeralTime"`
	FuneralLocation string       `json:"funeralLocation"`
	BodyText        string       `json:"bodyText,omitempty"`
	Condolences     []Condolence `json:"condolences"`
	Source          Source       `json:"-"`
}

// Clone returns a deep copy; the snapshot never hands out shared pointers.
func (o Obituary) Clone() Obituary {
	c := o
	if o.BirthDate != nil {
		b := *o.BirthDate
		c.BirthDate = &b
	}
	if o.Age != nil {
		a := *o.Age
		c.Age = &a
	}
	if o.PhotoFile != nil {
		p := *o.PhotoFile
		c.PhotoFile = &p
	}
	if o.Attachment != nil {
		a := *o.Attachment
		c.Attachment = &a
	}
	c.Condolences = make([]Condolence, len(o.Condolences))
	copy(c.Condolences, o.Condolences)
	return c
}

func CloneAll(obits []Obituary) []Obituary {
	out := make([]Obituary, len(obits))
	for i, o := range obits {
		out[i] = o.Clone()
	}
	return out
}
