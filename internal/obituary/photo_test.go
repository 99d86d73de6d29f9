package obituary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePhoto(t *testing.T) {
	o := &Obituary{}
	assert.Equal(t, PlaceholderPhoto, ResolvePhoto(o))

	o.PhotoFile = &Attachment{Data: "data:image/png;base64,AAA"}
	assert.Equal(t, "data:image/png;base64,AAA", ResolvePhoto(o))

	// Payload wins over URL.
	o.Photo = "https://example.com/p.jpg"
	assert.Equal(t, "data:image/png;base64,AAA", ResolvePhoto(o))

	o.PhotoFile = nil
	assert.Equal(t, "https://example.com/p.jpg", ResolvePhoto(o))
}

func TestClone_IsDeep(t *testing.T) {
	age := 80
	o := Obituary{
		ID:          "local-cache_1",
		Age:         &age,
		PhotoFile:   &Attachment{Data: "x"},
		Condolences: []Condolence{{ID: "c1"}},
	}
	c := o.Clone()
	*c.Age = 1
	c.PhotoFile.Data = "y"
	c.Condolences[0].ID = "changed"
	c.Condolences = append(c.Condolences, Condolence{ID: "c2"})

	assert.Equal(t, 80, *o.Age)
	assert.Equal(t, "x", o.PhotoFile.Data)
	assert.Equal(t, "c1", o.Condolences[0].ID)
	assert.Len(t, o.Condolences, 1)
}
