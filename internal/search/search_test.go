package search

import (
	"testing"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/stretchr/testify/assert"
)

func fixtures() []obituary.Obituary {
	return []obituary.Obituary{
		{ID: "remote-store_1", Name: "Maria Rossi", City: "Nola"},
		{ID: "remote-store_2", Name: "Giovanni Esposito", City: "Nola", BodyText: "Ricordato da Maria e dai figli"},
		{ID: "static-manifest_1", Name: "Maria Bianchi", City: "Caserta"},
		{ID: "local-cache_1", Name: "Anna Verdi", City: "San Paolo Belsito (Nola)"},
	}
}

func ids(obits []obituary.Obituary) []string {
	out := make([]string, len(obits))
	for i, o := range obits {
		out[i] = o.ID
	}
	return out
}

func TestFilter_Composition(t *testing.T) {
	got := Filter(fixtures(), Params{City: "nola", Text: "MARIA"})
	assert.Equal(t, []string{"remote-store_1", "remote-store_2"}, ids(got))
}

func TestFilter_EmptyReturnsAll(t *testing.T) {
	p := Params{City: "  "}
	assert.True(t, p.Empty())
	all := fixtures()
	got := Filter(all, p)
	assert.Len(t, got, 4)
	got[0].Name = "changed"
	assert.NotEqual(t, "changed", all[0].Name)
}

func TestFilter_CityMatchModes(t *testing.T) {
	sub := Filter(fixtures(), Params{City: "Nola"})
	assert.Equal(t, []string{"remote-store_1", "remote-store_2", "local-cache_1"}, ids(sub))

	exact := Filter(fixtures(), Params{City: "NOLA", CityMatch: CityExact})
	assert.Equal(t, []string{"remote-store_1", "remote-store_2"}, ids(exact))
}

func TestFilter_TextOnly(t *testing.T) {
	got := Filter(fixtures(), Params{Text: "verdi"})
	assert.Equal(t, []string{"local-cache_1"}, ids(got))

	assert.Empty(t, Filter(fixtures(), Params{Text: "Ferrari"}))
}
