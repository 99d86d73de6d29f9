package duplicates

import (
	"testing"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/obituary"
	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	death := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	obits := []obituary.Obituary{
		{ID: "remote-store_1", Name: "Mario Rossi", DeathDate: death},
		{ID: "static-manifest_1", Name: "Anna Bianchi", DeathDate: death},
		{ID: "static-manifest_4", Name: "  mario   ROSSI ", DeathDate: death},
		{ID: "local-cache_9", Name: "Mario Rossi", DeathDate: death.AddDate(0, 0, 1)},
		{ID: "local-cache_2", Name: "Mario Rossi", DeathDate: death},
	}

	groups := Find(obits)
	assert.Equal(t, []Group{{
		Key: "mario rossi|2024-01-15",
		IDs: []string{"remote-store_1", "static-manifest_4", "local-cache_2"},
	}}, groups)
	// Input is never modified.
	assert.Len(t, obits, 5)
}

func TestFind_SameIDIsNotADuplicate(t *testing.T) {
	obits := []obituary.Obituary{
		{ID: "1", Name: "Mario Rossi"},
		{ID: "1", Name: "Mario Rossi"},
	}
	assert.Empty(t, Find(obits))
}
