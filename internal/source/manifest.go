package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ChaseHampton/goobituaries/internal/client"
	"go.uber.org/zap"
)

// Manifest reads the static manifest from a file path or an http(s) URL.
// It is fetched once per call and never retried.
type Manifest struct {
	location string
	client   *client.Client
	logger   *zap.Logger
}

func NewManifest(location string, c *client.Client, logger *zap.Logger) *Manifest {
	return &Manifest{location: location, client: c, logger: logger}
}

func (m *Manifest) FetchAll(ctx context.Context) ([]NativeRecord, error) {
	if m.location == "" {
		return nil, nil
	}
	data, err := m.read(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := ParseManifest(data, func(i int, err error) {
		m.logger.Warn("skipping malformed manifest row", zap.Int("row", i), zap.Error(err))
	})
	if err != nil {
		return nil, err
	}
	recs := make([]NativeRecord, len(rows))
	for i, row := range rows {
		recs[i] = row
	}
	return recs, nil
}

func (m *Manifest) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(m.location, "http://") || strings.HasPrefix(m.location, "https://") {
		resp, err := m.client.GetOK(ctx, m.location)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch manifest: %w", err)
		}
		return resp.Body, nil
	}
	data, err := os.ReadFile(m.location)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return data, nil
}

// ParseManifest accepts {"obituaries": [...]} or a bare array.
func ParseManifest(data []byte, skipped func(i int, err error)) ([]ManifestRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			Obituaries json.RawMessage `json:"obituaries"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		if len(doc.Obituaries) == 0 || bytes.Equal(doc.Obituaries, []byte("null")) {
			return nil, nil
		}
		data = doc.Obituaries
	}
	rows, err := decodeRows[ManifestRecord](data, skipped)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return rows, nil
}
