package stability

import (
	"errors"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
	"github.com/wellsgz/perfreport/internal/apperrors"
)

// LoadFile reads and parses a metrics file.
// A missing file yields a NotFound error, unreadable or malformed content a
// ParseError; both carry the path. Well-formed JSON of the wrong shape
// yields an empty slice and no error.
func LoadFile(path string) ([]MetricSample, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.Wrap(apperrors.NotFound, path, "metrics file not found", err)
		}
		return nil, apperrors.Wrap(apperrors.ParseError, path, "failed to read metrics file", err)
	}

	samples, err := Parse(content)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ParseError, path, "failed to parse metrics file", err)
	}
	return samples, nil
}

// Parse decodes a JSON array of metric samples.
// It returns an error only when content is not valid JSON or a sample has
// fields of the wrong type. Any other top-level value, or an array holding a
// non-object element, yields an empty slice.
func Parse(content []byte) ([]MetricSample, error) {
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	list, ok := doc.([]any)
	if !ok {
		return []MetricSample{}, nil
	}
	for _, item := range list {
		if _, ok := item.(map[string]any); !ok {
			return []MetricSample{}, nil
		}
	}

	samples := make([]MetricSample, 0, len(list))
	if err := json.Unmarshal(content, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}
