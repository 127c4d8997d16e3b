package domain

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// DefaultRawPreviewLimit caps the raw text preview, in characters.
const DefaultRawPreviewLimit = 4000

// DatasetKind tags which variant a LoadedDataset holds.
type DatasetKind int

const (
	// DatasetEmpty means nothing is loaded.
	DatasetEmpty DatasetKind = iota
	// DatasetTable holds an ordered sequence of normalized objects.
	DatasetTable
	// DatasetRaw holds a JSON value that cannot be tabulated.
	DatasetRaw
)

// String returns the kind name.
func (k DatasetKind) String() string {
	switch k {
	case DatasetEmpty:
		return "empty"
	case DatasetTable:
		return "table"
	case DatasetRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Row is one table row. ID is the row's position in the loaded sequence.
type Row struct {
	ID     int
	Object NormalizedObject
}

// LoadedDataset is the result of a load: either a table or a raw preview.
// The variant is decided once by DecodeDataset and never re-inferred.
type LoadedDataset struct {
	Kind DatasetKind
	Rows []Row
	// Raw is the compact JSON preview, truncated to the preview limit.
	Raw string
	// Truncated reports whether Raw was cut.
	Truncated bool
}

// IsEmpty returns true if no data is loaded.
func (d *LoadedDataset) IsEmpty() bool {
	return d == nil || d.Kind == DatasetEmpty
}

// DecodeDataset classifies a load response body. A JSON array whose elements
// are objects becomes a table; anything else becomes a raw preview capped at
// limit characters (DefaultRawPreviewLimit when limit <= 0).
func DecodeDataset(body []byte, limit int) (*LoadedDataset, error) {
	if limit <= 0 {
		limit = DefaultRawPreviewLimit
	}

	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, ErrMalformedResponse
	}

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var objects []NormalizedObject
		if err := json.Unmarshal(trimmed, &objects); err == nil {
			rows := make([]Row, len(objects))
			for i, obj := range objects {
				rows[i] = Row{ID: i, Object: obj}
			}
			return &LoadedDataset{Kind: DatasetTable, Rows: rows}, nil
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, ErrMalformedResponse
	}
	raw, truncated := truncateRunes(compact.String(), limit)
	return &LoadedDataset{Kind: DatasetRaw, Raw: raw, Truncated: truncated}, nil
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) (string, bool) {
	if utf8.RuneCountInString(s) <= n {
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}
