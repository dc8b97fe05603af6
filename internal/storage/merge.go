package storage

import (
	"encoding/json"

	"github.com/misterclayt0n/hygie/internal/models"
)

// MergeProfile applies partial on top of base and returns the result; neither input is modified.
//
// Both profiles are compared as JSON documents: objects are merged key by key, non-empty arrays
// replace the stored ones, and absent or null fields keep the stored value. Profile fields are
// omitempty, so zero values in partial are treated as absent. A goal's current value is the
// exception: it is always written with its goal, so a goal sent at 0 stores 0.
func MergeProfile(base, partial *models.Profile) (*models.Profile, error) {
	dst, err := toDocument(base)
	if err != nil {
		return nil, err
	}
	src, err := toDocument(partial)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(mergeDocuments(dst, src))
	if err != nil {
		return nil, err
	}

	var merged models.Profile
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func toDocument(p *models.Profile) (map[string]any, error) {
	doc := map[string]any{}
	if p == nil {
		return doc, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func mergeDocuments(dst, src map[string]any) map[string]any {
	for key, value := range src {
		switch v := value.(type) {
		case nil:
		case map[string]any:
			if existing, ok := dst[key].(map[string]any); ok {
				dst[key] = mergeDocuments(existing, v)
			} else {
				dst[key] = v
			}
		case []any:
			if len(v) > 0 {
				dst[key] = v
			}
		default:
			dst[key] = v
		}
	}
	return dst
}
