package service

import (
	"encoding/json"
	"fmt"

	"github.com/jmcpheron/ccc-schedule/internal/mapper"
)

func decodeDocument(document []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return doc, nil
}

// termCodeOf resolves the term a document should be stored under.
// Persisted-layout documents carry metadata.terms[]; transformer output
// carries a single metadata.term. Either form works.
func termCodeOf(doc map[string]any) (string, error) {
	if wrapped, ok := doc["schedule"].(map[string]any); ok {
		doc = wrapped
	}

	if terms, ok := mapper.GetNestedValue(doc, "metadata.terms").([]any); ok && len(terms) > 0 {
		if first, ok := terms[0].(map[string]any); ok {
			if code, ok := first["code"].(string); ok && code != "" {
				return code, nil
			}
		}
	}

	if code, ok := mapper.GetNestedValue(doc, "metadata.term.code").(string); ok && code != "" {
		return code, nil
	}

	return "", ErrNoTerm
}
