package catalog

import (
	"fmt"
	"os"

	"sentify/domain"
	"sentify/domain/mimetypes"
	"sentify/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
)

type document struct {
	Categories map[string]domain.CategoryBundle `json:"categories"`
	Synonyms   map[string]string                `json:"synonyms"`
}

// Parse builds a catalog from its JSON document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrCatalogMisconfigured, err)
	}
	return New(doc.Categories, doc.Synonyms)
}

// LoadFile reads a catalog from disk, the file must sniff as JSON or plain text.
func LoadFile(path string) (*Catalog, error) {
	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}
	if !acceptable(detected) {
		return nil, fmt.Errorf("%w: %s is %s", errors.ErrUnsupportedCatalogType, path, detected.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func acceptable(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		if _, ok := mimetypes.MatchesAny(m.String(), mimetypes.ApplicationJSON, mimetypes.TextPlain); ok {
			return true
		}
	}
	return false
}
