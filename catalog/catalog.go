package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"

	"sentify/domain"
	"sentify/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

//go:embed catalog.json
var defaultCatalog []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Catalog maps canonical emotion keys to their recommendations.
// It is never mutated after construction and is safe for concurrent reads.
type Catalog struct {
	categories map[string]domain.CategoryBundle
	synonyms   map[string]string
}

// New normalizes keys, validates and copies the given tables.
// The neutral category is mandatory, every bundle needs songs and quotes, every synonym must target a category.
func New(rawCategories map[string]domain.CategoryBundle, rawSynonyms map[string]string) (*Catalog, error) {
	categories := make(map[string]domain.CategoryBundle, len(rawCategories))
	for key, bundle := range rawCategories {
		normalized := normalizeKey(key)
		if _, dup := categories[normalized]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", errors.ErrCatalogMisconfigured, normalized)
		}
		categories[normalized] = bundle
	}
	synonyms := make(map[string]string, len(rawSynonyms))
	for synonym, target := range rawSynonyms {
		synonyms[normalizeKey(synonym)] = normalizeKey(target)
	}

	if _, ok := categories[domain.NeutralCategory]; !ok {
		return nil, fmt.Errorf("%w: missing %q category", errors.ErrCatalogMisconfigured, domain.NeutralCategory)
	}
	for key, bundle := range categories {
		if key == "" {
			return nil, fmt.Errorf("%w: empty category key", errors.ErrCatalogMisconfigured)
		}
		if err := validate.Struct(bundle); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", errors.ErrCatalogMisconfigured, key, err)
		}
	}
	for synonym, target := range synonyms {
		if _, ok := categories[target]; !ok {
			return nil, fmt.Errorf("%w: synonym %q targets unknown category %q", errors.ErrCatalogMisconfigured, synonym, target)
		}
	}

	return &Catalog{
		categories: lo.MapValues(categories, func(b domain.CategoryBundle, _ string) domain.CategoryBundle { return cloneBundle(b) }),
		synonyms:   synonyms,
	}, nil
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Lookup returns a copy of the bundle stored under key.
func (c *Catalog) Lookup(key string) (domain.CategoryBundle, bool) {
	bundle, ok := c.categories[key]
	if !ok {
		return domain.CategoryBundle{}, false
	}
	return cloneBundle(bundle), true
}

func (c *Catalog) Has(key string) bool {
	_, ok := c.categories[key]
	return ok
}

// Canonical resolves an emotion to a category key, literally first then through the synonyms.
// The emotion is trimmed and lower-cased like the stored keys.
func (c *Catalog) Canonical(emotion string) (string, bool) {
	emotion = normalizeKey(emotion)
	if c.Has(emotion) {
		return emotion, true
	}
	target, ok := c.synonyms[emotion]
	return target, ok
}

// Keys returns the category keys sorted.
func (c *Catalog) Keys() []string {
	keys := lo.Keys(c.categories)
	sort.Strings(keys)
	return keys
}

func (c *Catalog) Synonyms() map[string]string {
	return lo.Assign(c.synonyms)
}

// Emotions lists categories then synonyms, each sorted by name.
func (c *Catalog) Emotions() []domain.Emotion {
	emotions := lo.Map(c.Keys(), func(key string, _ int) domain.Emotion {
		return domain.Emotion{Name: key, Category: key, Polarity: c.categories[key].Polarity}
	})
	synonyms := lo.Keys(c.synonyms)
	sort.Strings(synonyms)
	for _, s := range synonyms {
		target := c.synonyms[s]
		emotions = append(emotions, domain.Emotion{
			Name:     s,
			Category: target,
			Polarity: c.categories[target].Polarity,
			Synonym:  true,
		})
	}
	return emotions
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func cloneBundle(b domain.CategoryBundle) domain.CategoryBundle {
	b.Songs = slices.Clone(b.Songs)
	b.Quotes = slices.Clone(b.Quotes)
	return b
}
