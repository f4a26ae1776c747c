package recommendation

import (
	"sentify/contract"
	"sentify/domain"

	"github.com/samber/lo"
)

// Catalog is the read-only view the selector needs.
type Catalog interface {
	Lookup(key string) (domain.CategoryBundle, bool)
	Canonical(emotion string) (string, bool)
}

// Selector draws a RecommendationBundle from a catalog.
// It never fails, unresolved emotions fall back to the neutral category.
type Selector struct {
	catalog Catalog
	random  contract.RandomSource
}

func NewSelector(catalog Catalog, random contract.RandomSource) *Selector {
	return &Selector{catalog: catalog, random: random}
}

// Resolve returns the category of the first emotion that is either a category key or a known synonym.
func (s *Selector) Resolve(emotions []string) string {
	for _, emotion := range emotions {
		if category, ok := s.catalog.Canonical(emotion); ok {
			return category
		}
	}
	return domain.NeutralCategory
}

// Select picks one song and one quote uniformly, the color is the category's own.
func (s *Selector) Select(emotions []string) domain.RecommendationBundle {
	category := s.Resolve(emotions)
	bundle, ok := s.catalog.Lookup(category)
	if !ok {
		category = domain.NeutralCategory
		bundle, _ = s.catalog.Lookup(category)
	}
	return domain.RecommendationBundle{
		Category: category,
		Song:     lo.SampleBy(bundle.Songs, s.random.IntN),
		Color:    bundle.Color,
		Quote:    lo.SampleBy(bundle.Quotes, s.random.IntN),
	}
}
