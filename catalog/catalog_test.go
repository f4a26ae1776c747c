package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"sentify/domain"
	"sentify/errors"

	"github.com/stretchr/testify/require"
)

func bundle(hex string) domain.CategoryBundle {
	return domain.CategoryBundle{
		Songs:  []domain.Song{{Title: "Song", Artist: "Artist"}},
		Color:  domain.Color{Hex: hex, Name: "Color"},
		Quotes: []domain.Quote{{Text: "Quote", Author: "Author"}},
	}
}

func TestDefault(t *testing.T) {
	req := require.New(t)

	c, err := Default()
	req.NoError(err)

	req.Equal([]string{"anger", "fear", "joy", "neutral", "sadness"}, c.Keys())
	for _, key := range c.Keys() {
		b, ok := c.Lookup(key)
		req.True(ok)
		req.NotEmpty(b.Songs, key)
		req.NotEmpty(b.Quotes, key)
		req.NotEmpty(b.Color.Hex, key)
	}

	canonical, ok := c.Canonical("gratitude")
	req.True(ok)
	req.Equal("joy", canonical)
}

func TestCanonical(t *testing.T) {
	req := require.New(t)
	c, err := New(
		map[string]domain.CategoryBundle{"neutral": bundle("#D3D3D3"), "joy": bundle("#FFD700")},
		map[string]string{"love": "joy"},
	)
	req.NoError(err)

	tests := []struct {
		emotion  string
		expected string
		found    bool
	}{
		{emotion: "joy", expected: "joy", found: true},
		{emotion: "love", expected: "joy", found: true},
		{emotion: "neutral", expected: "neutral", found: true},
		{emotion: "boredom", expected: "", found: false},
		{emotion: "Joy", expected: "joy", found: true},
		{emotion: "  LOVE ", expected: "joy", found: true},
	}
	for _, tt := range tests {
		t.Run(tt.emotion, func(t *testing.T) {
			canonical, found := c.Canonical(tt.emotion)
			req.Equal(tt.found, found)
			req.Equal(tt.expected, canonical)
		})
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		categories map[string]domain.CategoryBundle
		synonyms   map[string]string
	}{
		{
			name:       "Missing neutral",
			categories: map[string]domain.CategoryBundle{"joy": bundle("#FFD700")},
		},
		{
			name: "No songs",
			categories: map[string]domain.CategoryBundle{"neutral": {
				Color:  domain.Color{Hex: "#D3D3D3", Name: "Gray"},
				Quotes: []domain.Quote{{Text: "Quote", Author: "Author"}},
			}},
		},
		{
			name: "No quotes",
			categories: map[string]domain.CategoryBundle{"neutral": {
				Songs: []domain.Song{{Title: "Song", Artist: "Artist"}},
				Color: domain.Color{Hex: "#D3D3D3", Name: "Gray"},
			}},
		},
		{
			name:       "Invalid color",
			categories: map[string]domain.CategoryBundle{"neutral": bundle("gray")},
		},
		{
			name: "Keys colliding once normalized",
			categories: map[string]domain.CategoryBundle{
				"neutral":  bundle("#D3D3D3"),
				" Neutral": bundle("#D3D3D3"),
			},
		},
		{
			name:       "Dangling synonym",
			categories: map[string]domain.CategoryBundle{"neutral": bundle("#D3D3D3")},
			synonyms:   map[string]string{"love": "joy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.categories, tt.synonyms)
			require.ErrorIs(t, err, errors.ErrCatalogMisconfigured)
		})
	}
}

func TestNew_NormalizesKeys(t *testing.T) {
	req := require.New(t)

	// Given keys with stray case and spaces
	c, err := New(
		map[string]domain.CategoryBundle{" Neutral ": bundle("#D3D3D3"), "JOY": bundle("#FFD700")},
		map[string]string{" Love": "Joy "},
	)
	req.NoError(err)

	// Then they are stored trimmed and lower cased
	req.Equal([]string{"joy", "neutral"}, c.Keys())
	canonical, found := c.Canonical("love")
	req.True(found)
	req.Equal("joy", canonical)
}

func TestCatalog_IsImmutable(t *testing.T) {
	req := require.New(t)
	categories := map[string]domain.CategoryBundle{"neutral": bundle("#D3D3D3")}
	c, err := New(categories, nil)
	req.NoError(err)

	// When the caller mutates its input and the returned copies
	categories["neutral"].Songs[0].Title = "changed"
	b, _ := c.Lookup("neutral")
	b.Quotes[0].Text = "changed"

	// Then the catalog is left untouched
	again, _ := c.Lookup("neutral")
	req.Equal("Song", again.Songs[0].Title)
	req.Equal("Quote", again.Quotes[0].Text)
}

func TestEmotions(t *testing.T) {
	req := require.New(t)
	c, err := Default()
	req.NoError(err)

	emotions := c.Emotions()
	req.Len(emotions, len(c.Keys())+len(c.Synonyms()))

	req.Equal(domain.Emotion{Name: "anger", Category: "anger", Polarity: domain.PolarityNegative}, emotions[0])
	love, found := findEmotion(emotions, "love")
	req.True(found)
	req.True(love.Synonym)
	req.Equal("joy", love.Category)
	req.Equal(domain.PolarityPositive, love.Polarity)
}

func TestLoadFile(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()

	// Given a valid catalog on disk
	valid := filepath.Join(dir, "catalog.json")
	req.NoError(os.WriteFile(valid, defaultCatalog, 0o600))
	c, err := LoadFile(valid)
	req.NoError(err)
	req.True(c.Has("neutral"))

	// Given a binary file
	png := filepath.Join(dir, "catalog.png")
	req.NoError(os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))
	_, err = LoadFile(png)
	req.ErrorIs(err, errors.ErrUnsupportedCatalogType)

	// Given a JSON document that is not a catalog
	broken := filepath.Join(dir, "broken.json")
	req.NoError(os.WriteFile(broken, []byte(`{"categories": {}}`), 0o600))
	_, err = LoadFile(broken)
	req.ErrorIs(err, errors.ErrCatalogMisconfigured)

	// Given a missing file
	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	req.Error(err)
}

func findEmotion(emotions []domain.Emotion, name string) (domain.Emotion, bool) {
	for _, e := range emotions {
		if e.Name == name {
			return e, true
		}
	}
	return domain.Emotion{}, false
}
