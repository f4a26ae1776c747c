package sentiment

import (
	"strconv"
	"unicode"

	"sentify/domain"
)

// ParseRating extracts the star rating from a classifier label such as "4 stars", "4" or "LABEL_4".
// The first run of digits holding a value in 1..5 wins, anything else reads as neutral.
func ParseRating(label string) domain.RatingLevel {
	runes := []rune(label)
	for i := 0; i < len(runes); {
		if !unicode.IsDigit(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		if n, err := strconv.Atoi(string(runes[i:j])); err == nil {
			if rating := domain.RatingLevel(n); rating.Valid() {
				return rating
			}
		}
		i = j
	}
	return domain.DefaultRating
}
