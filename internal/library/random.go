package library

import (
	"math/rand/v2"

	"github.com/desertthunder/uta/internal/models"
)

// PickRandom selects one song uniformly, optionally restricted to songs
// carrying the named tag ("" or "all" disables the filter). Returns nil
// when nothing matches.
func PickRandom(songs []models.Song, tagFilter string) *models.Song {
	pool := songs
	if tagFilter != "" && tagFilter != FilterAll {
		pool = nil
		for _, s := range songs {
			if s.HasTag(tagFilter) {
				pool = append(pool, s)
			}
		}
	}

	if len(pool) == 0 {
		return nil
	}

	pick := pool[rand.IntN(len(pool))]
	return &pick
}
