package main

import (
	"context"

	"github.com/desertthunder/uta/internal/library"
	"github.com/urfave/cli/v3"
)

// Stats prints aggregate statistics, computed locally over the collection
// or fetched from the backend's stats endpoints with --remote.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("remote") {
		return r.remoteStats(ctx, cmd.Bool("json"))
	}

	songs, err := r.loadCollection(ctx, false)
	if err != nil {
		return err
	}

	stats := library.Aggregate(songs)

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	r.writePlainHeader("Repertoire statistics")
	r.writePlainln("Songs:      %d", stats.Total)
	r.writePlainln("Favorites:  %d", stats.FavoriteCount)
	r.writePlainln("得意曲:     %d", stats.TagCount("得意曲"))
	r.writePlainln("Average:    %d", stats.AverageScore)

	if len(stats.TopArtists) > 0 {
		r.writePlainln("")
		r.writePlainln("Top artists:")
		for _, g := range stats.TopArtists {
			r.writePlainln("  %-20s %d曲", g.Name, g.Count)
		}
	}

	if len(stats.TopCategories) > 0 {
		r.writePlainln("")
		r.writePlainln("Top categories:")
		for _, g := range stats.TopCategories {
			r.writePlainln("  %-20s %d曲", g.Name, g.Count)
		}
	}

	if len(stats.HighScoreSongs) > 0 {
		r.writePlainln("")
		r.writePlainln("High scores:")
		for _, song := range stats.HighScoreSongs {
			r.writePlainln("  %3d  %s - %s", song.ScoreOrZero(), song.Artist, song.Title)
		}
	}

	return nil
}

func (r *Runner) remoteStats(ctx context.Context, asJSON bool) error {
	categories, err := r.backend.CategoryStats(ctx)
	if err != nil {
		return err
	}
	artists, err := r.backend.ArtistStats(ctx)
	if err != nil {
		return err
	}
	average, err := r.backend.AverageScore(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(map[string]any{
			"categories":   categories,
			"artists":      artists,
			"averageScore": average,
		}, true)
	}

	r.writePlainHeader("Backend statistics")
	r.writePlainln("Average score: %.1f", average)
	r.writePlainln("")
	r.writePlainln("By category:")
	for category, count := range categories {
		r.writePlainln("  %-20s %d曲", category, count)
	}
	r.writePlainln("")
	r.writePlainln("By artist:")
	for artist, count := range artists {
		r.writePlainln("  %-20s %d曲", artist, count)
	}
	return nil
}
