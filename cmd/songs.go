package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/uta/internal/formatter"
	"github.com/desertthunder/uta/internal/library"
	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadCollection fetches the song list from the backend and mirrors it into
// the local cache. With cached=true, or when the backend is unreachable, the
// last snapshot is substituted instead.
func (r *Runner) loadCollection(ctx context.Context, cached bool) ([]models.Song, error) {
	if !cached {
		if err := r.collection.Load(ctx); err == nil {
			songs := r.collection.Songs()
			r.snapshotSongs(songs)
			return songs, nil
		}
		r.writePlainln("backend unreachable, falling back to local snapshot")
	}

	songs, err := r.cachedSongs()
	if err != nil {
		return nil, fmt.Errorf("failed to read local snapshot: %w", err)
	}
	return songs, nil
}

func (r *Runner) printSongRow(song models.Song) {
	fav := " "
	if song.IsFavorite {
		fav = "★"
	}
	score := "  -"
	if song.Score != nil {
		score = fmt.Sprintf("%3d", *song.Score)
	}
	r.writePlainln("%s %4d  %-24s %-18s %-4s %s  %s", fav, song.ID, song.Title, song.Artist, formatter.KeyLabel(song.Key), score, song.Category)
}

// SongsList lists the repertoire with optional filter and sort.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.loadCollection(ctx, cmd.Bool("cached"))
	if err != nil {
		return err
	}

	query := library.Query{
		Term:     cmd.String("search"),
		Category: cmd.String("category"),
		Tag:      cmd.String("tag"),
		Sort:     library.SortKey(cmd.String("sort")),
	}
	view := query.Apply(songs)

	if cmd.Bool("json") {
		return r.writeJSON(view, true)
	}

	r.writePlainHeader(fmt.Sprintf("Repertoire (%d/%d songs)", len(view), len(songs)))
	for _, song := range view {
		r.printSongRow(song)
	}
	return nil
}

// SongsShow prints one song in detail.
func (r *Runner) SongsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	song, err := r.backend.GetSong(ctx, int64(id))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(song, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", song.Artist, song.Title))
	r.writePlainln("Key:      %s", formatter.KeyLabel(song.Key))
	if song.Score != nil {
		r.writePlainln("Score:    %d", *song.Score)
	}
	r.writePlainln("Category: %s", song.Category)
	r.writePlainln("Machine:  %s", song.Machine)
	if len(song.Tags) > 0 {
		names := make([]string, len(song.Tags))
		for i, t := range song.Tags {
			names[i] = t.Name
		}
		r.writePlainln("Tags:     %v", names)
	}
	if song.Memo != "" {
		r.writePlainln("Memo:     %s", song.Memo)
	}
	if song.Lyrics != "" {
		r.writePlainln("Lyrics:   %s", song.Lyrics)
	}
	return nil
}

// draftFromFlags builds a song draft from the add command's flags.
func (r *Runner) draftFromFlags(cmd *cli.Command) models.Song {
	draft := models.Song{
		Title:    cmd.String("title"),
		Artist:   cmd.String("artist"),
		Key:      int(cmd.Int("key")),
		Memo:     cmd.String("memo"),
		Jacket:   cmd.String("jacket"),
		Category: cmd.String("category"),
		Machine:  cmd.String("machine"),
		Tags:     r.tags.Resolve(cmd.StringSlice("tag")),
	}
	if score := cmd.Int("score"); score >= 0 {
		v := int(score)
		draft.Score = &v
	}
	return draft
}

// SongsAdd adds a song to the repertoire.
func (r *Runner) SongsAdd(ctx context.Context, cmd *cli.Command) error {
	song, err := r.collection.Add(ctx, r.draftFromFlags(cmd))
	if err != nil {
		return err
	}

	r.logger.Infof("added song %d", song.ID)
	r.writePlainln("✓ Added: %s - %s (id %d)", song.Artist, song.Title, song.ID)
	return nil
}

// SongsEdit applies flag values over the current song record and sends a
// full update.
func (r *Runner) SongsEdit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	song, err := r.backend.GetSong(ctx, int64(id))
	if err != nil {
		return err
	}

	if v := cmd.String("title"); v != "" {
		song.Title = v
	}
	if v := cmd.String("artist"); v != "" {
		song.Artist = v
	}
	if v := cmd.Int("key"); v != -100 {
		song.Key = int(v)
	}
	if v := cmd.Int("score"); v >= 0 {
		score := int(v)
		song.Score = &score
	}
	if v := cmd.String("category"); v != "" {
		song.Category = v
	}
	if v := cmd.String("machine"); v != "" {
		song.Machine = v
	}
	if v := cmd.String("memo"); v != "" {
		song.Memo = v
	}
	if cmd.Bool("clear-tags") {
		song.Tags = nil
	} else if tags := cmd.StringSlice("tag"); len(tags) > 0 {
		song.Tags = r.tags.Resolve(tags)
	}

	if err := r.collection.Load(ctx); err != nil {
		return err
	}
	updated, err := r.collection.Update(ctx, int64(id), *song)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Updated: %s - %s", updated.Artist, updated.Title)
	return nil
}

// SongsRemove deletes a song.
func (r *Runner) SongsRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	if err := r.collection.Delete(ctx, int64(id)); err != nil {
		return err
	}

	r.writePlainln("✓ Deleted song %d", id)
	return nil
}

// SongsFavorite toggles the favorite flag.
func (r *Runner) SongsFavorite(ctx context.Context, cmd *cli.Command) error {
	id := cmd.IntArg("id")
	if id == 0 {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}

	if err := r.collection.Load(ctx); err != nil {
		return err
	}
	if err := r.collection.ToggleFavorite(ctx, int64(id)); err != nil {
		return err
	}

	if song, ok := r.collection.Get(int64(id)); ok {
		state := "unfavorited"
		if song.IsFavorite {
			state = "favorited"
		}
		r.writePlainln("✓ %s: %s - %s", state, song.Artist, song.Title)
	}
	return nil
}

// SongsRandom picks one song at random, optionally restricted by tag.
func (r *Runner) SongsRandom(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.loadCollection(ctx, false)
	if err != nil {
		return err
	}

	pick := library.PickRandom(songs, cmd.String("tag"))
	if pick == nil {
		r.writePlainln("no songs to pick from")
		return nil
	}

	r.writePlainHeader("Random pick")
	r.printSongRow(*pick)
	return nil
}

// SongsExport writes the repertoire to a file.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.loadCollection(ctx, false)
	if err != nil {
		return err
	}

	path, err := formatter.WriteExport(songs, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlainln("✓ Exported %d songs to %s", len(songs), path)
	return nil
}
