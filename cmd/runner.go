package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/uta/internal/library"
	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/repositories"
	"github.com/desertthunder/uta/internal/services"
	"github.com/desertthunder/uta/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	backend    *services.BackendClient
	catalog    services.Catalog
	session    *library.Session
	collection *library.Collection
	search     *library.Search
	tags       *models.TagVocabulary
	logger     *log.Logger
	output     io.Writer
	historyDB  *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Backend *services.BackendClient
	Catalog services.Catalog
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Backend == nil {
		opts.Backend = services.NewBackendClient(opts.Config.Backend.BaseURL, nil)
	}

	r := &Runner{
		config:  opts.Config,
		backend: opts.Backend,
		catalog: opts.Catalog,
		tags:    models.DefaultTags(),
		logger:  opts.Logger,
		output:  opts.Output,
	}

	r.session = library.NewSession(opts.Backend, opts.Logger)
	r.collection = library.NewCollection(opts.Backend, opts.Logger)
	r.search = library.NewSearch(opts.Catalog, opts.Logger)

	return r
}

// SetLogger swaps the logger on the runner and its managers.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	r.session.SetLogger(l)
	r.collection.SetLogger(l)
	r.search.SetLogger(l)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, songsCommand, searchCommand, statsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Close releases resources held for the lifetime of the process, currently
// the persisted-history database handle.
func (r *Runner) Close() {
	if r.historyDB != nil {
		r.historyDB.Close()
		r.historyDB = nil
	}
}

// openCache opens the local cache database configured in config.toml.
func (r *Runner) openCache() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// snapshotSongs mirrors the collection into the local cache. Failures are
// logged only; the cache is best effort.
func (r *Runner) snapshotSongs(songs []models.Song) {
	db, err := r.openCache()
	if err != nil {
		r.logger.Debugf("cache unavailable: %v", err)
		return
	}
	defer db.Close()

	cache, err := repositories.NewSongCache(db)
	if err != nil {
		r.logger.Debugf("cache unavailable: %v", err)
		return
	}
	if err := cache.ReplaceAll(songs); err != nil {
		r.logger.Warnf("failed to snapshot songs: %v", err)
	}
}

// cachedSongs reads the last snapshot from the local cache.
func (r *Runner) cachedSongs() ([]models.Song, error) {
	db, err := r.openCache()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cache, err := repositories.NewSongCache(db)
	if err != nil {
		return nil, err
	}
	return cache.List()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
