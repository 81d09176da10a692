// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the backend account",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account on the backend",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Authenticate with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "whoami",
				Usage: "Fetch the backend record for a user id",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.AuthWhoami,
			},
		},
	}
}

// songsCommand handles repertoire operations
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"s"},
		Usage:   "Manage the song repertoire",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List songs with optional filter and sort",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Usage: "Match title or artist"},
					&cli.StringFlag{Name: "category", Usage: "Filter by category", Value: "all"},
					&cli.StringFlag{Name: "tag", Usage: "Filter by tag name", Value: "all"},
					&cli.StringFlag{Name: "sort", Usage: "Sort key (title, artist, score)"},
					&cli.BoolFlag{Name: "cached", Usage: "Read the local snapshot instead of the backend"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.SongsList,
			},
			{
				Name:  "show",
				Usage: "Show one song in detail",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.SongsShow,
			},
			{
				Name:  "add",
				Usage: "Add a song to the repertoire",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist name", Required: true},
					&cli.IntFlag{Name: "key", Usage: "Key offset in [-5, 5]"},
					&cli.IntFlag{Name: "score", Usage: "Recorded score in [0, 100]", Value: -1},
					&cli.StringFlag{Name: "category", Usage: "Category", Value: "J-POP"},
					&cli.StringFlag{Name: "machine", Usage: "Karaoke machine", Value: "DAM"},
					&cli.StringFlag{Name: "memo", Usage: "Free-text memo"},
					&cli.StringFlag{Name: "jacket", Usage: "Jacket art URL"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Tag name (repeatable)"},
				},
				Action: r.SongsAdd,
			},
			{
				Name:  "edit",
				Usage: "Update fields of an existing song",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Song title"},
					&cli.StringFlag{Name: "artist", Usage: "Artist name"},
					&cli.IntFlag{Name: "key", Usage: "Key offset in [-5, 5]", Value: -100},
					&cli.IntFlag{Name: "score", Usage: "Recorded score in [0, 100]", Value: -1},
					&cli.StringFlag{Name: "category", Usage: "Category"},
					&cli.StringFlag{Name: "machine", Usage: "Karaoke machine"},
					&cli.StringFlag{Name: "memo", Usage: "Free-text memo"},
					&cli.StringSliceFlag{Name: "tag", Usage: "Replace tag set (repeatable)"},
					&cli.BoolFlag{Name: "clear-tags", Usage: "Remove all tags from the song"},
				},
				Action: r.SongsEdit,
			},
			{
				Name:  "rm",
				Usage: "Delete a song",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.SongsRemove,
			},
			{
				Name:  "fav",
				Usage: "Toggle the favorite flag on a song",
				Arguments: []cli.Argument{
					&cli.IntArg{Name: "id"},
				},
				Action: r.SongsFavorite,
			},
			{
				Name:  "random",
				Usage: "Pick a random song, optionally by tag",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tag", Usage: "Restrict to songs with this tag", Value: "all"},
				},
				Action: r.SongsRandom,
			},
			{
				Name:  "export",
				Usage: "Export the repertoire to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format (csv, md, txt)", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
				},
				Action: r.SongsExport,
			},
		},
	}
}

// searchCommand handles external catalog search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the external song catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.SearchRun,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "Show recent catalog queries",
				Action: r.SearchHistory,
			},
			{
				Name:   "clear",
				Usage:  "Clear the search history",
				Action: r.SearchClear,
			},
		},
	}
}

// statsCommand handles aggregate statistics
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show repertoire statistics",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "remote", Usage: "Use the backend's stats endpoints"},
			&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		},
		Action: r.Stats,
	}
}

// setupCommand handles configuration and cache database setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Usage: "Config file path", Value: "config.toml"},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the local cache database",
				Action: r.SetupDatabase,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive repertoire browser",
		Action:  r.TUI,
	}
}
