// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Open the storefront login page and capture the session token",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Seconds to wait for the login redirect",
						Value: 120,
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the login URL instead of opening a browser",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check whether the stored session token is still valid",
				Action: r.AuthStatus,
			},
		},
	}
}

// searchCommand handles streaming catalog searches
func searchCommand(r *Runner) *cli.Command {
	formatFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, csv, markdown, json)",
			Value:   "text",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
	}

	return &cli.Command{
		Name:  "search",
		Usage: "Search the streaming catalog",
		Commands: []*cli.Command{
			{
				Name:  "artist",
				Usage: "Search artists by name; optionally stream their hits or discography",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "hits",
						Usage: "Stream the top match's hits playlist",
					},
					&cli.BoolFlag{
						Name:  "discography",
						Usage: "Stream the top match's discography",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				}, formatFlags...),
				Action: r.SearchArtist,
			},
			{
				Name:  "song",
				Usage: "Search songs by title and artist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "artist",
						Aliases: []string{"a"},
						Usage:   "Artist name to narrow the search",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Group name for the results (default: the query)",
					},
				}, formatFlags...),
				Action: r.SearchSong,
			},
			{
				Name:  "url",
				Usage: "Ingest songs from a URL",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Group name for the results (default: the URL)",
					},
				}, formatFlags...),
				Action: r.SearchURL,
			},
			{
				Name:  "prompt",
				Usage: "Search songs from a free-text description",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "prompt"},
				},
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "tag",
						Usage: "Group name for the results (default: the prompt)",
					},
				}, formatFlags...),
				Action: r.SearchPrompt,
			},
		},
	}
}

// orderCommand handles interactive order building and submission
func orderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "order",
		Usage: "Build and submit a music order",
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Launch the interactive order builder",
				Action: r.TUI,
			},
		},
	}
}

// receiptsCommand handles the local receipt history
func receiptsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "receipts",
		Usage: "Inspect the local order receipt history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored receipts, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "phone",
						Usage: "Filter by phone number",
					},
					&cli.StringFlag{
						Name:  "delivery",
						Usage: "Filter by delivery type (DIGITAL_LINK or PHYSICAL_USB)",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
				},
				Action: r.ReceiptsList,
			},
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the receipt database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination path for the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level alias for the interactive order builder.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive order builder",
		Action:  r.TUI,
	}
}
