// cmd/bee is the command line front end to the solver.
//
//	bee solve A R E H T S O        # solve a letter set, center first
//	bee solve --hint lengths A RE HTSO
//	bee today --db ./data/bee.db   # today's letters
//	bee backfill --days 30         # issue the next 30 daily puzzles
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/robalobadob/spellingbee/internal/daily"
	"github.com/robalobadob/spellingbee/internal/database"
	"github.com/robalobadob/spellingbee/internal/hints"
	"github.com/robalobadob/spellingbee/internal/letters"
	"github.com/robalobadob/spellingbee/internal/solver"
	"github.com/robalobadob/spellingbee/internal/words"
)

// loadCorpus reads path, or the embedded list when path is empty.
func loadCorpus(ctx context.Context, path string) (*words.Provider, error) {
	l := words.EmbeddedLoader()
	if path != "" {
		l = words.FileLoader(path)
	}
	return words.NewProvider(ctx, l)
}

// parseLetters accepts letters as separate args or packed together;
// the first letter is the center.
func parseLetters(args []string) letters.Set {
	var in []string
	for _, a := range args {
		for _, r := range a {
			in = append(in, string(r))
		}
	}
	return letters.FromSlice(in)
}

func solve(ctx context.Context, w io.Writer, wordsFile, hint string, args []string) error {
	tier, err := hints.ParseTier(hint)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	set := parseLetters(args)
	if !set.Complete() {
		return cli.Exit(fmt.Sprintf("need seven letters, got %s", set), 2)
	}
	wp, err := loadCorpus(ctx, wordsFile)
	if err != nil {
		return err
	}
	render(w, set, hints.Project(tier, solver.Solve(set, wp.WordList())))
	return nil
}

// render prints what the hint tier allows: length groups, then totals.
// Revealed pangrams are starred.
func render(w io.Writer, set letters.Set, v hints.View) {
	fmt.Fprintf(w, "letters %s  hints %s\n", set, v.Tier)
	if v.Totals == nil {
		fmt.Fprintln(w, "(no hints revealed)")
		return
	}
	for _, g := range v.Groups {
		ws := make([]string, 0, len(g.Words))
		for _, word := range g.Words {
			d := word.Display
			if word.IsPangram && word.Word != "" {
				d += "*"
			}
			ws = append(ws, d)
		}
		fmt.Fprintf(w, "%2d letters (%d): %s\n", g.Length, g.Count, strings.Join(ws, " "))
	}
	fmt.Fprintf(w, "words %d  points %d  pangrams %d\n", v.Totals.Words, v.Totals.Points, v.Totals.PangramCount)
}

// puzzleProvider wires the daily provider, persisting to dbPath when set.
func puzzleProvider(ctx context.Context, wordsFile, dbPath, salt string) (*daily.Provider, func(), error) {
	wp, err := loadCorpus(ctx, wordsFile)
	if err != nil {
		return nil, nil, err
	}
	if dbPath == "" {
		return daily.NewProvider(nil, wp, salt), func() {}, nil
	}
	db, err := database.OpenMigrated(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return daily.NewProvider(daily.NewStore(db), wp, salt), func() { _ = db.Close() }, nil
}

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	wordsFile := ""
	verbose := false
	dbPath := ""
	salt := ""
	cmd := &cli.Command{
		Name:  "bee",
		Usage: "spelling bee solver",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "words",
				Aliases:     []string{"w"},
				Usage:       "word list, one word per line; default is the built-in list",
				Sources:     cli.EnvVars("WORDS_FILE"),
				Destination: &wordsFile,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "log at info level",
				Destination: &verbose,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "list the words for a letter set",
				ArgsUsage: "CENTER OUTER...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "hint",
						Value: "all",
						Usage: "reveal level: none, total, lengths, first_letters, all",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg() < 1 {
						return cli.Exit("must supply the letters, center first", 2)
					}
					return solve(ctx, os.Stdout, wordsFile, cmd.String("hint"), cmd.Args().Slice())
				},
			},
			{
				Name:  "today",
				Usage: "print today's puzzle",
				Flags: dailyFlags(&dbPath, &salt),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					p, done, err := puzzleProvider(ctx, wordsFile, dbPath, salt)
					if err != nil {
						return err
					}
					defer done()
					pz, err := p.FetchToday(ctx)
					if err != nil {
						if h := daily.HintOf(err); h != "" {
							return cli.Exit(fmt.Sprintf("%v (%s)", err, h), 1)
						}
						return err
					}
					fmt.Printf("%s  %s\n", pz.Date, letters.FromSlice(pz.Letters()))
					return nil
				},
			},
			{
				Name:  "backfill",
				Usage: "issue and record daily puzzles starting today",
				Flags: append(dailyFlags(&dbPath, &salt), &cli.IntFlag{
					Name:  "days",
					Value: 7,
					Usage: "number of days to issue",
				}),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if dbPath == "" {
						return cli.Exit("backfill needs --db", 2)
					}
					days := cmd.Int("days")
					if days < 1 {
						return cli.Exit("--days must be positive", 2)
					}
					p, done, err := puzzleProvider(ctx, wordsFile, dbPath, salt)
					if err != nil {
						return err
					}
					defer done()

					bar := progressbar.Default(int64(days), "issuing")
					start := time.Now().UTC()
					for i := 0; i < days; i++ {
						if _, err := p.Fetch(ctx, start.AddDate(0, 0, i)); err != nil {
							return err
						}
						_ = bar.Add(1)
					}
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("bee")
	}
}

func dailyFlags(dbPath, salt *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "SQLite file recording issued puzzles; empty derives without recording",
			Sources:     cli.EnvVars("DB_PATH"),
			Destination: dbPath,
		},
		&cli.StringFlag{
			Name:        "salt",
			Usage:       "secret mixed into the daily selection",
			Value:       "spellingbee",
			Sources:     cli.EnvVars("DAILY_SALT"),
			Destination: salt,
		},
	}
}
