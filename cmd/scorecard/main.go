// cmd/scorecard/main.go
// Operator tool for the score card database.
//
// Usage:
//
//	go run ./cmd/scorecard init
//	go run ./cmd/scorecard --db ./scorecard.db list
//	go run ./cmd/scorecard export --out scorecard.xlsx
//	go run ./cmd/scorecard chart --rank penalty --out penalty.png
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"

	"github.com/padraicbc/scorecard/charts"
	"github.com/padraicbc/scorecard/config"
	bundb "github.com/padraicbc/scorecard/db"
	"github.com/padraicbc/scorecard/export"
	"github.com/padraicbc/scorecard/scorecard"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "scorecard",
		Usage: "inspect and maintain the score card database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Usage: "database file (defaults to DB_PATH)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the table, seeding it if the file is new",
				Action: func(c *cli.Context) error {
					return withDB(c, func(ctx context.Context, db *bun.DB, created bool) error {
						seeded, err := bundb.Bootstrap(ctx, db, created)
						if err != nil {
							return err
						}
						if seeded {
							fmt.Fprintln(c.App.Writer, "database initialized with sample data")
						} else {
							fmt.Fprintln(c.App.Writer, "schema ready")
						}
						return nil
					})
				},
			},
			{
				Name:  "list",
				Usage: "print every contestant",
				Action: func(c *cli.Context) error {
					return withSnapshot(c, func(snap scorecard.Snapshot) error {
						return printTable(c.App.Writer, snap)
					})
				},
			},
			{
				Name:  "export",
				Usage: "write the table as an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: "scorecard.xlsx", Usage: "output file"},
				},
				Action: func(c *cli.Context) error {
					return withSnapshot(c, func(snap scorecard.Snapshot) error {
						return writeFile(c.String("out"), func(w io.Writer) error {
							return export.Write(w, snap)
						})
					})
				},
			},
			{
				Name:  "chart",
				Usage: "render a ranking chart as PNG",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "rank", Value: "tops", Usage: "tops or penalty"},
					&cli.StringFlag{Name: "out", Value: "ranking.png", Usage: "output file"},
					&cli.IntFlag{Name: "width", Value: 800, Usage: "image width in pixels"},
				},
				Action: func(c *cli.Context) error {
					title, rank := "Top Scorer", scorecard.RankByTops
					switch c.String("rank") {
					case "tops":
					case "penalty":
						title, rank = "Top Penalties", scorecard.RankByPenalty
					default:
						return fmt.Errorf("invalid rank %q: must be tops or penalty", c.String("rank"))
					}
					return withSnapshot(c, func(snap scorecard.Snapshot) error {
						png, err := charts.Ranking(title, rank(snap), charts.Options{Width: c.Int("width")})
						if err != nil {
							return err
						}
						return os.WriteFile(c.String("out"), png, 0o644)
					})
				},
			},
		},
	}
}

func withDB(c *cli.Context, fn func(ctx context.Context, db *bun.DB, created bool) error) error {
	path := c.String("db")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		path = cfg.DBPath
	}

	db, created, err := bundb.Open(path, false)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(c.Context, db, created)
}

func withSnapshot(c *cli.Context, fn func(scorecard.Snapshot) error) error {
	return withDB(c, func(ctx context.Context, db *bun.DB, _ bool) error {
		snap, err := scorecard.NewStore(db).Load(ctx)
		if err != nil {
			return err
		}
		return fn(snap)
	})
}

func printTable(w io.Writer, snap scorecard.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCONTESTANT\tTOPS\tPENALTY\tDESCRIPTION")
	for _, c := range snap {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name(), orBlank(c.ContestantID), orBlank(c.TotalTops), orBlank(c.TotalPenalty), orBlank(c.Description))
	}
	return tw.Flush()
}

func orBlank[T any](v *T) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
