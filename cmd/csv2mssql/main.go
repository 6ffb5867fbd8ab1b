// Command csv2mssql converts a tabular file into a SQL Server script with a
// CREATE TABLE statement and batched INSERT statements.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/csvsql/csv2mssql"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app := &cli.Command{
		Name:  "csv2mssql",
		Usage: "generate a SQL Server script (CREATE TABLE + INSERT) from a tabular file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "csv",
				Usage:    "path to the source file (.csv, .tsv, .xlsx, .parquet, optionally compressed)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "table",
				Usage:    "target table name, e.g. dbo.MyTable",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "output .sql path (default: <source basename>_mssql.sql)",
			},
			&cli.StringFlag{
				Name:    "encoding",
				Value:   "utf-8",
				Usage:   "IANA charset name of the source file",
				Sources: cli.EnvVars("CSV2MSSQL_ENCODING"),
			},
			&cli.StringFlag{
				Name:  "delimiter",
				Usage: "field delimiter (auto-detected if omitted; use \\t for tab)",
			},
			&cli.StringSliceFlag{
				Name:  "na",
				Value: csv2mssql.DefaultNullValues,
				Usage: "cell values treated as NULL",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "cap the number of rows processed",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Value: csv2mssql.DefaultBatchSize,
				Usage: "maximum rows per INSERT statement",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("generation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	delimiter, err := parseDelimiterFlag(cmd.String("delimiter"))
	if err != nil {
		return err
	}

	outPath, err := csv2mssql.Generate(ctx, csv2mssql.Options{
		Source:     cmd.String("csv"),
		Table:      cmd.String("table"),
		Out:        cmd.String("out"),
		Encoding:   cmd.String("encoding"),
		Delimiter:  delimiter,
		NullValues: cmd.StringSlice("na"),
		Limit:      int(cmd.Int("limit")),
		BatchSize:  int(cmd.Int("batch-size")),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Wrote SQL to: %s\n", outPath)
	return nil
}

// parseDelimiterFlag converts the --delimiter flag value into a rune. The
// two-character escape \t is accepted for shells where a literal tab is
// awkward to pass.
func parseDelimiterFlag(value string) (rune, error) {
	if value == "" {
		return 0, nil
	}
	if value == `\t` {
		return '\t', nil
	}

	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	return runes[0], nil
}
