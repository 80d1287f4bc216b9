package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/db"
	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
)

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "bracketctl",
		Usage:     "render and inspect festival tournament brackets",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Commands: []*cli.Command{
			renderCommand(),
			generateCommand(),
			geometryCommand(),
			seedCommand(),
			migrateCommand(),
		},
	}
}

// openInput returns stdin for "-" or an empty path.
func openInput(c *cli.Context, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(c.App.Reader), nil
	}
	return os.Open(path)
}

func writeOutput(c *cli.Context, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := c.App.Writer.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func encodeLayout(layout *brackets.Layout, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "svg":
		if err := brackets.RenderSVG(&buf, layout, brackets.SVGStyle{}); err != nil {
			return nil, err
		}
	case "json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(layout); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q (want svg or json)", format)
	}
	return buf.Bytes(), nil
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   "svg",
	Usage:   "output format: svg or json (layout)",
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "lay out a bracket JSON file and write it as SVG or layout JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Value: "-", Usage: "bracket JSON (array of rounds or {\"rounds\": [...]}), - for stdin"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output file, - for stdout"},
			formatFlag,
		},
		Action: func(c *cli.Context) error {
			in, err := openInput(c, c.String("in"))
			if err != nil {
				return err
			}
			defer in.Close()

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read bracket: %w", err)
			}
			bracket, err := models.ParseBracket(data)
			if err != nil {
				return err
			}

			layout := brackets.Compute(bracket)
			if layout == nil {
				return errors.New("bracket has no rounds, nothing to render")
			}
			for _, w := range layout.Warnings {
				fmt.Fprintln(c.App.ErrWriter, "warning:", w)
			}

			out, err := encodeLayout(layout, c.String("format"))
			if err != nil {
				return err
			}
			return writeOutput(c, c.String("out"), out)
		},
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "seed a single elimination bracket from entrant names",
		ArgsUsage: "NAME...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "rounds-only", Usage: "print the rounds JSON instead of rendering"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "-", Usage: "output file, - for stdout"},
			formatFlag,
		},
		Action: func(c *cli.Context) error {
			bracket, err := brackets.GenerateRounds(c.Args().Slice())
			if err != nil {
				return err
			}

			var out []byte
			if c.Bool("rounds-only") {
				out, err = json.MarshalIndent(bracket, "", "  ")
				out = append(out, '\n')
			} else {
				out, err = encodeLayout(brackets.Compute(bracket), c.String("format"))
			}
			if err != nil {
				return err
			}
			return writeOutput(c, c.String("out"), out)
		},
	}
}

func geometryCommand() *cli.Command {
	return &cli.Command{
		Name:  "geometry",
		Usage: "print gap, margin and offset per round",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rounds", Aliases: []string{"n"}, Value: 4, Usage: "number of rounds"},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("rounds")
			if n < 1 {
				return fmt.Errorf("rounds must be at least 1, got %d", n)
			}
			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROUND\tX\tGAP\tMARGIN\tOFFSET")
			for r := 0; r < n; r++ {
				fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\n",
					r, brackets.ColumnX(r), brackets.VerticalGap(r), brackets.FirstMatchMargin(r), brackets.FirstMatchOffset(r))
			}
			return tw.Flush()
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "validate a seed YAML file and print what it holds",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "seed YAML file"},
		},
		Action: func(c *cli.Context) error {
			seed, err := repositories.LoadSeed(c.String("file"))
			if err != nil {
				return err
			}
			summary := seed.Summary()
			keys := make([]string, 0, len(summary))
			for k := range summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DOCUMENT\tITEMS")
			for _, k := range keys {
				fmt.Fprintf(tw, "%s\t%d\n", k, summary[k])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			for _, e := range seed.Events {
				if layout := brackets.Compute(e.BracketData); layout != nil && len(layout.Warnings) > 0 {
					fmt.Fprintf(c.App.Writer, "event %s: %s\n", e.ID, strings.Join(layout.Warnings, "; "))
				}
			}
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dsn", EnvVars: []string{"DATABASE_URL"}, Required: true, Usage: "postgres connection string"},
		},
		Action: func(c *cli.Context) error {
			conn, err := db.Connect(c.String("dsn"), 5*time.Second)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(conn); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "migrations applied")
			return nil
		},
	}
}
