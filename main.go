package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/mcncl/jsoncmp/internal/annotator"
	"github.com/mcncl/jsoncmp/internal/comparator"
	"github.com/mcncl/jsoncmp/internal/config"
	"github.com/mcncl/jsoncmp/internal/errors"
	"github.com/mcncl/jsoncmp/internal/formatter"
	"github.com/mcncl/jsoncmp/internal/log"
	"github.com/mcncl/jsoncmp/internal/models"
	"github.com/mcncl/jsoncmp/internal/parser"
	"github.com/mcncl/jsoncmp/internal/render"
)

// CLI defines the command-line interface
var CLI struct {
	Left  string `arg:"" help:"Left document. Use - to read it from stdin." name:"left"`
	Right string `arg:"" help:"Right document. Use - to read it from stdin." name:"right"`

	View        string   `help:"Output view: side, list, json or summary." short:"V" placeholder:"VIEW"`
	SortKeys    *bool    `help:"Print object keys in sorted order." negatable:""`
	Select      string   `help:"gjson query applied to both documents before comparing." placeholder:"QUERY"`
	LeftSelect  string   `help:"gjson query applied to the left document only." placeholder:"QUERY"`
	RightSelect string   `help:"gjson query applied to the right document only." placeholder:"QUERY"`
	Ignore      []string `help:"Ignore differences at or below PATH, e.g. /metadata/[0]. Repeatable." short:"x" sep:"none" placeholder:"PATH"`
	InputFormat string   `help:"Input format: auto, json, yaml or toml." default:"auto" placeholder:"FORMAT"`
	Color       *bool    `help:"Colour the output." negatable:""`
	Width       int      `help:"Terminal width for the side-by-side view." short:"w"`
	ExitCode    bool     `help:"Exit with status 1 when the documents differ." short:"e"`
	Output      string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string   `help:"Path to config file. If not specified, searches for .jsoncmp.yml." short:"c" type:"path"`
	Debug       bool     `help:"Enable debug logging." short:"d"`

	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Out    io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

// Exit codes
const (
	exitEqual   = 0
	exitDiffers = 1
	exitError   = 2
)

func main() {
	kong.Parse(&CLI,
		kong.Name("jsoncmp"),
		kong.Description("Compare two JSON documents structurally and show where they differ"),
		kong.UsageOnError(),
		kong.Vars{"version": "jsoncmp version " + Version},
	)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(exitError)
	}

	log.InitLogger(cfg.Dev.Debug)

	differs, err := run(&Context{Debug: cfg.Dev.Debug, Config: cfg, Out: os.Stdout})
	if err != nil {
		log.WithError(err).Debug("run failed")
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsoncmp --help\n")
		os.Exit(exitError)
	}

	if differs && CLI.ExitCode {
		os.Exit(exitDiffers)
	}
	os.Exit(exitEqual)
}

// loadConfig resolves the config file and applies the command line on top
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		SortKeys: CLI.SortKeys,
		View:     CLI.View,
		Color:    CLI.Color,
		Width:    CLI.Width,
		Ignore:   CLI.Ignore,
		Debug:    CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

// run executes the main program logic and reports whether the documents
// differ
func run(ctx *Context) (bool, error) {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
		if err := cfg.Validate(); err != nil {
			return false, errors.NewConfigError("invalid default config", err)
		}
	}

	// 1. Parse both documents
	left, right, err := parseInputs(context.Background())
	if err != nil {
		return false, err
	}

	// 2. Narrow them down to the selected parts
	left, right, err = applySelections(left, right)
	if err != nil {
		return false, err
	}

	// 3. Compare
	diffs := comparator.Compare(left, right)
	diffs = comparator.Filter(diffs, cfg.IgnorePaths())
	stats := comparator.Summarize(left, right, diffs)
	log.WithField("differences", stats.Total()).
		WithField("left_nodes", stats.LeftNodes).
		WithField("right_nodes", stats.RightNodes).
		Debug("compared documents")

	// 4. Render the chosen view
	out := ctx.Out
	if out == nil {
		out = os.Stdout
	}
	var file *os.File
	if CLI.Output != "" {
		file, err = os.Create(CLI.Output)
		if err != nil {
			return false, errors.NewOutputError(fmt.Sprintf("failed to create file '%s'", CLI.Output), err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	// colour is dropped for pipes and files unless --color asks for it
	color := cfg.Color && (CLI.Color != nil || isTerminal(out))

	if err := writeView(out, cfg, color, left, right, diffs, stats); err != nil {
		return false, err
	}

	if file != nil {
		if err := file.Close(); err != nil {
			return false, errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Comparison written to %s\n", CLI.Output)
	}

	return len(diffs) > 0, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// parseInputs reads the two documents concurrently
func parseInputs(ctx context.Context) (models.Value, models.Value, error) {
	if CLI.Left == parser.StdinPath && CLI.Right == parser.StdinPath {
		return models.Value{}, models.Value{}, errors.NewInputError("both documents read from stdin", errors.ErrBothStdin)
	}

	format, err := parser.ParseFormat(CLI.InputFormat)
	if err != nil {
		return models.Value{}, models.Value{}, err
	}

	var left, right models.Value
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := parseDocument(ctx, CLI.Left, format)
		left = v
		return err
	})
	g.Go(func() error {
		v, err := parseDocument(ctx, CLI.Right, format)
		right = v
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Value{}, models.Value{}, err
	}
	return left, right, nil
}

func parseDocument(ctx context.Context, path string, format parser.Format) (models.Value, error) {
	if err := ctx.Err(); err != nil {
		return models.Value{}, err
	}
	if format != parser.FormatAuto {
		if ext, ok := parser.ExtensionFormat(path); ok && ext != format {
			log.Warnf("reading %s as %s although its extension says %s", path, format, ext)
		}
	}
	log.Debugf("parsing %s", path)
	v, err := parser.ParseFileAs(path, format)
	if err != nil {
		return models.Value{}, err
	}
	log.Tracef("parsed %s: %s", path, v.Kind())
	return v, nil
}

// applySelections runs --select and then the per-side queries
func applySelections(left, right models.Value) (models.Value, models.Value, error) {
	var err error
	if left, err = selectSide(left, CLI.Select, CLI.LeftSelect); err != nil {
		return models.Value{}, models.Value{}, err
	}
	if right, err = selectSide(right, CLI.Select, CLI.RightSelect); err != nil {
		return models.Value{}, models.Value{}, err
	}
	return left, right, nil
}

func selectSide(v models.Value, queries ...string) (models.Value, error) {
	var err error
	for _, q := range queries {
		if v, err = parser.Select(v, q); err != nil {
			return models.Value{}, err
		}
	}
	return v, nil
}

// writeView renders the configured view to w
func writeView(w io.Writer, cfg *config.Config, color bool, left, right models.Value, diffs []models.DiffRecord, stats comparator.Stats) error {
	opts := render.Options{
		Color: color,
		Width: cfg.Width,
		Palette: render.Palette{
			TypeMismatch:  cfg.Colors.TypeMismatch,
			ValueMismatch: cfg.Colors.ValueMismatch,
			Missing:       cfg.Colors.Missing,
			Gutter:        cfg.Colors.Gutter,
		},
	}
	log.Debugf("rendering %s view", cfg.View)

	bw := bufio.NewWriter(w)
	var err error
	switch cfg.View {
	case config.ViewList:
		err = render.List(bw, diffs, opts)
		if err == nil {
			_, err = fmt.Fprintln(bw, render.Summary(stats))
		}
	case config.ViewJSON:
		err = render.Report(bw, diffs, stats)
	case config.ViewSummary:
		_, err = fmt.Fprintln(bw, render.Summary(stats))
	default:
		leftLines := annotator.Annotate(formatter.Format(left, cfg.SortKeys), diffs, models.Left)
		rightLines := annotator.Annotate(formatter.Format(right, cfg.SortKeys), diffs, models.Right)
		err = render.Header(bw, CLI.Left, CLI.Right, opts)
		if err == nil {
			err = render.SideBySide(bw, leftLines, rightLines, opts)
		}
		if err == nil {
			_, err = fmt.Fprintln(bw, render.Summary(stats))
		}
	}
	if err != nil {
		return errors.NewRenderError("failed to render comparison", err)
	}
	if err := bw.Flush(); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}
