// Command croissant generates and validates Croissant dataset metadata.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goccy/go-json"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/builder"
	"github.com/reoring/croissant/checksum"
	"github.com/reoring/croissant/i18n"
	"github.com/reoring/croissant/schema"
	"github.com/reoring/croissant/source"
	"github.com/reoring/croissant/validate"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `croissant CLI

Usage:
  croissant generate [flags] csv_path name description license_url creator_name url
  croissant validate [flags] metadata_path
  croissant schema

Run "croissant <command> -h" for the flags of each command.`)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}
	if err := source.Use(cfg.JSONDriver); err != nil {
		fmt.Fprintf(stderr, "ERROR: CROISSANT_JSON_DRIVER: %v\n", err)
		return exitUsage
	}
	i18n.SetLanguage(cfg.Lang)

	switch args[0] {
	case "generate":
		return generateCmd(ctx, cfg, args[1:], stdout, stderr)
	case "validate":
		return validateCmd(ctx, cfg, args[1:], stdout, stderr)
	case "schema":
		return schemaCmd(stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func newLogger(w io.Writer, cfg config, verbose bool) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func generateCmd(ctx context.Context, cfg config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		out     string
		version string
		citeAs  string
		digest  string
		attrs   string
		verbose bool
	)
	fs.StringVar(&out, "output", builder.DefaultOutput, "output path for the metadata file")
	fs.StringVar(&version, "version", "", "dataset version (default "+builder.DefaultVersion+")")
	fs.StringVar(&citeAs, "cite-as", "", "citation text")
	fs.StringVar(&digest, "digest", string(checksum.SHA256), "checksum algorithm: sha256 or md5")
	fs.StringVar(&attrs, "attrs", "", "YAML file with default dataset attributes")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: croissant generate [flags] csv_path name description license_url creator_name url")
		fs.PrintDefaults()
	}

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) != 6 {
		fs.Usage()
		return exitUsage
	}
	algo, err := checksum.ParseAlgorithm(digest)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}

	opts := builder.Options{
		CSVPath:     pos[0],
		Name:        pos[1],
		Description: pos[2],
		License:     pos[3],
		Creator:     pos[4],
		URL:         pos[5],
		CiteAs:      citeAs,
		Version:     version,
		Output:      out,
		Digest:      algo,
		ChunkSize:   cfg.ChunkSize,
		Logger:      newLogger(stderr, cfg, verbose),
	}
	if attrs != "" {
		a, err := builder.LoadAttributes(attrs)
		if err != nil {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
			return exitFail
		}
		opts = a.Apply(opts)
	}

	path, err := builder.Generate(ctx, opts)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFail
	}
	fmt.Fprintf(stdout, "Generated %s\n", path)
	return exitOK
}

func validateCmd(ctx context.Context, cfg config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		noDeep  bool
		verbose bool
	)
	fs.BoolVar(&noDeep, "no-deep", false, "skip schema validation")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: croissant validate [flags] metadata_path")
		fs.PrintDefaults()
	}

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return flagExit(err)
	}
	if len(pos) != 1 {
		fs.Usage()
		return exitUsage
	}

	deep := validate.Available(schema.Document())
	switch {
	case noDeep:
		deep = validate.Unavailable("deep validation disabled by --no-deep; skipped schema validation")
	case !cfg.Deep:
		deep = validate.Unavailable("deep validation disabled by CROISSANT_DEEP_VALIDATION; skipped schema validation")
	}
	v := validate.New(
		validate.WithDeep(deep),
		validate.WithParseOpt(croissant.ParseOpt{
			Strictness: croissant.Strictness{OnDuplicateKey: croissant.Warn},
			MaxDepth:   cfg.MaxDepth,
		}),
		validate.WithLogger(newLogger(stderr, cfg, verbose)),
	)

	report := v.ValidateFile(ctx, pos[0])
	for _, d := range report.Diagnostics {
		w := stderr
		if d.Severity == croissant.Info {
			w = stdout
		}
		fmt.Fprintln(w, d.Line())
	}
	if !report.Passed() {
		return exitFail
	}
	return exitOK
}

func schemaCmd(stdout, stderr io.Writer) int {
	s, err := schema.JSONSchema()
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFail
	}
	b, err := json.MarshalIndent(s.AsMap(), "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitFail
	}
	fmt.Fprintln(stdout, string(b))
	return exitOK
}

// parseInterspersed parses fs allowing flags after positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

func flagExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	return exitUsage
}
