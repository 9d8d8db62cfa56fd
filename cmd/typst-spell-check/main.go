package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cognicore/typstspell/internal/docio"
	"github.com/cognicore/typstspell/pkg/typstspell"
	"github.com/cognicore/typstspell/pkg/typstspell/config"
	"github.com/cognicore/typstspell/pkg/typstspell/dictionary"
	"github.com/cognicore/typstspell/pkg/typstspell/render"
	"github.com/cognicore/typstspell/pkg/typstspell/store"
)

const usage = `Usage:
  typst-spell-check [flags] <file> [--report]
  typst-spell-check learn <word>...
  typst-spell-check forget <word>...
  typst-spell-check words
  typst-spell-check history [-n N]

Flags:
`

// errUsage marks malformed invocations; they exit with status 2.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "learn", "forget", "words", "history":
			return runStoreCommand(ctx, args[0], args[1:], stdout, stderr)
		}
	}

	ca, err := parseCheckArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		printUsage(stderr, newCheckFlagSet(&checkArgs{}, stderr))
		return 2
	}

	if err := check(ctx, ca, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type checkArgs struct {
	path      string
	report    bool
	format    string
	color     string
	strict    bool
	dict      string
	config    string
	trace     bool
	noHistory bool
	watch     bool
	verbose   bool
}

func newCheckFlagSet(ca *checkArgs, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("typst-spell-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&ca.report, "report", false, "Print a per-line report instead of highlighting")
	fs.StringVar(&ca.format, "format", "text", "Output format: text or html")
	fs.StringVar(&ca.color, "color", "auto", "Highlight colors: auto, always or never")
	fs.BoolVar(&ca.strict, "strict", false, "Only flag whole-word matches")
	fs.StringVar(&ca.dict, "dict", "", "Word list file (never downloaded)")
	fs.StringVar(&ca.config, "config", "", "Config file")
	fs.BoolVar(&ca.trace, "trace", false, "Print every sanitization stage to stderr")
	fs.BoolVar(&ca.noHistory, "no-history", false, "Do not record this run")
	fs.BoolVar(&ca.watch, "watch", false, "Check again whenever the file changes")
	fs.BoolVar(&ca.verbose, "v", false, "Verbose logging")
	fs.Usage = func() { printUsage(stderr, fs) }
	return fs
}

// parseCheckArgs accepts flags before and after the file argument, so both
// "file --report" and "--report file" work.
func parseCheckArgs(args []string, stderr io.Writer) (checkArgs, error) {
	var ca checkArgs
	fs := newCheckFlagSet(&ca, stderr)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return checkArgs{}, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	switch len(positional) {
	case 0:
		return checkArgs{}, fmt.Errorf("%w: missing <file>", errUsage)
	case 1:
		ca.path = positional[0]
	default:
		return checkArgs{}, fmt.Errorf("%w: expected one file, got %d", errUsage, len(positional))
	}

	switch ca.format {
	case "text", "html":
	default:
		return checkArgs{}, fmt.Errorf("%w: --format must be text or html, got %q", errUsage, ca.format)
	}
	switch ca.color {
	case "auto", "always", "never":
	default:
		return checkArgs{}, fmt.Errorf("%w: --color must be auto, always or never, got %q", errUsage, ca.color)
	}
	return ca, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprint(w, usage)
	fs.PrintDefaults()
}

// session holds everything that stays fixed while one document is checked,
// possibly many times in watch mode.
type session struct {
	args    checkArgs
	cfg     *config.Config
	store   store.Store
	checker *typstspell.Checker
}

func newSession(ctx context.Context, ca checkArgs, stderr io.Writer) (*session, error) {
	logger := newLogger(stderr, ca.verbose)

	cfg, err := config.Load(config.Options{Path: ca.config})
	if err != nil {
		return nil, err
	}

	loader := config.Loader{Config: cfg, DictPath: ca.dict, Logger: logger}
	comp, err := loader.Components()
	if err != nil {
		return nil, err
	}
	logger.Printf("Using dictionary %s", comp.DictPath)

	st, err := loader.OpenStore(ctx)
	if err != nil {
		log.New(stderr, "", 0).Printf("Warning: personal dictionary and history unavailable: %v", err)
		st = nil
	}

	dict, err := typstspell.BuildDictionary(ctx, comp.Source, st, comp.Ignore...)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, err
	}
	logger.Printf("Loaded %d dictionary words", dict.Len())

	return &session{
		args:  ca,
		cfg:   cfg,
		store: st,
		checker: typstspell.New(dict, typstspell.Options{
			Strict:        ca.strict || cfg.Strict,
			Store:         st,
			RecordHistory: cfg.HistoryEnabled() && !ca.noHistory,
			Logger:        logger,
		}),
	}, nil
}

func (s *session) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// check reads the document and renders one result to stdout.
func (s *session) check(ctx context.Context, stdout, stderr io.Writer) error {
	ca := s.args
	lines, err := docio.ReadLines(ca.path)
	if err != nil {
		return err
	}

	if ca.trace {
		for _, step := range s.checker.Trace(lines) {
			fmt.Fprintf(stderr, "[%s] %s\n", step.Stage, step.Output)
		}
	}

	mode := typstspell.ModeHighlight
	if ca.report {
		mode = typstspell.ModeReport
	}
	res, err := s.checker.Check(ctx, typstspell.Request{Path: ca.path, Lines: lines, Mode: mode})
	if err != nil {
		return err
	}
	summary := res.Summary(s.cfg.Report.LineBase)

	switch {
	case ca.format == "html":
		return render.HTML(stdout, filepath.Base(ca.path), summary)
	case ca.report:
		return render.Report(stdout, summary)
	default:
		return render.Highlight(stdout, summary, s.cfg.Highlight.Color, colorOptions(ca.color)...)
	}
}

func check(ctx context.Context, ca checkArgs, stdout, stderr io.Writer) error {
	// Fail on an unreadable document before any dictionary download.
	if _, err := docio.ReadLines(ca.path); err != nil {
		return err
	}
	s, err := newSession(ctx, ca, stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	if ca.watch {
		return watch(ctx, s, stdout, stderr)
	}
	return s.check(ctx, stdout, stderr)
}

func colorOptions(mode string) []termenv.OutputOption {
	switch mode {
	case "always":
		return []termenv.OutputOption{termenv.WithProfile(termenv.ANSI)}
	case "never":
		return []termenv.OutputOption{termenv.WithProfile(termenv.Ascii)}
	default:
		return nil
	}
}

func newLogger(stderr io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(stderr, "typst-spell-check: ", log.LstdFlags)
}

func runStoreCommand(ctx context.Context, name string, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typst-spell-check "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Config file")
	limit := fs.Int("n", store.DefaultRecentLimit, "Number of runs to show (history)")
	verbose := fs.Bool("v", false, "Verbose logging")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	words := fs.Args()

	switch name {
	case "learn", "forget":
		if len(words) == 0 {
			fmt.Fprintf(stderr, "Error: %s needs at least one word\n", name)
			return 2
		}
	default:
		if len(words) != 0 {
			fmt.Fprintf(stderr, "Error: %s takes no arguments\n", name)
			return 2
		}
	}

	cfg, err := config.Load(config.Options{Path: *configPath})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	loader := config.Loader{Config: cfg, Logger: newLogger(stderr, *verbose)}
	st, err := loader.OpenStore(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer st.Close()

	switch name {
	case "learn":
		err = learn(ctx, st, words, stdout)
	case "forget":
		err = forget(ctx, st, words, stdout)
	case "words":
		err = listWords(ctx, st, stdout)
	case "history":
		err = history(ctx, st, *limit, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func learn(ctx context.Context, st store.Store, words []string, w io.Writer) error {
	if err := st.AddPersonalWords(ctx, words); err != nil {
		return err
	}
	fmt.Fprintf(w, "Added %d word(s) to the personal dictionary.\n", len(words))
	return nil
}

func forget(ctx context.Context, st store.Store, words []string, w io.Writer) error {
	for _, word := range words {
		removed, err := st.RemovePersonalWord(ctx, word)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(w, "Removed %s\n", word)
		} else {
			fmt.Fprintf(w, "Not in personal dictionary: %s\n", word)
		}
	}
	return nil
}

func listWords(ctx context.Context, st store.Store, w io.Writer) error {
	words, err := st.PersonalWords(ctx)
	if err != nil {
		return err
	}
	for _, word := range dictionary.Build(words).All() {
		fmt.Fprintln(w, word)
	}
	return nil
}

func history(ctx context.Context, st store.Store, limit int, w io.Writer) error {
	runs, err := st.RecentRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %-9s  %d words, %d unknown  %s\n",
			r.ID, r.CheckedAt.Local().Format("2006-01-02 15:04:05"), r.Mode, r.Words, r.Misses, r.Path)
		if len(r.Unknown) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(r.Unknown, ", "))
		}
	}
	return nil
}
