// Package typstspell checks the spelling of Typst documents.
//
// A check run flows one way:
// lines → sanitize.Pipeline → tokens → dictionary.FindUnknown →
// attribute.Matcher → per-line report → render.
package typstspell

import (
	"context"
	"crypto/rand"
	"io"
	"log"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/typstspell/pkg/typstspell/attribute"
	"github.com/cognicore/typstspell/pkg/typstspell/dictionary"
	"github.com/cognicore/typstspell/pkg/typstspell/provision"
	"github.com/cognicore/typstspell/pkg/typstspell/render"
	"github.com/cognicore/typstspell/pkg/typstspell/sanitize"
	"github.com/cognicore/typstspell/pkg/typstspell/store"
)

// Rendering modes recorded with each run.
const (
	ModeHighlight = "highlight"
	ModeReport    = "report"
)

// Checker is the spell-check engine for one dictionary snapshot
type Checker struct {
	dict     *dictionary.Dictionary
	pipeline *sanitize.Pipeline
	match    attribute.Options
	store    store.Store
	record   bool
	now      func() time.Time
	logger   *log.Logger
	entropy  *ulid.MonotonicEntropy
}

// Options configures a Checker
type Options struct {
	// Pipeline defaults to sanitize.NewPipeline().
	Pipeline *sanitize.Pipeline
	Strict   bool

	// Store receives a Run for every check when RecordHistory is set.
	Store         store.Store
	RecordHistory bool

	Now    func() time.Time
	Logger *log.Logger
}

// New creates a Checker using dict as the membership oracle
func New(dict *dictionary.Dictionary, opts Options) *Checker {
	c := &Checker{
		dict:     dict,
		pipeline: opts.Pipeline,
		match:    attribute.Options{Strict: opts.Strict},
		store:    opts.Store,
		record:   opts.RecordHistory && opts.Store != nil,
		now:      opts.Now,
		logger:   opts.Logger,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
	if c.pipeline == nil {
		c.pipeline = sanitize.NewPipeline()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	return c
}

// Request is one document to check
type Request struct {
	Path  string
	Lines []string
	Mode  string
}

// Result holds everything the renderers need
type Result struct {
	ID      string
	Path    string
	Lines   []string
	Tokens  []string
	Unknown []string
	Matcher *attribute.Matcher
	Report  attribute.Report
}

// Summary adapts the result for the render package.
func (r Result) Summary(lineBase int) render.Summary {
	return render.Summary{
		Lines:    r.Lines,
		Words:    len(r.Tokens),
		Matcher:  r.Matcher,
		Report:   r.Report,
		LineBase: lineBase,
	}
}

// Check runs the full pipeline over a document. The only error is a
// cancelled context; history failures are logged and ignored.
func (c *Checker) Check(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	now := c.now()
	tokens := c.pipeline.Process(req.Lines)
	unknown := dictionary.FindUnknown(tokens, c.dict)
	matcher := attribute.NewMatcher(unknown, c.match)

	res := Result{
		ID:      ulid.MustNew(ulid.Timestamp(now), c.entropy).String(),
		Path:    req.Path,
		Lines:   req.Lines,
		Tokens:  tokens,
		Unknown: unknown,
		Matcher: matcher,
		Report:  matcher.Attribute(req.Lines),
	}
	c.logger.Printf("Checked %s: %d words, %d unknown", req.Path, len(tokens), len(unknown))

	if c.record {
		mode := req.Mode
		if mode == "" {
			mode = ModeHighlight
		}
		run := store.Run{
			ID:        res.ID,
			Path:      req.Path,
			Mode:      mode,
			CheckedAt: now,
			Words:     len(tokens),
			Unknown:   matcher.Tokens(),
			Misses:    len(unknown),
		}
		if err := c.store.RecordRun(ctx, run); err != nil {
			c.logger.Printf("Warning: could not record run %s: %v", res.ID, err)
		}
	}

	return res, nil
}

// BuildDictionary assembles the run's dictionary from the word list source,
// extra words (the configured ignore list) and the store's personal words.
// A nil store is allowed.
func BuildDictionary(ctx context.Context, src provision.Source, st store.Store, extra ...string) (*dictionary.Dictionary, error) {
	lines, err := src.Lines(ctx)
	if err != nil {
		return nil, err
	}
	dict := dictionary.Build(lines)
	dict.Merge(dictionary.Build(extra))

	if st != nil {
		personal, err := st.PersonalWords(ctx)
		if err != nil {
			return nil, err
		}
		dict.Merge(dictionary.Build(personal))
	}
	return dict, nil
}

// Trace returns the output of every sanitization stage for lines.
func (c *Checker) Trace(lines []string) []sanitize.StepResult {
	return c.pipeline.Trace(lines)
}
