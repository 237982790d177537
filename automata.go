package automata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ersincine/automata/pkg/cfg"
	"github.com/ersincine/automata/pkg/descfile"
	"github.com/ersincine/automata/pkg/npda"
	"github.com/ersincine/automata/pkg/selftest"
	"github.com/ersincine/automata/pkg/tm"
)

// Kind identifies one family of formal system hosted by a Workbench.
type Kind string

const (
	// KindGrammar is the context-free grammar engine.
	KindGrammar Kind = "cfg"
	// KindPushdown is the nondeterministic pushdown automaton engine.
	KindPushdown Kind = "npda"
	// KindMachine is the deterministic Turing machine engine.
	KindMachine Kind = "tm"
)

// allKinds lists every kind in canonical order.
var allKinds = []Kind{KindGrammar, KindPushdown, KindMachine}

// ParseKind converts a string such as "cfg" into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range allKinds {
		if Kind(s) == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown system kind %q", s)
}

// Well-known file names inside a system directory.
const (
	GrammarFile  = "cfg.txt"
	PushdownFile = "npda.txt"
	MachineFile  = "tm.txt"
	SuiteFile    = "suite.yaml"
)

var (
	// ErrNotLoaded is returned by queries against a system the opened
	// directory did not describe.
	ErrNotLoaded = errors.New("system not loaded")

	// ErrNoSuite is returned by SelfTest when suite.yaml has no section
	// for the requested kind.
	ErrNoSuite = errors.New("no self-test suite")
)

// Workbench hosts the formal systems described by one directory and
// answers membership queries against them.
//
// The underlying searches are exhaustive and need not terminate on
// their own. Every query therefore takes a context; once the context
// expires (or the timeout configured with WithQueryTimeout does) the
// query returns ctx.Err() and the abandoned search goroutine is left
// to finish on its own.
type Workbench struct {
	name          string
	logger        *slog.Logger
	hooks         Hooks
	queryTimeout  time.Duration
	variableLimit int

	grammar  *cfg.Grammar
	pushdown *npda.Automaton
	machine  *tm.Machine

	suites       map[Kind]selftest.Suite
	fingerprints map[Kind]string
}

// Option configures a Workbench during Open.
type Option func(*Workbench)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workbench) {
		w.logger = logger
	}
}

// WithQueryTimeout gives every query its own deadline. Zero leaves
// queries bounded only by the caller's context.
func WithQueryTimeout(d time.Duration) Option {
	return func(w *Workbench) {
		w.queryTimeout = d
	}
}

// WithVariableLimit overrides cfg.DefaultVariableLimit for grammar
// queries made through the workbench.
func WithVariableLimit(limit int) Option {
	return func(w *Workbench) {
		w.variableLimit = limit
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks Hooks) Option {
	return func(w *Workbench) {
		w.hooks = hooks
	}
}

// Open reads the system descriptions in dir and builds a Workbench.
// At least one of cfg.txt, npda.txt or tm.txt must be present, and
// every description found must construct cleanly. A suite.yaml file,
// when present, supplies the labeled examples used by SelfTest.
func Open(dir string, opts ...Option) (*Workbench, error) {
	w := &Workbench{
		variableLimit: cfg.DefaultVariableLimit,
		suites:        make(map[Kind]selftest.Suite),
		fingerprints:  make(map[Kind]string),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	w.name = filepath.Base(abs)
	w.logger = w.logger.With("workbench", w.name)

	if lines, ok, err := loadDescription(dir, GrammarFile); err != nil {
		return nil, err
	} else if ok {
		g, err := cfg.Parse(lines)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", GrammarFile, err)
		}
		w.grammar = g
		w.fingerprints[KindGrammar] = fingerprint(lines)
	}

	if lines, ok, err := loadDescription(dir, PushdownFile); err != nil {
		return nil, err
	} else if ok {
		p, err := npda.Parse(lines)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", PushdownFile, err)
		}
		w.pushdown = p
		w.fingerprints[KindPushdown] = fingerprint(lines)
	}

	if lines, ok, err := loadDescription(dir, MachineFile); err != nil {
		return nil, err
	} else if ok {
		m, err := tm.Parse(lines)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", MachineFile, err)
		}
		w.machine = m
		w.fingerprints[KindMachine] = fingerprint(lines)
	}

	if len(w.fingerprints) == 0 {
		return nil, fmt.Errorf("no system description in %s (expected %s, %s or %s)",
			dir, GrammarFile, PushdownFile, MachineFile)
	}

	if err := w.loadSuites(dir); err != nil {
		return nil, err
	}

	w.logger.Info("workbench ready", "systems", w.Kinds())
	return w, nil
}

// loadDescription returns the cleaned lines of a description file, or
// ok=false when the file does not exist.
func loadDescription(dir, file string) ([]string, bool, error) {
	lines, err := descfile.Load(filepath.Join(dir, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return lines, true, nil
}

// fingerprint hashes a cleaned description, so files that differ only
// in comments or spacing share a digest.
func fingerprint(lines []string) string {
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

func (w *Workbench) loadSuites(dir string) error {
	path := filepath.Join(dir, SuiteFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file struct {
		Grammar  *selftest.Suite `yaml:"cfg"`
		Pushdown *selftest.Suite `yaml:"npda"`
		Machine  *selftest.Suite `yaml:"tm"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for kind, suite := range map[Kind]*selftest.Suite{
		KindGrammar:  file.Grammar,
		KindPushdown: file.Pushdown,
		KindMachine:  file.Machine,
	} {
		if suite == nil {
			continue
		}
		if err := suite.Validate(); err != nil {
			return fmt.Errorf("%s suite: %w", kind, err)
		}
		w.suites[kind] = *suite
	}
	return nil
}

// Name returns the base name of the opened directory.
func (w *Workbench) Name() string { return w.name }

// Kinds lists the systems that loaded, in canonical order.
func (w *Workbench) Kinds() []Kind {
	kinds := make([]Kind, 0, len(w.fingerprints))
	for _, k := range allKinds {
		if _, ok := w.fingerprints[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Grammar returns the loaded grammar, or nil.
func (w *Workbench) Grammar() *cfg.Grammar { return w.grammar }

// Pushdown returns the loaded pushdown automaton, or nil.
func (w *Workbench) Pushdown() *npda.Automaton { return w.pushdown }

// Machine returns the loaded Turing machine, or nil.
func (w *Workbench) Machine() *tm.Machine { return w.machine }

// Fingerprint returns the SHA-256 hex digest of the cleaned
// description for kind, or "" when that system is not loaded.
func (w *Workbench) Fingerprint(kind Kind) string { return w.fingerprints[kind] }

// Suite returns the labeled examples loaded for kind.
func (w *Workbench) Suite(kind Kind) (selftest.Suite, bool) {
	s, ok := w.suites[kind]
	return s, ok
}

// Derive searches for a leftmost derivation of target in the loaded
// grammar. An empty derivation with a nil error means target is not in
// the language (within the variable limit). Per-call options override
// the workbench configuration.
func (w *Workbench) Derive(ctx context.Context, target string, opts ...cfg.DeriveOption) ([]string, error) {
	if w.grammar == nil {
		return nil, fmt.Errorf("%s: %w", KindGrammar, ErrNotLoaded)
	}
	options := append([]cfg.DeriveOption{cfg.WithVariableLimit(w.variableLimit)}, opts...)
	start := time.Now()
	derivation, err := runBounded(ctx, w.queryTimeout, func() ([]string, error) {
		return w.grammar.Generate(target, options...)
	})
	w.observe(KindGrammar, target, len(derivation) > 0, start, err)
	return derivation, err
}

// Accepts reports whether input is in the language of the system
// identified by kind. For KindGrammar, membership means a derivation
// was found.
func (w *Workbench) Accepts(ctx context.Context, kind Kind, input string) (bool, error) {
	p, err := w.predicate(kind)
	if err != nil {
		return false, err
	}
	start := time.Now()
	member, err := runBounded(ctx, w.queryTimeout, func() (bool, error) {
		return p(input)
	})
	w.observe(kind, input, member, start, err)
	return member, err
}

// Trace returns the configurations of an accepting run of the loaded
// pushdown automaton, or ok=false when input is rejected.
func (w *Workbench) Trace(ctx context.Context, input string) ([]npda.Configuration, bool, error) {
	if w.pushdown == nil {
		return nil, false, fmt.Errorf("%s: %w", KindPushdown, ErrNotLoaded)
	}
	type trace struct {
		path []npda.Configuration
		ok   bool
	}
	start := time.Now()
	res, err := runBounded(ctx, w.queryTimeout, func() (trace, error) {
		path, ok, err := w.pushdown.Trace(input)
		return trace{path: path, ok: ok}, err
	})
	w.observe(KindPushdown, input, res.ok, start, err)
	return res.path, res.ok, err
}

// Run executes the loaded Turing machine on input and returns the
// outcome together with the halting tape.
func (w *Workbench) Run(ctx context.Context, input string) (tm.Result, error) {
	if w.machine == nil {
		return tm.Result{}, fmt.Errorf("%s: %w", KindMachine, ErrNotLoaded)
	}
	start := time.Now()
	res, err := runBounded(ctx, w.queryTimeout, func() (tm.Result, error) {
		return w.machine.Run(input), nil
	})
	w.observe(KindMachine, input, res.Accepted, start, err)
	return res, err
}

// SelfTest checks the system identified by kind against its loaded
// suite. Each labeled input runs through Accepts, so hooks fire and
// the query timeout applies per input.
func (w *Workbench) SelfTest(ctx context.Context, kind Kind) (selftest.Report, error) {
	if _, err := w.predicate(kind); err != nil {
		return selftest.Report{}, err
	}
	suite, ok := w.suites[kind]
	if !ok {
		return selftest.Report{}, fmt.Errorf("%s: %w", kind, ErrNoSuite)
	}
	report, err := selftest.Run(func(input string) (bool, error) {
		return w.Accepts(ctx, kind, input)
	}, suite)
	if err != nil {
		return selftest.Report{}, err
	}
	report.Log(w.logger.With("kind", kind))
	return report, nil
}

// predicate returns the membership test for kind, honoring the
// configured variable limit for grammar queries.
func (w *Workbench) predicate(kind Kind) (selftest.Predicate, error) {
	switch kind {
	case KindGrammar:
		if w.grammar == nil {
			break
		}
		return func(input string) (bool, error) {
			derivation, err := w.grammar.Generate(input, cfg.WithVariableLimit(w.variableLimit))
			return len(derivation) > 0, err
		}, nil
	case KindPushdown:
		if w.pushdown == nil {
			break
		}
		return w.pushdown.Accepts, nil
	case KindMachine:
		if w.machine == nil {
			break
		}
		return func(input string) (bool, error) {
			return w.machine.Accepts(input), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown system kind %q", kind)
	}
	return nil, fmt.Errorf("%s: %w", kind, ErrNotLoaded)
}

func (w *Workbench) observe(kind Kind, input string, member bool, start time.Time, err error) {
	elapsed := time.Since(start)
	w.logger.Debug("query answered",
		"kind", kind, "input", input, "member", member,
		"duration", elapsed, "error", err)
	if w.hooks.OnQuery != nil {
		w.hooks.OnQuery(QueryEvent{
			Kind:     kind,
			Input:    input,
			Member:   member,
			Duration: elapsed,
			Err:      err,
		})
	}
}

// runBounded runs fn under ctx plus the configured per-query timeout.
// When neither imposes a bound the call is direct. Otherwise fn runs
// in a goroutine; if the context expires first, the goroutine is
// abandoned mid-search and its eventual result discarded.
func runBounded[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if ctx.Done() == nil {
		return fn()
	}

	type outcome struct {
		value T
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		var out outcome
		out.value, out.err = fn()
		ch <- out
	}()

	select {
	case out := <-ch:
		return out.value, out.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
