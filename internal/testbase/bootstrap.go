package testbase

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/bedrockhq/bedrock/internal/analysis"
	"github.com/bedrockhq/bedrock/internal/container"
	"github.com/bedrockhq/bedrock/internal/stubset"
)

// BootstrapAction is a one-time side-effecting initialization step that runs
// after a container is built and before it is handed to any caller.
type BootstrapAction struct {
	// Name identifies the action in failure reports.
	Name string

	// When, if non-nil, gates the action on a host capability. It is
	// evaluated once, during cache-entry construction.
	When func() bool

	// Run performs the action against the freshly built container.
	Run func(c *container.Container) error
}

// BootstrapError wraps a failed bootstrap action. The containing container
// is discarded, never cached.
type BootstrapError struct {
	Action string
	Err    error
}

func (e BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap action %q failed: %v", e.Action, e.Err)
}

func (e BootstrapError) Unwrap() error { return e.Err }

// runBootstrap executes the actions in order, synchronously. The first
// failure aborts the run.
func runBootstrap(c *container.Container, actions []BootstrapAction) error {
	for _, action := range actions {
		if action.When != nil && !action.When() {
			continue
		}
		if err := action.Run(c); err != nil {
			return BootstrapError{Action: action.Name, Err: err}
		}
	}
	return nil
}

// DefaultBootstrap returns the standard bedrock bootstrap sequence: baseline
// runtime symbol stubs always, iterator stubs only on hosts whose runtime
// has them.
func DefaultBootstrap() []BootstrapAction {
	return []BootstrapAction{
		{
			Name: "runtime-symbol-stubs",
			Run: func(c *container.Container) error {
				return seedSymbols(c, baselineSymbols)
			},
		},
		{
			Name: "iterator-symbol-stubs",
			When: func() bool { return hostGoMinor() >= 23 },
			Run: func(c *container.Container) error {
				return seedSymbols(c, iteratorSymbols)
			},
		},
	}
}

var baselineSymbols = []analysis.Symbol{
	{Name: "len", Kind: analysis.KindFunc, Signature: "func(v Type) int"},
	{Name: "cap", Kind: analysis.KindFunc, Signature: "func(v Type) int"},
	{Name: "append", Kind: analysis.KindFunc, Signature: "func(slice []Type, elems ...Type) []Type"},
	{Name: "error", Kind: analysis.KindType, Signature: "interface { Error() string }"},
	{Name: "comparable", Kind: analysis.KindType, Signature: "interface{ comparable }"},
}

var iteratorSymbols = []analysis.Symbol{
	{Name: "iter.Seq", Kind: analysis.KindType, Signature: "func(yield func(V) bool)"},
	{Name: "iter.Seq2", Kind: analysis.KindType, Signature: "func(yield func(K, V) bool)"},
	{Name: "iter.Pull", Kind: analysis.KindFunc, Signature: "func(seq Seq[V]) (next func() (V, bool), stop func())"},
}

// seedSymbols loads definitions into whichever reflection provider the
// container was configured with.
func seedSymbols(c *container.Container, symbols []analysis.Symbol) error {
	provider, err := ReflectionProvider(c)
	if err != nil {
		return err
	}
	switch p := provider.(type) {
	case *stubset.Provider:
		return p.Store().Seed(context.Background(), symbols)
	case *analysis.StaticReflectionProvider:
		for _, sym := range symbols {
			p.Add(sym)
		}
		return nil
	default:
		return fmt.Errorf("reflection provider %T cannot load symbol stubs", provider)
	}
}

// hostGoMinor extracts the minor version from runtime.Version.
// Development toolchains report 0 and skip gated actions.
func hostGoMinor() int {
	v := runtime.Version()
	if !strings.HasPrefix(v, "go1.") {
		return 0
	}
	rest := strings.TrimPrefix(v, "go1.")
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	minor, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return minor
}
