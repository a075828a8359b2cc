package testbase

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bedrockhq/bedrock/internal/analysis"
)

// AssertNoDiagnostics fails the test when the engine reported anything,
// listing every diagnostic with its message and location.
func AssertNoDiagnostics(t testing.TB, diags []analysis.Diagnostic) {
	t.Helper()
	if len(diags) == 0 {
		return
	}
	t.Fatalf("expected no diagnostics; %s", renderDiagnosticReport(diags))
}

// AssertDiagnostics fails the test unless the reported diagnostics match the
// expected "line: message" entries, in order. On mismatch the full observed
// list is rendered, so a failing run shows everything the engine said.
func AssertDiagnostics(t testing.TB, expected []string, diags []analysis.Diagnostic) {
	t.Helper()

	actual := make([]string, len(diags))
	for i, d := range diags {
		actual[i] = fmt.Sprintf("%d: %s", d.Line, d.Message)
	}

	if equalStrings(expected, actual) {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "diagnostics do not match\n\nexpected %d:\n", len(expected))
	for _, e := range expected {
		fmt.Fprintf(&b, "  %s\n", e)
	}
	b.WriteString("\n")
	b.WriteString(renderDiagnosticReport(diags))
	t.Fatal(b.String())
}

// renderDiagnosticReport lists every diagnostic with message and location.
func renderDiagnosticReport(diags []analysis.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "got %d diagnostic(s):\n", len(diags))
	for _, d := range diags {
		if d.Path != "" {
			fmt.Fprintf(&b, "  %d: %s (%s)\n", d.Line, d.Message, d.Path)
		} else {
			fmt.Fprintf(&b, "  %d: %s\n", d.Line, d.Message)
		}
	}
	return b.String()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
