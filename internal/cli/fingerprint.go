package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bedrockhq/bedrock/internal/config"
	"github.com/bedrockhq/bedrock/internal/testbase"
)

// FingerprintResult is the payload for the fingerprint command.
type FingerprintResult struct {
	Fingerprint string   `json:"fingerprint"`
	Sources     []string `json:"sources"`
}

// NewFingerprintCommand creates the fingerprint command.
func NewFingerprintCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		staticReflection bool
		bare             bool
	)

	cmd := &cobra.Command{
		Use:   "fingerprint [<config>...]",
		Short: "Print the container cache key for a configuration list",
		Long: `Print the cache fingerprint the test harness derives for an ordered
configuration list.

By default the harness defaults are appended, exactly as the harness
does: the base configuration, plus the static-reflection variant when
--static-reflection is set. Use --bare to fingerprint only the given
files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFingerprint(rootOpts, args, staticReflection, bare, cmd)
		},
	}

	cmd.Flags().BoolVar(&staticReflection, "static-reflection", false, "include the static-reflection variant configuration")
	cmd.Flags().BoolVar(&bare, "bare", false, "fingerprint only the given files, without harness defaults")

	return cmd
}

func runFingerprint(opts *RootOptions, extra []string, staticReflection, bare bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var sources []string
	if bare {
		sources = extra
	} else {
		// Mirror the harness's effective-list computation via the flag.
		prev := testbase.UseStaticReflectionProvider()
		testbase.SetUseStaticReflectionProvider(staticReflection)
		sources = testbase.EffectiveSources(extra)
		testbase.SetUseStaticReflectionProvider(prev)
	}

	result := FingerprintResult{Fingerprint: config.Fingerprint(sources), Sources: sources}
	formatter.VerboseLog("Sources:\n  %s", strings.Join(sources, "\n  "))

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprint(result.Fingerprint))
}
