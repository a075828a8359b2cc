package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bedrockhq/bedrock/internal/config"
)

// ValidationResult holds validation results for one invocation.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Files  int                      `json:"files"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>...",
		Short: "Validate container configuration files",
		Long: `Validate container configuration files against the bedrock schema.

Checks YAML syntax and schema conformance for each file, in order,
without building a container.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	formatter.VerboseLog("Validating %d configuration file(s)", len(paths))

	violations, err := config.ValidateAll(paths)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: "cannot validate configuration", Err: err}
	}

	result := ValidationResult{Valid: len(violations) == 0, Files: len(paths), Errors: violations}

	if !result.Valid {
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation error(s):", len(violations))
		for _, v := range violations {
			fmt.Fprintf(&b, "\n  %s", v.Error())
		}
		if err := formatter.Failure(b.String(), result); err != nil {
			return err
		}
		return &ExitError{Code: ExitFailure, Message: "configuration is invalid"}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("%d file(s) valid", len(paths)))
}
