package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scssc/internal/codes"
	"github.com/Norgate-AV/scssc/internal/version"
)

// exitError carries a process exit code. A nil err means the command has
// already reported the problem.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit code %d", e.code)
	}

	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scssc [asset]",
		Short: "On-demand SCSS compiler",
		Long: `Compiles the SCSS assets declared in .scssc.yml with dart-sass.
Without a subcommand, compiles the given asset (or asks which one).`,
		RunE:          runCompile,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the project config file (default: nearest .scssc.yml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP("no-interaction", "n", false, "Do not ask any interactive question")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Disable the build manifest")
	rootCmd.PersistentFlags().String("sass", "", "Path to the sass executable")
	addCompileFlags(rootCmd)

	rootCmd.AddCommand(newCompileCmd())
	rootCmd.AddCommand(newURLCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCacheCmd())

	return rootCmd
}

func Execute() {
	rootCmd := newRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCode(err, rootCmd.ErrOrStderr()))
	}
}

// exitCode reports err on w unless already reported, and maps it to an exit code
func exitCode(err error, w io.Writer) int {
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(w, "Error: %v\n", ee.err)
		}

		return ee.code
	}

	fmt.Fprintf(w, "Error: %v\n", err)

	return codes.ExitFailure
}
