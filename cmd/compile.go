package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scssc/internal/codes"
	"github.com/Norgate-AV/scssc/internal/scss"
	"github.com/Norgate-AV/scssc/internal/selection"
	"github.com/Norgate-AV/scssc/internal/ui"
)

func newCompileCmd() *cobra.Command {
	compileCmd := &cobra.Command{
		Use:   "compile [asset]",
		Short: "Compile configured SCSS assets",
		Long: `Compiles configured SCSS sources.

The asset argument is the name or number of an asset. Use "all" to
re-compile all configured assets. Numbers are only accepted interactively.`,
		RunE:          runCompile,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
	}

	addCompileFlags(compileCmd)

	return compileCmd
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this path")
}

func runCompile(cmd *cobra.Command, args []string) error {
	metricsFile, _ := cmd.Flags().GetString("metrics-file")

	a, err := setupApp(cmd, appOptions{metrics: metricsFile != ""})
	if err != nil {
		return err
	}
	defer a.Close()

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	noInteraction, _ := cmd.Flags().GetBool("no-interaction")
	interactive := !noInteraction && stdinIsTerminal(cmd.InOrStdin())

	sel, err := selection.Resolve(selection.Request{
		Arg:         arg,
		Names:       a.parser.Names(),
		Interactive: interactive,
	}, newPrompter(cmd, a.styles))
	if errors.Is(err, selection.ErrAborted) {
		fmt.Fprintln(a.out, "Aborted.")
		return &exitError{code: codes.ExitAborted}
	}
	if err != nil {
		return &exitError{code: codes.ExitFailure, err: err}
	}

	failed := a.compileSelection(cmd.Context(), sel)

	style := a.styles.Success
	message := "Finished SCSS compiling successfully."
	if failed {
		style = a.styles.Error
		message = "Finished SCSS compiling with errors!"
	}
	fmt.Fprintln(a.out, style.Render(message))

	if metricsFile != "" {
		if err := a.recorder.WriteTextfile(metricsFile); err != nil {
			return &exitError{code: codes.ExitFailure, err: err}
		}
	}

	if failed {
		return &exitError{code: codes.ExitFailure}
	}

	return nil
}

// compileSelection force-compiles the selected assets and reports each one
func (a *app) compileSelection(ctx context.Context, sel selection.Selection) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	if sel.IsAll() {
		overwriting := make(map[string]bool, len(sel.Assets))
		for _, name := range sel.Assets {
			overwriting[name] = a.destinationExists(name)
		}

		results, failed := a.parser.CompileAll(ctx)
		for _, result := range results {
			name := result.Job().Name
			reportResult(a.out, a.styles, name, overwriting[name], result)
		}

		return failed
	}

	name := sel.Assets[0]
	overwriting := a.destinationExists(name)

	result, err := a.parser.Parse(ctx, name, true)
	if err != nil {
		fmt.Fprintln(a.out, a.styles.Error.Render(err.Error()))
		return true
	}

	reportResult(a.out, a.styles, name, overwriting, result)

	return !result.Successful()
}

func (a *app) destinationExists(name string) bool {
	job, err := a.parser.MakeJob(name)
	if err != nil {
		return false
	}

	_, err = os.Stat(job.DestinationPath)
	return err == nil
}

// reportResult prints the console summary of one attempt
func reportResult(w io.Writer, styles ui.Styles, name string, overwriting bool, result *scss.Result) {
	add := ""
	if overwriting {
		add = " (and overwriting!)"
	}

	status := styles.Success.Render("OK")
	if !result.Successful() {
		status = styles.Error.Render("ERROR")
	}

	fmt.Fprintf(w, "Compiling%s \"%s\"... %s (%ss)\n",
		add, styles.Comment.Render(name), status, strconv.FormatFloat(result.DurationSeconds(), 'f', -1, 64))

	if !result.Successful() {
		block := fmt.Sprintf("Error during compiling %q\n%s", name, result.ErrorMessage())
		fmt.Fprintln(w, styles.ErrorBlock.Render(block))
		return
	}

	fmt.Fprintln(w, styles.Notice.Render(fmt.Sprintf("Written %s to %s",
		ui.FormatKB(result.CompiledSize()), result.Job().DestinationPath)))
}
