package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scssc/internal/asset"
	"github.com/Norgate-AV/scssc/internal/manifest"
	"github.com/Norgate-AV/scssc/internal/scss"
	"github.com/Norgate-AV/scssc/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show the last compile outcome of every asset",
		RunE:          runStatus,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	}
}

// assetStatus is one row of the status table
type assetStatus struct {
	Name   string
	Result string
	When   string
	Size   string
	State  string
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := setupApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	if a.manifest == nil {
		fmt.Fprintln(a.out, a.styles.Comment.Render("Build manifest is disabled, showing file state only."))
	}

	rows := make([][]string, 0, len(a.parser.Names()))
	for _, name := range a.parser.Names() {
		job, err := a.parser.MakeJob(name)
		if err != nil {
			return err
		}

		var rec *manifest.Record
		if a.manifest != nil {
			rec, err = a.manifest.Get(name)
			if err != nil {
				return err
			}
		}

		s, err := statusFor(job, rec)
		if err != nil {
			return err
		}

		rows = append(rows, []string{s.Name, s.Result, s.When, s.Size, s.State})
	}

	fmt.Fprintln(a.out, renderStatus(a.styles, rows))

	return nil
}

// statusFor describes an asset from its job and last recorded attempt
func statusFor(job asset.Job, rec *manifest.Record) (assetStatus, error) {
	s := assetStatus{Name: job.Name, Result: "-", When: "-", Size: "-"}

	var deps []string
	if rec != nil {
		deps = rec.Dependencies
		s.When = rec.CompiledAt.Local().Format(time.DateTime)

		if rec.Success {
			s.Result = "OK"
			s.Size = ui.FormatKB(rec.Size)
		} else {
			s.Result = "ERROR"
		}
	}

	stale, err := scss.StalenessChecker{}.IsStale(job, deps)
	if err != nil {
		return s, err
	}

	switch {
	case rec != nil && rec.Fingerprint != job.Fingerprint():
		s.State = "options changed"
	case stale && rec == nil:
		s.State = "never compiled"
	case stale:
		s.State = "stale"
	default:
		s.State = "up to date"
	}

	return s, nil
}

func renderStatus(styles ui.Styles, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers("ASSET", "RESULT", "COMPILED AT", "SIZE", "STATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row < 0 || row >= len(rows) || col != 1 {
				return lipgloss.NewStyle().Padding(0, 1)
			}

			switch rows[row][col] {
			case "OK":
				return styles.Success.Padding(0, 1)
			case "ERROR":
				return styles.Error.Padding(0, 1)
			}

			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Rows(rows...).
		Render()
}
