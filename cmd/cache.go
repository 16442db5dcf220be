package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scssc/internal/ui"
)

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the build manifest",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:           "clear",
		Short:         "Remove all recorded compile results",
		RunE:          runCacheClear,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:           "stats",
		Short:         "Show build manifest statistics",
		RunE:          runCacheStats,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
	})

	return cacheCmd
}

func openManifest(cmd *cobra.Command) (*app, error) {
	a, err := setupApp(cmd, appOptions{})
	if err != nil {
		return nil, err
	}

	if a.manifest == nil {
		a.Close()
		return nil, fmt.Errorf("build manifest is not available (disabled with --no-cache or failed to open)")
	}

	return a, nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	a, err := openManifest(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.manifest.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, a.styles.Success.Render("Build manifest cleared."))

	return nil
}

func runCacheStats(cmd *cobra.Command, _ []string) error {
	a, err := openManifest(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.manifest.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Location: %s\n", a.manifest.Dir())
	fmt.Fprintf(a.out, "Records:  %d\n", stats.Records)
	fmt.Fprintf(a.out, "Failed:   %d\n", stats.Failed)
	fmt.Fprintf(a.out, "Output:   %s\n", ui.FormatKB(stats.TotalSize))

	return nil
}
