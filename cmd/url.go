package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scssc/internal/resolver"
)

func newURLCmd() *cobra.Command {
	urlCmd := &cobra.Command{
		Use:   "url <path>...",
		Short: "Print the public URL of assets",
		Long: `Resolves each path the way templates do: configured SCSS assets are
compiled when needed and get their stylesheet URL, anything else is
prefixed with the base path.`,
		RunE:          runURL,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
	}

	urlCmd.Flags().String("base-path", "", "Base path for paths that are not SCSS assets")

	return urlCmd
}

func runURL(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	basePath, _ := cmd.Flags().GetString("base-path")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	r := resolver.New(ctx, a.parser, resolver.PathResolver{BasePath: basePath})
	for _, path := range args {
		fmt.Fprintln(a.out, r.ResolveURL(path))
	}

	return nil
}
