package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"ingredient-finder/internal/app"
	"ingredient-finder/internal/cache"
	"ingredient-finder/internal/clipboard"
	"ingredient-finder/internal/config"
	"ingredient-finder/internal/sheets"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingredient-finder [recipes...]",
		Short: "Build a consolidated shopping-cart list for a set of recipes",
		Long: `ingredient-finder merges the ingredient lists of the requested recipes into
one shopping cart, summing duplicate ingredients with unit conversion and
splitting fresh purchases from pantry staples.

Recipe names are comma-separated and may span multiple arguments. When no
recipes are given, the query is read from the clipboard, one recipe per
line. The resulting table is copied to the clipboard and printed.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return err
			}

			clip := clipboard.New()
			application := app.NewApp(
				sheets.NewSource(cfg),
				cache.NewStore(cfg.CachePath),
				clip,
				cmd.OutOrStdout(),
			)

			query := app.ParseQuery(args)
			if len(query) == 0 {
				query, err = application.QueryFromClipboard()
				if err != nil {
					return err
				}
			}

			return application.Run(cmd.Context(), query)
		},
	}
}
