package main

import (
	"github.com/adivinatobi/adivinatobi/backend/internal/setup"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/spf13/cobra"
)

// Opening a postgres store applies pending schema migrations, and loading any
// store converts a legacy document. Saving afterwards rewrites it in the
// current shape even when nothing had to change.
func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and rewrite the document in the current format",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			store, closeStore, err := setup.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			doc, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := store.Save(cmd.Context(), &doc); err != nil {
				return err
			}
			logger.Log.Info("document migrated", "threads", len(doc.Threads), "predictions", len(doc.Predictions), "users", len(doc.Users))
			return nil
		},
	}
}
