package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	clearUsers bool
	clearYes   bool
)

var clearCmd = &cobra.Command{
	Use:   "clear-data",
	Short: "Delete every gig and bid",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			log.Warn().Msg("refusing to clear data without --yes")
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.repos.ClearData(cmd.Context(), clearUsers); err != nil {
			return err
		}

		log.Info().Bool("users", clearUsers).Msg("all data cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearUsers, "users", false, "also clear the user directory")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm the deletion")
	rootCmd.AddCommand(clearCmd)
}
