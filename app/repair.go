package app

import (
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/notify"
	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var repairGigId string

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Finish hires that stopped after the gig was assigned",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := openStorage(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		// nobody is connected to a one-off command
		hiring := service.NewHiringService(store.repos, notify.NewHub(), cfg.Hiring.RetryAttempts, cfg.Hiring.RetryBackoff)
		ctx := cmd.Context()

		if repairGigId != "" {
			id, err := uuid.Parse(repairGigId)
			if err != nil {
				return errors.Wrap(err, "invalid gig id")
			}
			if err := hiring.ResumeHire(ctx, id); err != nil {
				return err
			}
			log.Info().Str("gig_id", id.String()).Msg("hire resumed")
			return nil
		}

		repaired, err := hiring.RepairIncompleteHires(ctx)
		log.Info().Int("repaired", repaired).Msg("repair finished")
		return err
	},
}

func init() {
	repairCmd.Flags().StringVar(&repairGigId, "gig", "", "resume a single gig")
	rootCmd.AddCommand(repairCmd)
}
