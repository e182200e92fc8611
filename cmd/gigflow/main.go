package main

import (
	"os"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/app"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := app.Execute(); err != nil {
		log.Fatal().Err(err).Msg("failed to execute command")
	}
}
