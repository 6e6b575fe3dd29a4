package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/pucklab/nhl-scraper/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
