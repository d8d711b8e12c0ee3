package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/wordsmithgame/wordsmith/gaddag"
)

func main() {
	filename := pflag.String("filename", "", "filename of the word list")
	out := pflag.String("out", "", "where to write the gaddag (default: NAME.gaddag next to the word list)")
	debug := pflag.Bool("debug", false, "turn on debug logging")
	pflag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *filename == "" {
		pflag.Usage()
		os.Exit(2)
	}
	if *out == "" {
		*out = strings.TrimSuffix(*filename, filepath.Ext(*filename)) + ".gaddag"
	}

	gd, err := gaddag.GenerateFromFile(*filename)
	if err != nil {
		log.Fatal().Err(err).Msg("could not build gaddag")
	}
	if err := gd.SaveToFile(*out); err != nil {
		log.Fatal().Err(err).Msg("could not save gaddag")
	}
	log.Info().Str("filename", *out).Int("nodes", gd.NumNodes()).Msg("gaddag written")
}
