package main

import (
	"os"

	"MediTrack/config"

	server "github.com/KanapuramVaishnavi/Core/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	startServer = server.Start
	isTest      = false
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "meditrack",
		Short:        "MediTrack hospital API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(false)
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the API server with its scheduled jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(false)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply indexes, backfills and the admin seed, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(true)
		},
	})
	return root
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.IsDev() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	gin.SetMode(gin.ReleaseMode)
}

func run(migrateOnly bool) error {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Error in loading the ENV")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Error from loading config")
		return err
	}
	setupLogger(cfg)

	defaultopts := server.GetDefaultOptions()
	a := newApp(cfg)

	options := server.Options{
		CacheEnabled:     defaultopts.CacheEnabled,
		MongoEnabled:     defaultopts.MongoEnabled,
		WebServerEnabled: defaultopts.WebServerEnabled && !migrateOnly,
		WebServerPort:    defaultopts.WebServerPort,

		JobsEnabled: !isTest && !migrateOnly,
		JobsHandler: func() {
			if isTest {
				return
			}
			a.startJobs()
		},

		WebServerPreHandler: func(r *gin.Engine) {
			if isTest {
				return
			}
			a.mount(r)
		},

		MigrationEnabled: !isTest,
		MigrationHandler: func() {
			if isTest {
				return
			}
			a.migrate()
		},
	}
	startServer(options)
	return nil
}
