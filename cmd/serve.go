package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/subject-advisor/internal/advisor"
	"github.com/spigell/subject-advisor/internal/logger"
	"github.com/spigell/subject-advisor/internal/server"
	"github.com/spigell/subject-advisor/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the survey web application",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "listen host (overrides server.host)")
	serveCmd.Flags().IntP("port", "p", 0, "listen port (overrides server.port)")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the subject-advisor", zap.String("version", version))

	deps := server.Deps{
		Advisor: advisor.New(logger.Named("advisor")),
		Logger:  logger.Named("http"),
	}

	if config.Store.Path != "" {
		st, err := store.Open(config.Store.Path)
		if err != nil {
			logger.Fatal("opening the store", zap.Error(err), zap.String("path", config.Store.Path))
		}
		defer st.Close()

		deps.Recorder = st
		logger.Info("storing submissions", zap.String("path", config.Store.Path))
	}

	deps.Narrator, err = newNarrator(ctx, config.AI, logger.Named("ai"))
	if err != nil {
		logger.Warn("skipping AI commentary", zap.Error(err))
	}

	srv, err := server.New(server.Config{
		Host:      config.Server.Host,
		Port:      config.Server.Port,
		Release:   config.Server.Release,
		AITimeout: config.AI.Timeout,
	}, deps)
	if err != nil {
		logger.Fatal("building the server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}
