package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Alturino/foodhub/internal/config"
	"github.com/Alturino/foodhub/internal/log"
)

const (
	AppName             = "foodhub"
	AppNotificationName = "foodhub-notification"
)

func Start() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap := zerolog.New(os.Stdout).With().Timestamp().Logger()
	cfg := config.InitConfig(bootstrap.WithContext(c), AppName)

	logger := log.InitLogger(cfg.Application.LogFile, cfg.Application.Env).
		With().
		Str(log.KeyAppName, AppName).
		Str(log.KeyTag, "main Start").
		Logger()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: "FoodHub food ordering backend",
	}
	commands := []*cobra.Command{
		{
			Use:   "server",
			Short: "Run the http api",
			Run: func(cmd *cobra.Command, args []string) {
				runServer(cmd.Context(), cfg)
			},
		},
		{
			Use:   "notification",
			Short: "Run the order notification consumer",
			Run: func(cmd *cobra.Command, args []string) {
				runNotification(cmd.Context(), cfg)
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
