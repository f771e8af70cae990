package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/foodhub/internal/config"
	"github.com/Alturino/foodhub/internal/infra"
	"github.com/Alturino/foodhub/internal/log"
	"github.com/Alturino/foodhub/internal/otel"
	notificationCmd "github.com/Alturino/foodhub/notification/cmd"
)

func runNotification(c context.Context, cfg *config.Config) {
	c, span := otel.Tracer.Start(c, "runNotification")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, AppNotificationName).
		Str(log.KeyTag, "main runNotification").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, AppNotificationName, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := otel.ShutdownOtel(context.WithoutCancel(c), otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	if !cfg.Broker.Enabled {
		logger.Warn().Msg("broker.enabled is false, the server publishes no order events")
	}

	logger = logger.With().Str(log.KeyProcess, "initializing broker").Logger()
	logger.Info().Msg("initializing broker")
	c = logger.WithContext(c)
	broker, err := infra.NewBroker(c, cfg.Broker)
	if err != nil {
		err = fmt.Errorf("failed initializing broker with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down broker")
		broker.Close()
		logger.Info().Msg("shutdown broker")
	}()
	logger.Info().Msg("initialized broker")

	consumers := sync.WaitGroup{}
	if err = notificationCmd.AttachNotification(c, &consumers, broker); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}

	<-c.Done()
	logger = logger.With().Str(log.KeyProcess, "shutdown consumer").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	consumers.Wait()
	logger.Info().Msg("consumer stopped")
}
