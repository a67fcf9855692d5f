package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	firex "github.com/tanpawarit/fire-pension-agent/agent/fire"
	"github.com/tanpawarit/fire-pension-agent/agent/httpapi"
	businesslogicx "github.com/tanpawarit/fire-pension-agent/pkg/businesslogic"
	configx "github.com/tanpawarit/fire-pension-agent/pkg/config"
	_ "github.com/tanpawarit/fire-pension-agent/pkg/logger/autoload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	httpCfg := configx.MustNew[httpapi.Config]("HTTP")
	blCfg := configx.MustNew[businesslogicx.Config]("BUSINESSLOGIC")

	calc, err := firex.NewCalculator(businesslogicx.MustNew(*blCfg))
	if err != nil {
		log.Fatal().Err(err).Msg("create calculator")
	}
	handler, err := httpapi.NewHandler(calc)
	if err != nil {
		log.Fatal().Err(err).Msg("create http handler")
	}
	srv := httpapi.NewServer(*httpCfg, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpCfg.Addr()).Msg("http server listening")
		errCh <- srv.ListenAndServe(httpCfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			log.Error().Err(err).Msg("http server shutdown")
		}
	}
}
