package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	zLog "github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms/openai"

	"liftcoach/internal/actions"
	"liftcoach/internal/agents/coach/handler"
	"liftcoach/internal/api"
	"liftcoach/internal/config"
	"liftcoach/pkg/logger"
)

func main() {
	log.Println("starting server")
	cfg, err := config.Load(os.Getenv("LIFTCOACH_CONFIG"))
	if err != nil {
		log.Panicf("failed to load config: %v", err)
	}
	if err := logger.NewGlobal(cfg.Log.Level, cfg.Log.Pretty); err != nil {
		log.Panicf("failed to initialize logger: %v", err)
	}

	// Without a planner key the coach still runs on the deterministic
	// fallback planner.
	var chain chains.Chain
	if key := cfg.Coach.APIKey(); key != "" {
		// The openai client only reads OPENAI_API_KEY.
		os.Setenv("OPENAI_API_KEY", key)
		llm, err := openai.New()
		if err != nil {
			zLog.Warn().Err(err).Msg("planner model unavailable, running on fallback")
		} else {
			chain = chains.NewLLMChain(llm, handler.TurnPrompt)
		}
	} else {
		zLog.Info().Msg("no planner key configured, running on fallback")
	}

	registry := actions.NewRegistry()
	h := handler.New(chain, cfg.Coach.Model, registry)

	system := actor.NewActorSystem().Root
	app := api.New(system, h, registry, cfg.Server.Addr)

	go func() {
		err := app.Start()
		if err != nil {
			zLog.Panic().Err(err).Msg("server crash")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	stop()
	zLog.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		zLog.Panic().Err(err).Msg("server forced to shutdown")
	}

	zLog.Info().Msg("server exiting")
}
