package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oguzkopan/teletext-sub000/internal/adapter"
	"github.com/oguzkopan/teletext-sub000/internal/config"
	"github.com/oguzkopan/teletext-sub000/internal/fetch"
	"github.com/oguzkopan/teletext-sub000/internal/handler"
	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	"github.com/oguzkopan/teletext-sub000/internal/service/ai"
	"github.com/oguzkopan/teletext-sub000/internal/store"
	"github.com/oguzkopan/teletext-sub000/internal/throttle"
)

const sweepInterval = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	sessions := store.NewSessions()
	responseCache := store.NewResponseCache()
	pageCache := store.NewPageCache()
	sessions.StartSweepers(ctx, sweepInterval)
	responseCache.StartSweeper(ctx, sweepInterval)
	pageCache.StartSweeper(ctx, sweepInterval)

	// Initialize the generation backend behind the throttler
	var invoker adapter.Invoker
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without generation; oracle pages will show setup instructions")
		} else {
			invoker = throttle.New(aiService, responseCache)
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Printf("generation credentials not configured (missing %v), oracle pages will show setup instructions", cfg.AI.Missing())
	}

	fetcher := fetch.New(cfg.Content.FetchTimeout)
	aiAdapter := adapter.NewAI(invoker, sessions, cfg.AI.Missing())

	pageRouter := route.NewRouter(adapter.NewSystem())
	pageRouter.Register(2, adapter.NewNews(fetcher, cfg.Content.NewsURL))
	pageRouter.Register(3, adapter.NewSports())
	pageRouter.RegisterRange(400, 419, adapter.NewMarkets())
	pageRouter.RegisterRange(420, 449, adapter.NewWeather(fetcher, cfg.Content.WeatherURL))
	pageRouter.Register(5, aiAdapter)
	pageRouter.Register(6, adapter.NewGames(sessions))
	pageRouter.Register(7, adapter.NewSettings(adapter.Overview{
		Addr:         cfg.Server.Addr,
		AIEnabled:    invoker != nil,
		NewsLive:     cfg.Content.NewsURL != "",
		WeatherLive:  cfg.Content.WeatherURL != "",
		FetchTimeout: cfg.Content.FetchTimeout,
	}))
	pageRouter.Register(8, adapter.NewDev(func(ctx context.Context, pageID string) (page.GridPage, error) {
		a, id, err := pageRouter.Resolve(pageID)
		if err != nil {
			return page.GridPage{}, err
		}
		rendered, err := a.Render(ctx, route.Request{Page: id, Query: map[string]string{}})
		if err != nil {
			return page.GridPage{}, err
		}
		return rendered[0], nil
	}))

	router := handler.NewRouter(pageRouter, pageCache, aiAdapter)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("teletext service listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
