package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-catalog-admin/internal/config"
	"github.com/jrsteele09/go-catalog-admin/internal/logger"
	"github.com/jrsteele09/go-catalog-admin/server"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logger.Init(&logger.Config{Level: c.GetLogLevel(), Env: c.GetEnv(), ServiceName: c.GetAppName()})
	if err := config.Validate(c); err != nil {
		return err
	}

	repo, closeRepo, err := sessionRepo(c)
	if err != nil {
		return err
	}
	defer closeRepo()

	handler, err := server.New(c, repo)
	if err != nil {
		return err
	}

	displayAppname(c.GetAppName())
	srv := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go listenAndServe(srv)
	waitForStopSignal()
	return shutdown(srv)
}

// sessionRepo picks the session store named by SESSION_STORE.
func sessionRepo(c config.Config) (sessions.Repo, func(), error) {
	if c.GetSessionStore() != config.SessionStoreRedis {
		log.Info().Msg("Using in-memory session store")
		repo := sessions.NewInMemoryRepo()
		ctx, cancel := context.WithCancel(context.Background())
		go repo.RunSweeper(ctx, time.Minute)
		return repo, cancel, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := sessions.NewRedisClient(ctx, sessions.RedisConfig{
		Addr:     c.GetRedisAddr(),
		Password: c.GetRedisPassword(),
		DB:       c.GetRedisDB(),
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("addr", c.GetRedisAddr()).Msg("Using Redis session store")
	return sessions.NewRedisRepo(client), func() { _ = client.Close() }, nil
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
