package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slots_backend/internal/config"
)

// Таймаут на мягкую остановку сервера
const shutdownTimeout = 5 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run поднимает HTTP сервер и блокируется до SIGINT/SIGTERM,
// после чего гасит сервер с таймаутом и закрывает пул БД
func (s *App) Run() error {
	err := config.Load("")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx := context.Background()

	srv := &http.Server{
		Addr:    s.ServiceProvider.HTTPCfg().Address(),
		Handler: s.ServiceProvider.Router(ctx),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("received %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	s.ServiceProvider.Close()

	log.Println("server stopped")
	return nil
}
