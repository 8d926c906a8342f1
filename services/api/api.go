package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intectum/propellerhead/api"
	"github.com/intectum/propellerhead/core/config"
	"github.com/intectum/propellerhead/core/logger"
	"github.com/intectum/propellerhead/data"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.InitLogger(cfg.LogLevel())
	rlog := logger.Default()

	db, err := data.Open(cfg.Postgres)
	if err != nil {
		rlog.Fatal(err)
	}
	if err := data.Migrate(db); err != nil {
		rlog.Fatal(err)
	}
	if cfg.SeedData {
		if err := data.Seed(db); err != nil {
			rlog.Fatal(err)
		}
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewHandler(db, cfg),
	}

	go func() {
		rlog.Infof("Propellerhead API is alive. Listening on port %d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			rlog.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	rlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		rlog.Errorf("shutdown: %v", err)
	}
}
