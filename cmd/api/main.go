package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/reconnect-app/reconnect-backend/config"
	"github.com/reconnect-app/reconnect-backend/internal/auth"
	"github.com/reconnect-app/reconnect-backend/internal/auth/identitytoolkit"
	"github.com/reconnect-app/reconnect-backend/internal/bootstrap"
	"github.com/reconnect-app/reconnect-backend/internal/logger"
	"github.com/reconnect-app/reconnect-backend/internal/store"
)

const serviceName = "reconnect-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logg, err := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logg.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := bootstrap.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		logg.Fatal("initialize firebase", zap.Error(err))
	}

	st := store.NewFirestore(fb.Firestore)
	defer st.Close()

	identity := auth.NewFirebaseIdentity(fb.Auth, identitytoolkit.New(cfg.Firebase.WebAPIKey))

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Log:            logg,
		Store:          st,
		AuthClient:     fb.Auth,
		Identity:       identity,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logg.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown", zap.Error(err))
	}
}
