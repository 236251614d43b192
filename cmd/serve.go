package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/profexa/internal/auth"
	"github.com/abhisek/profexa/internal/curriculum"
	"github.com/abhisek/profexa/internal/llm"
	"github.com/abhisek/profexa/internal/quiz"
	"github.com/abhisek/profexa/internal/server"
	"github.com/abhisek/profexa/internal/session"
	"github.com/abhisek/profexa/internal/store"
	"github.com/abhisek/profexa/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PROFEXA_ADDR, default :8080)")
}

func runServe(cmd *cobra.Command) error {
	// Missing .env is fine, env vars may come from the shell.
	_ = godotenv.Load()

	log, err := buildLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		log.Warn("LLM provider not configured, serving fallback content only", zap.Error(err))
		provider = llm.NewMockProvider()
	}

	srv := server.New(
		log,
		auth.NewService(st.UserRepo(), auth.NewTokenRegistry(auth.DefaultTokenTTL)),
		curriculum.NewService(provider, curriculum.DefaultConfig()),
		tutor.NewService(provider, tutor.DefaultConfig()),
		quiz.NewService(provider, quiz.DefaultConfig()),
		session.NewManager(st.SessionRepo()),
	)

	addr := listenAddr(cmd)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.String("db", dbPath))
		errCh <- httpSrv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func listenAddr(cmd *cobra.Command) string {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		return addr
	}
	if addr := os.Getenv("PROFEXA_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("PROFEXA_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
