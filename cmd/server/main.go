package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GiorgiUbiria/skill_swap/configs"
	"github.com/GiorgiUbiria/skill_swap/internal/accounts"
	"github.com/GiorgiUbiria/skill_swap/internal/auth"
	"github.com/GiorgiUbiria/skill_swap/internal/handlers"
	"github.com/GiorgiUbiria/skill_swap/internal/listings"
	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	appmw "github.com/GiorgiUbiria/skill_swap/internal/middleware"
	"github.com/GiorgiUbiria/skill_swap/internal/notify"
	"github.com/GiorgiUbiria/skill_swap/internal/routes"
	"github.com/GiorgiUbiria/skill_swap/internal/seed"
	"github.com/GiorgiUbiria/skill_swap/internal/store"
	"github.com/GiorgiUbiria/skill_swap/internal/swaps"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configDir string
	withSeed  bool
	rootCmd   = &cobra.Command{
		Use:   "skillswap",
		Short: "SkillSwap peer-to-peer skill exchange API",
	}
)

// bootstrap loads .env and config, then opens and migrates the database.
func bootstrap() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "failed to read .env:", err)
	}
	logger.Init(os.Getenv("ENV"))

	configs.LoadConfig(configDir)
	logger.Init(configs.AppConfig.Env)

	store.NewDB()
	store.DBMigrate()
}

func serve() error {
	bootstrap()
	defer logger.Log.Sync()
	defer store.Close()

	cfg := configs.AppConfig
	if withSeed {
		if err := seed.Run(store.DB); err != nil {
			return err
		}
	}

	tokens := auth.NewTokens(cfg.JWT.SECRET, cfg.JWT.TTL)
	dispatcher := notify.NewDispatcher(notify.NewSender(notify.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		Timeout:  cfg.Mail.Timeout,
	}), cfg.Mail.Timeout)

	h := &handlers.Handler{
		Accounts:    accounts.NewService(store.DB, tokens),
		Listings:    listings.NewService(store.DB),
		Swaps:       swaps.NewService(store.DB, dispatcher, cfg.Swaps.DefaultLimit),
		Development: cfg.IsDevelopment(),
	}
	limiter := appmw.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      routes.NewRoutes(h, tokens, limiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Wait(ctx); err != nil {
		logger.Log.Warn("pending notifications abandoned", zap.Error(err))
	}

	logger.Log.Info("server stopped")
	return nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "./configs", "directory holding config.yaml")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	serveCmd.Flags().BoolVar(&withSeed, "seed", false, "insert demo users and posts before serving")
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap()
			store.Close()
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Insert demo users and posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap()
			defer store.Close()
			return seed.Run(store.DB)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
