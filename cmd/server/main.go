package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/icco/goshogi"
	"github.com/icco/goshogi/server"
	"github.com/icco/gutil/logging"
	"go.uber.org/zap"
)

var log = logging.Must(logging.NewLogger(goshogi.Service))

// config is read from the environment.
type config struct {
	Port        string
	DatabaseURL string
	IsDev       bool
	Secret      string
	Host        string
	RulesFile   string
}

func loadConfig(getenv func(string) string) (config, error) {
	cfg := config{
		Port:        "8080",
		DatabaseURL: getenv("DATABASE_URL"),
		IsDev:       getenv("NAT_ENV") != "production",
		Secret:      getenv("AUTH_JWT_SECRET"),
		Host:        getenv("HOST"),
		RulesFile:   getenv("RULES_FILE"),
	}
	if fromEnv := getenv("PORT"); fromEnv != "" {
		cfg.Port = fromEnv
	}
	if cfg.Host == "" {
		cfg.Host = "localhost:" + cfg.Port
	}
	if cfg.Secret == "" {
		if !cfg.IsDev {
			return cfg, fmt.Errorf("AUTH_JWT_SECRET is required in production")
		}
		cfg.Secret = "dev-secret-change-me" // fallback for dev
	}
	return cfg, nil
}

func rules(path string) (goshogi.RuleBook, error) {
	book := goshogi.BuiltinRules()
	if path == "" {
		return book, nil
	}
	extra, err := goshogi.LoadRuleFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return book.Merge(extra), nil
}

func main() {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalw("bad config", zap.Error(err))
	}
	log.Infow("Starting up", "host", fmt.Sprintf("http://%s", cfg.Host))

	book, err := rules(cfg.RulesFile)
	if err != nil {
		log.Fatalw("could not load rules", zap.Error(err))
	}

	db, err := server.OpenDB(cfg.DatabaseURL, log.Desugar())
	if err != nil {
		log.Panicw("could not get db", zap.Error(err))
		return
	}

	s, err := server.New(db, server.Config{
		Rules:  book,
		Secret: []byte(cfg.Secret),
		Host:   cfg.Host,
		IsDev:  cfg.IsDev,
	})
	if err != nil {
		log.Fatalw("could not build server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        s.Handler(),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Errorw("shutdown", zap.Error(err))
		}
		if err := s.Shutdown(shutdown); err != nil {
			log.Errorw("metrics shutdown", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
