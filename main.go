package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"heatpump-insight/internal/analysis/application"
	analysishttp "heatpump-insight/internal/analysis/interfaces/http"
	"heatpump-insight/internal/auth"
	catalog "heatpump-insight/internal/catalog/domain"
	catalogfile "heatpump-insight/internal/catalog/infrastructure/file"
	catalogpostgres "heatpump-insight/internal/catalog/infrastructure/postgres"
	"heatpump-insight/internal/narrative"
	"heatpump-insight/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	metrics.Init()

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.Fatalf("catalog load error: %v", err)
	}
	logger.Printf("catalog loaded: %d profiles, %d scenarios", len(cat.Profiles), len(cat.Scenarios))

	narrativeCfg, err := narrative.LoadConfig()
	if err != nil {
		logger.Fatalf("narrative config error: %v", err)
	}
	var completer narrative.Completer
	if !narrativeCfg.Disabled && os.Getenv("ANTHROPIC_API_KEY") != "" {
		anthropicCompleter, err := narrative.NewAnthropicCompleter(narrativeCfg.Model, "")
		if err != nil {
			logger.Fatalf("narrative completer error: %v", err)
		}
		completer = anthropicCompleter
		logger.Printf("narrative model enabled: %s", narrativeCfg.Model)
	} else {
		logger.Printf("narrative model disabled, using templates")
	}
	generator := narrative.NewGenerator(completer, narrative.WithMaxTokens(narrativeCfg.MaxTokens))

	service, err := application.NewService(generator)
	if err != nil {
		logger.Fatalf("analysis service error: %v", err)
	}
	handler, err := analysishttp.NewHandler(service, cat)
	if err != nil {
		logger.Fatalf("analysis handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/analyze", handler)
	mux.Handle("/api/v1/scenarios", handler)
	mux.Handle("/api/v1/scenarios/", handler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var root http.Handler = mux
	if cfg.JWTSecret != "" {
		policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
		root = auth.NewMiddleware([]byte(cfg.JWTSecret), policy).Wrap(root)
	} else {
		logger.Printf("AUTH_JWT_SECRET not set, auth disabled")
	}

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(root, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	HTTPAddr    string
	CatalogPath string
	DatabaseURL string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		CatalogPath: getenvDefault("CATALOG_PATH", "data/scenarios.json"),
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.CatalogPath == "" && cfg.DatabaseURL == "" {
		log.Fatal("CATALOG_PATH or DATABASE_URL is required")
	}
	return cfg
}

func loadCatalog(cfg config, logger *log.Logger) (*catalog.Catalog, error) {
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		logger.Printf("catalog source: postgres")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return catalogpostgres.NewCatalogRepository(db).Load(ctx)
	}
	logger.Printf("catalog source: file %s", cfg.CatalogPath)
	return catalogfile.Load(cfg.CatalogPath)
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
