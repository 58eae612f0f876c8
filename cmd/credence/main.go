package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hazyhaar/credence/credibility"
	"github.com/hazyhaar/credence/domainage"
	"github.com/hazyhaar/credence/shield"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	port := env("PORT", "8086")
	mcpTransport := env("MCP_TRANSPORT", "")
	logLevel := env("LOG_LEVEL", "info")

	// Logging.
	var lvl slog.Level
	switch logLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Engine configuration. CONFIG_FILE and RULES_FILE are both optional;
	// the engine runs on built-in defaults without them.
	var cfg *credibility.Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		cfg, err = credibility.LoadConfigFile(path)
		if err != nil {
			slog.Error("config file", "path", path, "error", err)
			os.Exit(1)
		}
	}
	if path := os.Getenv("RULES_FILE"); path != "" {
		rules, err := credibility.LoadRulesFile(path)
		if err != nil {
			slog.Error("rules file", "path", path, "error", err)
			os.Exit(1)
		}
		if cfg == nil {
			cfg = &credibility.Config{}
		}
		cfg.Rules = rules
	}

	// Optional WHOIS age lookup. Off by default: every assessment of an
	// uncached domain would otherwise hit the network.
	var opts []credibility.Option
	if env("WHOIS_ENABLED", "") == "true" {
		timeout := time.Duration(envInt("WHOIS_TIMEOUT_MS", 2000)) * time.Millisecond
		opts = append(opts, credibility.WithAgeLookup(domainage.NewWhoisLookup(timeout)))
		slog.Info("whois lookup enabled", "timeout", timeout)
	}

	eng, err := credibility.New(cfg, logger, opts...)
	if err != nil {
		slog.Error("engine", "error", err)
		os.Exit(1)
	}

	mcpSrv := mcp.NewServer(&mcp.Implementation{
		Name:    "credence",
		Version: "1.0.0",
	}, nil)
	eng.RegisterMCP(mcpSrv)

	// MCP over stdio serves a single client and owns the process: no HTTP.
	if mcpTransport == "stdio" {
		slog.Info("MCP stdio serving", "tools", []string{
			"assess_source_credibility", "record_credibility_outcome", "citation_graph_stats",
		})
		if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP stdio", "error", err)
			os.Exit(1)
		}
		return
	}

	// Router.
	rl := shield.NewRateLimiter(envInt("RATE_LIMIT", 120), time.Minute, "/health")
	rl.StartGC(ctx)

	r := chi.NewRouter()
	for _, mw := range shield.DefaultAPIStack(rl) {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Post("/api/assess", func(w http.ResponseWriter, r *http.Request) {
		var in credibility.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, 400, err)
			return
		}
		res, err := eng.Assess(r.Context(), &in)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, 200, res)
	})

	r.Post("/api/assess/batch", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Items []*credibility.Input `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, err)
			return
		}
		if len(req.Items) == 0 {
			writeError(w, 400, errors.New("items is required"))
			return
		}
		items := eng.AssessBatch(r.Context(), req.Items)
		writeJSON(w, 200, map[string]any{"items": items})
	})

	r.Post("/api/outcome", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL     string  `json:"url"`
			Outcome float64 `json:"outcome"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, 400, err)
			return
		}
		receipt, err := eng.RecordOutcome(req.URL, req.Outcome)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, 200, receipt)
	})

	r.Get("/api/graph/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, eng.GraphStats())
	})

	r.Get("/api/domains/{domain}/age", func(w http.ResponseWriter, r *http.Request) {
		domain := chi.URLParam(r, "domain")
		writeJSON(w, 200, eng.DomainAge(r.Context(), domain))
	})

	r.Get("/api/assessments/recent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, eng.Recent(queryInt(r, "limit", 20)))
	})

	// HTTP server.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// statusFor maps engine sentinel errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, credibility.ErrMissingURL),
		errors.Is(err, credibility.ErrInvalidURL),
		errors.Is(err, credibility.ErrInvalidOutcome):
		return 400
	default:
		return 500
	}
}

// --- Helpers ---

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
