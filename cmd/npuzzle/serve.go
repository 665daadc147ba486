package main

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/TheLongNoodle/NPL-Puzzle-Project/internal/adapters/http"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/config"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/generator"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/hint"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/hub"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/infrastructure/storage"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/solver"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/usecase"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/internal/validator"
	"github.com/TheLongNoodle/NPL-Puzzle-Project/web"
)

var serveFlags struct {
	addr       string
	dataDir    string
	logLevel   string
	configPath string
	budget     time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the game hub: HTTP API, websocket sideband, status page",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveFlags.dataDir, "data-dir", "", "game record directory (overrides config)")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")
	serveCmd.Flags().StringVar(&serveFlags.configPath, "config", "", "optional YAML config file")
	serveCmd.Flags().DurationVar(&serveFlags.budget, "solve-budget", 0, "per-request solve budget (overrides config)")
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveFlags.configPath)
	if err != nil {
		return err
	}
	if serveFlags.addr != "" {
		cfg.Addr = serveFlags.addr
	}
	if serveFlags.dataDir != "" {
		cfg.DataDir = serveFlags.dataDir
	}
	if serveFlags.logLevel != "" {
		cfg.LogLevel = serveFlags.logLevel
	}
	if serveFlags.budget > 0 {
		cfg.SolveBudget = serveFlags.budget
	}

	logger := newLogger(cfg.LogLevel)
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	// Wire providers → use cases → HTTP adapter
	eng := solver.New(logger)
	g := generator.NewRandom()
	v := validator.New()
	st := storage.NewFS(cfg.DataDir)
	hin := hint.NewNextMove(eng)
	uc := usecase.NewService(eng, g, v, hin, st)

	gameHub := hub.New(logger, prometheus.DefaultRegisterer)
	h := httpadapter.New(uc, gameHub, cfg.SolveBudget)

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("listening", "addr", cfg.Addr, "data", cfg.DataDir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server error", "err", err)
		return err
	}
	return nil
}
