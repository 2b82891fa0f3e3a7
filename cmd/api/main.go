package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Werneck0live/sanicontrol/internal/admin"
	"github.com/Werneck0live/sanicontrol/internal/alerts"
	"github.com/Werneck0live/sanicontrol/internal/broker"
	"github.com/Werneck0live/sanicontrol/internal/config"
	"github.com/Werneck0live/sanicontrol/internal/db"
	"github.com/Werneck0live/sanicontrol/internal/handlers"
	"github.com/Werneck0live/sanicontrol/internal/metrics"
	"github.com/Werneck0live/sanicontrol/internal/repository"
	"github.com/Werneck0live/sanicontrol/internal/store"
)

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	_ = config.InitLogger(cfg.LogLevel)

	// HOOK: admin jobs (one-off)
	task := flag.String("task", "", "admin task: seed | scan")
	flag.Parse()
	slog.Info("starting", "port", cfg.Port, "store", cfg.StoreDriver, "task", *task)

	st, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store_open_error", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	pub := openPublisher(cfg)

	if *task != "" {
		code := runTask(*task, st, pub)
		if pub != nil {
			_ = pub.Close()
		}
		closeStore()
		os.Exit(code) // encerra o processo sem subir HTTP
	}
	defer closeStore()
	if pub != nil {
		defer pub.Close()
	}

	runCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	if cfg.AlertScanInterval > 0 {
		scanner := alerts.NewScanner(st, pub, slog.Default())
		go scanner.Run(runCtx, cfg.AlertScanInterval)
		slog.Info("alert_scan_scheduled", "interval", cfg.AlertScanInterval.String())
	}

	h := handlers.New(st, pub, slog.Default())
	h.Timeout = cfg.RequestTimeout
	h.Firm = cfg.ReportFirm

	m := metrics.New()
	m.TrackLicenses(st, time.Now, slog.Default())

	mux := http.NewServeMux()
	h.Register(mux)
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           logMiddleware(m, mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	stopJobs()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful_shutdown_error", "err", err)
	}
	slog.Info("stopped")
}

// openStore escolhe o driver; o close devolvido nunca é nil.
func openStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		slog.Warn("memory_store_in_use", "hint", "dados somem ao reiniciar")
		return store.NewMemory(), func() {}, nil

	case config.StoreMongo:
		client, err := db.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		s := repository.NewStore(client.Database(cfg.MongoDB))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return s, closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// openPublisher devolve nil (interface nula) quando os eventos estão
// desligados ou o RabbitMQ não responde: a API segue sem eventos.
func openPublisher(cfg *config.Config) handlers.Publisher {
	if !cfg.EventsEnabled {
		return nil
	}
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
	if err != nil {
		slog.Warn("rabbitmq_connect_error", "err", err, "events", "disabled")
		return nil
	}
	return pub
}

func runTask(task string, st store.Store, pub handlers.Publisher) int {
	ctx := context.Background()
	switch task {
	case "seed":
		if _, err := admin.Seed(ctx, st, time.Now(), slog.Default()); err != nil {
			slog.Error("seed_failed", "err", err)
			return 1
		}
		return 0
	case "scan":
		sum, err := admin.ScanOnce(ctx, st, pub, slog.Default())
		if err != nil {
			slog.Error("scan_failed", "err", err)
			return 1
		}
		if sum.Failed > 0 {
			return 3
		}
		return 0
	default:
		slog.Error("unknown_admin_task", "task", task)
		return 2
	}
}

type statusRW struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusRW) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRW) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Loga as requisições HTTP (método, status, n. de bytes e duração) e
// alimenta as métricas
func logMiddleware(m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusRW{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		dur := time.Since(start)
		m.ObserveRequest(r.Method, r.URL.Path, srw.status, dur)
		slog.Info("http_request",
			"method", r.Method, "path", r.URL.Path,
			"status", srw.status, "bytes", srw.bytes,
			"duration_ms", dur.Milliseconds(),
		)
	})
}
