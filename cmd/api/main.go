package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zhouzirui/person-records/backend/internal/config"
	"github.com/zhouzirui/person-records/backend/internal/handler"
	"github.com/zhouzirui/person-records/backend/internal/handler/system"
	"github.com/zhouzirui/person-records/backend/internal/metrics"
	"github.com/zhouzirui/person-records/backend/internal/model/person"
	personService "github.com/zhouzirui/person-records/backend/internal/service/person"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var (
		appMetrics     *metrics.Metrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		appMetrics = metrics.New(reg)
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	} else {
		log.Println("metrics disabled by configuration")
	}

	// State lives only for the lifetime of this process; the instance id lets
	// clients notice a restart.
	instanceID := uuid.NewString()
	store := person.NewMemoryStore()
	if cfg.Person.SeedDemo {
		seeded := person.Load(store, person.Seed())
		appMetrics.SetStored(store.Count())
		log.Printf("seeded %d demo persons", len(seeded))
	}

	hub := personService.NewHub(cfg.Person.EventBuffer, appMetrics)
	personSvc := personService.NewService(store, hub, appMetrics, personService.Config{
		DefaultLimit: cfg.Person.DefaultLimit,
		MaxLimit:     cfg.Person.MaxLimit,
	})

	router := handler.NewRouter(personSvc, hub, system.Info{
		APIBaseURL: cfg.Server.APIBaseURL,
		InstanceID: instanceID,
	}, handler.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     metricsHandler,
	})

	startServer(ctx, cfg.Server, instanceID, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, instanceID string, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("person records backend listening on %s (instance %s)", addr, instanceID)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
