package main

import (
	"context"
	"errors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopfront/shopfront-api/internal/auth"
	"github.com/shopfront/shopfront-api/internal/billing"
	"github.com/shopfront/shopfront-api/internal/catalog"
	"github.com/shopfront/shopfront-api/internal/config"
	"github.com/shopfront/shopfront-api/internal/httpx"
	kafkax "github.com/shopfront/shopfront-api/internal/kafka"
	"github.com/shopfront/shopfront-api/internal/metrics"
	"github.com/shopfront/shopfront-api/internal/orders"
	"github.com/shopfront/shopfront-api/internal/postgres"
	"github.com/shopfront/shopfront-api/internal/redisx"
	"github.com/shopfront/shopfront-api/internal/reports"
	"github.com/shopfront/shopfront-api/internal/users"
	"github.com/shopspring/decimal"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	_ = godotenv.Load()
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer, optional
	orderSvc := &orders.Service{Store: &orders.Repo{DB: db}, ServiceName: cfg.ServiceName}
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, cfg.ServiceName, 1024)
		prod.Start(ctx)
		orderSvc.Events = prod
	} else {
		log.Println("KAFKA_BROKERS empty, order events disabled")
	}

	userRepo := &users.Repo{DB: db}
	authSvc := &auth.Service{
		Users:       userRepo,
		Tokens:      &auth.Tokens{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL},
		Revoker:     &auth.Revoker{Redis: rdb},
		ServiceName: cfg.ServiceName,
	}

	// Router & handlers
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	router := httpx.NewRouter(httpx.RouterOptions{
		Metrics:  metrics.NewServerMetrics("api", reg),
		Gatherer: reg,
	})
	gate := httpx.Gate(authSvc, cfg.ServiceName)
	t, svc := cfg.RequestTimeout, cfg.ServiceName
	reportSvc := &reports.Service{Source: &reports.Repo{DB: db}, Cache: rdb, TTL: cfg.ReportCacheTTL, ServiceName: svc}

	(&httpx.AuthHandler{Auth: authSvc, ReportCache: reportSvc, Timeout: t, Service: svc}).Register(router, gate)
	(&httpx.OrdersHandler{Orders: orderSvc, ReportCache: reportSvc, Timeout: t, Service: svc}).Register(router, gate)
	(&httpx.ReportsHandler{Reports: reportSvc, Timeout: t, Service: svc}).Register(router)
	(&httpx.CatalogHandler{
		Catalog:     &catalog.Service{Store: &catalog.Repo{DB: db}},
		ReportCache: reportSvc,
		Timeout:     t,
		Service:     svc,
	}).Register(router, gate)
	(&httpx.UsersHandler{
		Users:       &users.Service{Store: userRepo, Hash: auth.HashPassword},
		ReportCache: reportSvc,
		Timeout:     t,
		Service:     svc,
	}).Register(router, gate)
	(&httpx.BillingHandler{Billing: &billing.Service{Store: &billing.Repo{DB: db}}, Timeout: t, Service: svc}).Register(router, gate)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close()
		prod.WaitClosed()
	}
	cancel()
}
