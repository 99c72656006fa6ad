package main

import (
	"context"
	"errors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopfront/shopfront-api/internal/config"
	kafkax "github.com/shopfront/shopfront-api/internal/kafka"
	"github.com/shopfront/shopfront-api/internal/metrics"
	"github.com/shopfront/shopfront-api/internal/orders"
	"github.com/shopfront/shopfront-api/internal/redisx"
	"github.com/shopfront/shopfront-api/internal/reports"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	service := cfg.ServiceName + "-reports"
	inv := &reports.Invalidator{Redis: rdb, ServiceName: service}

	reg := prometheus.NewRegistry()
	cm := metrics.NewConsumerMetrics("reports_worker", reg)
	handle := func(ctx context.Context, m kafkago.Message) error {
		err := inv.HandleOrderEvent(ctx, m)
		result := "ok"
		if err != nil {
			result = "error"
		}
		cm.Events.WithLabelValues(m.Topic, result).Inc()
		return err
	}

	// metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{Addr: getenv("METRICS_ADDR", ":9091"), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics listen: %v", err)
		}
	}()

	// Consumer
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.WorkerGroup, orders.Topics, cfg.Workers, service)
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Printf("reports worker started: group=%s topics=%v workers=%d", cfg.WorkerGroup, orders.Topics, cfg.Workers)
		if err := cons.Start(ctx, handle); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Println("shutting down consumer...")
	cancel()
	<-done
	ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
