package main

import (
	"context"
	"fmt"
	"log"

	"github.com/agrimarket/escrow-client/internal/config"
	"github.com/agrimarket/escrow-client/internal/delivery/httpapi"
	"github.com/agrimarket/escrow-client/internal/domain"
	"github.com/agrimarket/escrow-client/internal/gateway"
	"github.com/agrimarket/escrow-client/internal/infrastructure/kafka"
	"github.com/agrimarket/escrow-client/internal/infrastructure/locker"
	"github.com/agrimarket/escrow-client/internal/infrastructure/metrics"
	"github.com/agrimarket/escrow-client/internal/infrastructure/snapshot"
	"github.com/agrimarket/escrow-client/internal/infrastructure/storage"
	"github.com/agrimarket/escrow-client/internal/session"
	disputeuc "github.com/agrimarket/escrow-client/internal/usecase/dispute"
	escrowuc "github.com/agrimarket/escrow-client/internal/usecase/escrow"
	"github.com/agrimarket/escrow-client/internal/watcher"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	// Local transition audit log
	db := snapshot.MustOpenDB(cfg.SnapshotDB.Path)
	transitionLog := snapshot.NewGormTransitionLog(db)

	// Evidence storage (in-memory stub when no endpoint configured)
	evidenceStorage, err := storage.New(
		cfg.ObjectStorage.Endpoint,
		cfg.ObjectStorage.AccessKey,
		cfg.ObjectStorage.SecretKey,
		cfg.ObjectStorage.Bucket,
		cfg.ObjectStorage.UseSSL,
	)
	if err != nil {
		log.Fatalf("failed to init evidence storage: %v", err)
	}

	// Kafka lifecycle event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	publisher := kafka.NewKafkaPublisher(brokers, cfg.KafkaService.EscrowTopic, cfg.KafkaService.DisputeTopic)

	// Metrics
	escrowMetrics := metrics.NewEscrowMetrics()

	// Session (identity collaborator owns real token refresh)
	sess := session.New(
		session.User{ID: cfg.SessionConfig.UserID, Role: domain.Role(cfg.SessionConfig.Role)},
		cfg.SessionConfig.Token,
		nil,
	)

	// Gateway client
	client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, sess, escrowMetrics)

	policy := domain.Policy{RequireDepositBeforeReady: cfg.PolicyConfig.RequireDepositBeforeReady}
	inFlight := locker.NewInFlightLocker()

	// Lifecycle services
	escrowUsecase := escrowuc.NewDefaultEscrowUsecase(client, client, sess, inFlight, publisher, transitionLog, escrowMetrics, policy)
	disputeUsecase := disputeuc.NewDefaultDisputeUsecase(client, client, sess, inFlight, evidenceStorage, publisher, transitionLog, escrowMetrics, policy)

	// Watcher reflects admin-driven transitions
	w := watcher.New(client, client, transitionLog, publisher, escrowMetrics, cfg.WatcherConfig.Interval)
	for _, escrowID := range cfg.WatcherConfig.EscrowIDs {
		w.Track(escrowID)
	}
	go w.Run(context.Background())

	// Local API for the UI + metrics endpoint
	r := gin.Default()
	handler := httpapi.NewHandler(escrowUsecase, disputeUsecase, sess, policy)
	handler.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	log.Printf("escrow client started on %s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("failed to run http server: %v\n", err)
	}
}
