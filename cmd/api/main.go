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

	"attomax-partners/internal/config"
	"attomax-partners/internal/database"
	"attomax-partners/internal/infrastructure/shopify"
	"attomax-partners/internal/repo"
	"attomax-partners/internal/service"
	transporthttp "attomax-partners/internal/transport/http"
	"attomax-partners/internal/worker"
	"attomax-partners/migrations"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second
const payoutInterval = 1 * time.Hour
const payoutPeriod = 30 * 24 * time.Hour

func main() {
	cfg := config.Load()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.NewPostgres()
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	partnerRepo := repo.NewPartnerRepo(db)
	orderRepo := repo.NewOrderRepo(db)
	paymentRepo := repo.NewPaymentRepo(db)
	productRepo := repo.NewProductRepo(db)

	shopifyClient := shopify.NewClient(cfg.ShopifyShopDomain, cfg.ShopifyAccessToken)

	webhookSvc := service.NewWebhookService(partnerRepo, orderRepo)
	partnerSvc := service.NewPartnerService(partnerRepo)
	syncSvc := service.NewSyncService(productRepo, shopifyClient)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	payoutWorker := worker.NewPayoutWorker(db, orderRepo, paymentRepo, payoutInterval, payoutPeriod)
	go payoutWorker.Run(workerCtx)

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Health:      database.New(db),
		Webhook:     transporthttp.NewWebhookHandler(webhookSvc, cfg.ShopifyWebhookSecret, cfg.IsProduction()),
		Partner:     transporthttp.NewPartnerHandler(partnerSvc),
		Admin:       transporthttp.NewAdminHandler(orderRepo, paymentRepo),
		Sync:        transporthttp.NewSyncHandler(syncSvc, cfg.AdminAPIToken),
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	stopWorker()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
