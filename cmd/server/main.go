package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carecraft/storefront/internal/cart"
	"github.com/carecraft/storefront/internal/config"
	"github.com/carecraft/storefront/internal/events"
	"github.com/carecraft/storefront/internal/httpserver"
	"github.com/carecraft/storefront/internal/logging"
	mwauth "github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/repo"
	"github.com/carecraft/storefront/internal/search"
	"github.com/carecraft/storefront/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL)
	jwtSecret := []byte(cfg.JWT_SECRET)

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
	}

	var indexer *search.Indexer
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg)
		if err != nil {
			log.Fatal(err)
		}
		indexer = &search.Indexer{ES: esClient, Index: cfg.ES_INDEX}
	}

	r := repo.New(db)
	accountSvc := &service.AccountService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r, Indexer: indexer}
	sellerSvc := &service.SellerService{Repo: r}
	categorySvc := &service.CategoryService{Repo: r}
	reviewSvc := &service.ReviewService{Repo: r}
	cookieAuth := &mwauth.CookieAuth{Secret: jwtSecret}
	secure := cfg.Production()

	e := echo.New()
	e.HideBanner = true

	deps := httpserver.Deps{
		Auth:      cookieAuth,
		Logger:    logger,
		AuthH:     &httpserver.AuthHandler{Svc: accountSvc, JWTSecret: jwtSecret, Producer: producer, Auth: cookieAuth, Secure: secure},
		AccountH:  &httpserver.AccountHandler{Svc: accountSvc, JWTSecret: jwtSecret, Producer: producer, Secure: secure},
		ProductH:  &httpserver.ProductHandler{Svc: catalogSvc, SellerSvc: sellerSvc, Producer: producer},
		SellerH:   &httpserver.SellerHandler{Svc: sellerSvc},
		CategoryH: &httpserver.CategoryHandler{Svc: categorySvc},
		ReviewH:   &httpserver.ReviewHandler{Svc: reviewSvc, Producer: producer},
		CartH:     &httpserver.CartHandler{Store: cart.NewGormStore(db), Catalog: catalogSvc, Producer: producer},
		SearchH:   &httpserver.SearchHandler{Indexer: indexer},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
