// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-qkart/cache"
	"go-qkart/config"
	"go-qkart/controllers"
	"go-qkart/middleware"
	"go-qkart/repository"
	"go-qkart/routes"
	"go-qkart/services"
	"go-qkart/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := repository.Connect(ctx, cfg.Mongo.URL, cfg.Mongo.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db, cfg.DefaultPaymentOption)
	atomic := repository.NewAtomic(client, cfg.Mongo.Transactions)

	// Redis is optional; without it catalog reads go straight to MongoDB
	var productCache services.ProductCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return err
		}
		defer rdb.Close()
		productCache = cache.NewProductCache(rdb, cfg.Redis.ProductTTL)
	}

	var mailer services.ReceiptSender
	emailService := utils.NewEmailService(cfg.Email.Provider, cfg.Email.Sender, cfg.Email.PostmarkToken, cfg.Email.SendGridAPIKey)
	if emailService.Enabled() {
		mailer = emailService
	}

	tokens := utils.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessExpirationMinutes)*time.Minute)

	authService := services.NewAuthService(userRepo, tokens, cfg.DefaultWalletMoney, cfg.DefaultAddress)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, productCache)
	cartService := services.NewCartService(cartRepo, productRepo, userRepo, atomic, mailer, cfg.DefaultAddress)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, routes.Controllers{
		Auth:    controllers.NewAuthController(authService, cfg.Mongo.Timeout),
		User:    controllers.NewUserController(userService, cfg.Mongo.Timeout),
		Product: controllers.NewProductController(productService, cfg.Mongo.Timeout),
		Cart:    controllers.NewCartController(cartService, cfg.Mongo.Timeout),
		Health: controllers.NewHealthController(func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}, cfg.Mongo.Timeout),
	}, middleware.Auth(tokens, userService))

	var accessLog io.Writer = os.Stdout
	if cfg.IsTest() {
		accessLog = nil
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.Wrap(router, cfg.CORSOrigins, accessLog),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	// Let in-flight checkout receipts finish before the process exits
	cartService.Wait()
	return err
}
