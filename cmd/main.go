package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/api"
	"github.com/RoyceAzure/lab/storefront/internal/api/handler"
	"github.com/RoyceAzure/lab/storefront/internal/api/router"
	"github.com/RoyceAzure/lab/storefront/internal/appcontext"
	"github.com/RoyceAzure/lab/storefront/internal/config"
	"github.com/RoyceAzure/lab/storefront/internal/producer"
	"github.com/rs/zerolog"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	var events producer.IOrderEventProducer
	if app.Producer != nil {
		events = producer.NewOrderEventProducer(app.Producer)
	}
	paymentHandler := handler.NewPaymentHandler(app.Gateway, app.OrderService, events, app.Cf.RazorpayKeyID, app.Cf.WebhookSecret)
	orderHandler := handler.NewOrderHandler(app.OrderService)

	server := api.NewServer(paymentHandler, orderHandler)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 設置路由
	r := router.SetupRouter(server, &logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
