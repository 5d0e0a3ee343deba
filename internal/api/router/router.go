package router

import (
	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/payments", func(r chi.Router) {
			r.Post("/create-order", server.PaymentHandler.CreateOrder)
			r.Post("/verify", server.PaymentHandler.VerifyPayment)
			r.Post("/webhook", server.PaymentHandler.Webhook)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/{orderId}", server.OrderHandler.GetOrder)
			r.Post("/cod", server.OrderHandler.CreateCODOrder)
		})
	})

	return r
}
