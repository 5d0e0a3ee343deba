package api

import "github.com/RoyceAzure/lab/storefront/internal/api/handler"

type Server struct {
	PaymentHandler *handler.PaymentHandler
	OrderHandler   *handler.OrderHandler
}

func NewServer(
	paymentHandler *handler.PaymentHandler,
	orderHandler *handler.OrderHandler,
) *Server {
	return &Server{
		PaymentHandler: paymentHandler,
		OrderHandler:   orderHandler,
	}
}
