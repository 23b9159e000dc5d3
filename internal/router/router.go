package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/trendwear/storefront/internal/admin"
	"github.com/trendwear/storefront/internal/cart"
	"github.com/trendwear/storefront/internal/logger"
	"github.com/trendwear/storefront/internal/middleware"
	"github.com/trendwear/storefront/internal/order"
	"github.com/trendwear/storefront/internal/payment"
)

func NewRouter(
	orderH *order.Handler,
	paymentH *payment.Handler,
	adminH *admin.Handler,
	cartH *cart.Handler,
	jwtSecret []byte,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)

	r.Use(middleware.GzipHandler)

	r.Get("/order/status/{orderId}", orderH.OrderStatus)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtSecret))

		r.Post("/order/place", orderH.PlaceOrder)
		r.Post("/order/razorpay", orderH.PlaceOrderGateway)
		r.Post("/order/userorders", orderH.UserOrders)

		r.Post("/cart/add", cartH.Add)
		r.Post("/cart/update", cartH.Update)
		r.Post("/cart/get", cartH.Get)

		r.Post("/payment/initiate", paymentH.Initiate)
		r.Post("/payment/verify", paymentH.Verify)
		r.Get("/payment/status/{orderId}", paymentH.Status)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwtSecret))
		r.Use(middleware.RequireAdmin)

		r.Get("/admin/orders", adminH.ListOrders)
		r.Get("/admin/orders/{orderId}", adminH.OrderByID)
		r.Post("/admin/orders/update", orderH.UpdateStatus)
	})

	return r
}
