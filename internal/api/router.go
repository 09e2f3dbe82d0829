package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/config"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/intake"
)

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config *config.Config
	Intake *intake.Service
}

type depsContextKey struct{}

func depsFromContext(r *http.Request) *ApiDependencies {
	deps, _ := r.Context().Value(depsContextKey{}).(*ApiDependencies)
	if deps == nil {
		return &ApiDependencies{Config: &config.Config{}}
	}
	return deps
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r *chi.Mux, deps ApiDependencies) {
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), depsContextKey{}, &deps)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	r.Group(func(r chi.Router) {
		r.Get("/api/client-config", GetClientConfig)
		r.Get("/api/loyalty", GetLoyaltyHandler)

		r.Post("/api/order", CreateOrderHandler)
		r.Get("/api/order/{id}", GetOrderHandler)
		r.Get("/api/order/{id}/contact-qr", OrderContactQRHandler)
	})

	// --- Маршруты портала исполнителя ---
	r.Route("/api/worker/{telegram_id}", func(r chi.Router) {
		r.Get("/wallet", GetWalletHandler)
		r.Get("/wallet/stream", WalletStreamHandler)
		r.Post("/take-job", TakeJobHandler)
		r.Post("/finish-job", FinishJobHandler)
	})

	// --- Маршруты оператора ---
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/orders", GetAdminOrdersHandler)
		r.Get("/orders-export", ExportOrdersHandler)
		r.Post("/order/{id}/status", UpdateOrderStatusHandler)
	})
}
