// Package api serves the worker operations over HTTP for API Gateway.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	createrating "restaurant-workers/internal/workers/feedback/create-rating"
	generateuploadurl "restaurant-workers/internal/workers/feedback/generate-upload-url"
	getrestaurantmenu "restaurant-workers/internal/workers/menu/get-restaurant-menu"
	getrestaurantrecommendations "restaurant-workers/internal/workers/menu/get-restaurant-recommendations"
	globalfoodsearch "restaurant-workers/internal/workers/menu/global-food-search"
	createorder "restaurant-workers/internal/workers/orders/create-order"
	getorders "restaurant-workers/internal/workers/orders/get-orders"
	updateorderstatus "restaurant-workers/internal/workers/orders/update-order-status"
	processpayment "restaurant-workers/internal/workers/payments/process-payment"
)

const DefaultRequestTimeout = 30 * time.Second

// Services are the worker handlers behind each route. A nil handler leaves
// its route unmounted.
type Services struct {
	Menu            *getrestaurantmenu.Handler
	Search          *globalfoodsearch.Handler
	UploadURL       *generateuploadurl.Handler
	Rating          *createrating.Handler
	Recommendations *getrestaurantrecommendations.Handler
	CreateOrder     *createorder.Handler
	GetOrders       *getorders.Handler
	UpdateStatus    *updateorderstatus.Handler
	Payment         *processpayment.Handler
}

type Router struct {
	services       Services
	allowedOrigins []string
	timeout        time.Duration
	logger         logger.Logger
}

func NewRouter(services Services, allowedOrigins []string, log logger.Logger) *Router {
	return &Router{
		services:       services,
		allowedOrigins: allowedOrigins,
		timeout:        DefaultRequestTimeout,
		logger:         log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// WithTimeout overrides the per-request deadline.
func (rt *Router) WithTimeout(d time.Duration) *Router {
	rt.timeout = d
	return rt
}

// Setup builds the chi mux. The concrete type is returned because the
// Lambda proxy adapter needs it.
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(rt.requestLogger)
	router.Use(chimiddleware.Timeout(rt.timeout))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/health", rt.healthCheck)

	s := rt.services
	if s.Menu != nil {
		router.Get("/restaurants/{restaurantId}/menu", rt.getRestaurantMenu)
	}
	if s.Search != nil {
		router.Get("/search/global", rt.globalFoodSearch)
	}
	if s.UploadURL != nil {
		router.Post("/uploads", rt.generateUploadURL)
	}
	if s.Rating != nil {
		router.Post("/ratings", rt.createRating)
	}
	if s.Recommendations != nil {
		router.Get("/recommendations/{userId}", rt.getRecommendations)
	}
	if s.CreateOrder != nil {
		router.Post("/orders", rt.createOrder)
	}
	if s.GetOrders != nil {
		router.Get("/orders", rt.getOrders)
	}
	if s.UpdateStatus != nil {
		router.Post("/orders/status", rt.updateOrderStatus)
	}
	if s.Payment != nil {
		router.Post("/payments", rt.processPayment)
	}

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// requestLogger logs every request and counts it by route pattern.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()

		rt.logger.Info("HTTP Request", map[string]interface{}{
			"method":    r.Method,
			"route":     route,
			"status":    status,
			"bytes":     ww.BytesWritten(),
			"duration":  time.Since(start).String(),
			"requestID": chimiddleware.GetReqID(r.Context()),
		})
	})
}
