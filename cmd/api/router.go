package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/petsalon/salon-api/internal/domain/blog"
	"github.com/petsalon/salon-api/internal/domain/booking"
	"github.com/petsalon/salon-api/internal/domain/catalog"
	"github.com/petsalon/salon-api/internal/domain/contact"
	"github.com/petsalon/salon-api/internal/domain/gallery"
	"github.com/petsalon/salon-api/internal/domain/order"
	"github.com/petsalon/salon-api/internal/domain/review"
	"github.com/petsalon/salon-api/internal/domain/stats"
	"github.com/petsalon/salon-api/internal/middleware"
	"github.com/petsalon/salon-api/internal/pkg/email"
	"github.com/petsalon/salon-api/internal/pkg/logger"
	"github.com/petsalon/salon-api/internal/pkg/metrics"
	"github.com/petsalon/salon-api/internal/pkg/response"
)

// deps is everything the HTTP surface needs from the outside world.
type deps struct {
	db          *sqlx.DB
	limiter     middleware.Limiter // nil disables rate limiting
	metrics     *metrics.Metrics   // nil disables /metrics
	notifier    *email.Service     // nil disables staff emails
	allowOrigin []string
	uploadsDir  string // served under /uploads when set
}

func newRouter(d deps) http.Handler {
	// ---------- Services ----------
	reviewService := review.NewService(review.NewRepository(d.db))
	reviewService.SetMetrics(d.metrics)

	bookingService := booking.NewService(booking.NewRepository(d.db))
	bookingService.SetMetrics(d.metrics)
	bookingService.SetNotifier(d.notifier)

	orderService := order.NewService(order.NewRepository(d.db))
	orderService.SetMetrics(d.metrics)

	blogService := blog.NewService(blog.NewRepository(d.db))
	blogService.SetMetrics(d.metrics)

	contactService := contact.NewService(contact.NewRepository(d.db))
	contactService.SetMetrics(d.metrics)
	contactService.SetNotifier(d.notifier)

	galleryService := gallery.NewService(gallery.NewRepository(d.db), nil, nil)

	// ---------- Handlers ----------
	catalogHandler := catalog.NewHandler(catalog.NewRepository(d.db))
	reviewHandler := review.NewHandler(reviewService)
	bookingHandler := booking.NewHandler(bookingService)
	orderHandler := order.NewHandler(orderService)
	blogHandler := blog.NewHandler(blogService)
	galleryHandler := gallery.NewHandler(galleryService)
	contactHandler := contact.NewHandler(contactService)
	statsHandler := stats.NewHandler(stats.NewRepository(d.db))

	writeLimit := middleware.RateLimit(d.limiter)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(d.allowOrigin))
	if d.metrics != nil {
		r.Use(middleware.Metrics(d.metrics))
	}

	r.Get("/health", healthHandler(d.db))
	if d.metrics != nil {
		r.Handle("/metrics", d.metrics.Handler())
	}
	if d.uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.uploadsDir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/services", catalogHandler.Routes())
		r.Mount("/reviews", reviewHandler.Routes(writeLimit))
		r.Mount("/bookings", bookingHandler.Routes(writeLimit))
		r.Mount("/orders", orderHandler.Routes(writeLimit))
		r.Mount("/blog", blogHandler.Routes())
		r.Mount("/gallery", galleryHandler.Routes())
		r.Mount("/contacts", contactHandler.Routes(writeLimit))
		r.Mount("/stats", statsHandler.Routes())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return r
}

func healthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).Error().Err(err).Msg("Health check failed")
			response.ServiceUnavailable(w, "Database unavailable")
			return
		}
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	}
}
