package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/urbangear/retail-app/auth"
	"github.com/urbangear/retail-app/gate"
	"github.com/urbangear/retail-app/httpx"
	"github.com/urbangear/retail-app/internal/assets"
	"github.com/urbangear/retail-app/internal/handlers"
	"github.com/urbangear/retail-app/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. Every route passes through the session middleware; mutating
// routes additionally require the matching permission. Reads and writes
// on the same path carry different permissions, so the method dispatch
// lives here rather than in the handlers.
func New(db *gorm.DB, store *assets.Store, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	catalogSvc := services.NewCatalogService(db)
	itemSvc := services.NewItemService(db, store)
	orderSvc := services.NewOrderService(db)

	authHandler := handlers.NewAuthHandler(db, store)
	catalogHandler := handlers.NewCatalogHandler(catalogSvc)
	itemHandler := handlers.NewItemHandler(itemSvc, store)
	orderHandler := handlers.NewOrderHandler(orderSvc)
	vendorHandler := handlers.NewVendorHandler(catalogSvc, itemSvc)

	guard := func(perm gate.Permission, fn http.HandlerFunc) http.Handler {
		return auth.Require(perm, fn)
	}

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints are open; /session still reads the parsed identity.
	authHandler.Register(mux)

	// Catalog listing; guests hold catalog:view, so this is effectively
	// public, but the permission keeps the route on the same gate path
	// as everything else.
	mux.Handle("/catalog", guard(gate.PermCatalogView, catalogHandler.List))

	// Vendors: listing backs the filter dropdown, creation is the item
	// editor's quick-add.
	mux.Handle("/vendors", methodSplit(map[string]http.Handler{
		http.MethodGet:  guard(gate.PermCatalogView, vendorHandler.List),
		http.MethodPost: guard(gate.PermVendorCreate, vendorHandler.Create),
	}))

	// Item editor endpoints.
	mux.Handle("/items", methodSplit(map[string]http.Handler{
		http.MethodGet:  guard(gate.PermCatalogView, itemHandler.Get),
		http.MethodPost: guard(gate.PermItemCreate, itemHandler.Create),
	}))
	mux.Handle("/items/update", guard(gate.PermItemUpdate, itemHandler.Update))
	mux.Handle("/items/delete", guard(gate.PermItemDelete, itemHandler.Delete))
	mux.Handle("/items/refs", guard(gate.PermItemCreate, itemHandler.Refs))
	mux.Handle("/items/photo", guard(gate.PermCatalogView, itemHandler.Photo))

	// Order endpoints.
	mux.Handle("/orders", methodSplit(map[string]http.Handler{
		http.MethodGet:  guard(gate.PermOrderView, orderHandler.List),
		http.MethodPost: guard(gate.PermOrderCreate, orderHandler.Create),
	}))
	mux.Handle("/orders/get", guard(gate.PermOrderView, orderHandler.Get))
	mux.Handle("/orders/update", guard(gate.PermOrderUpdate, orderHandler.Update))
	mux.Handle("/orders/delete", guard(gate.PermOrderDelete, orderHandler.Delete))
	mux.Handle("/orders/refs", guard(gate.PermOrderCreate, orderHandler.Refs))
	mux.Handle("/orders/check", guard(gate.PermOrderCreate, orderHandler.Check))

	return withRecover(withLogging(log, auth.Middleware(mux)))
}

// methodSplit routes by method when reads and writes on one path need
// different permissions.
func methodSplit(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		httpx.MethodNotAllowed(w, "GET,POST")
	})
}

func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
