// Package devapi is an in-memory reference implementation of the
// WishCrate REST API. It exists so the console storefront and the
// end-to-end tests can run without the production backend; it is a
// development fixture, not a product server.
package devapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/wishcrate/storefront/client"
	"github.com/wishcrate/storefront/pkg/logger"
)

// Config holds server configuration.
type Config struct {
	// JWTSecret signs session tokens. Defaults to a fixed dev secret.
	JWTSecret []byte

	// Logger defaults to a no-op logger.
	Logger *logger.Logger

	// Seed loads the demo catalog and demo accounts when true.
	Seed bool
}

// Server is the in-memory backend.
type Server struct {
	mu sync.Mutex

	users      map[int64]*user
	emailIndex map[string]int64
	products   map[int64]*client.Product
	categories map[int64]*client.Category
	carts      map[int64][]*cartLine // by user id
	addresses  map[int64][]client.Address
	orders     map[int64][]*client.Order
	nextID     int64

	jwtSecret    []byte
	log          *logger.Logger
	loginLimiter *rate.Limiter

	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

type user struct {
	profile  client.Profile
	password string
}

type cartLine struct {
	id        int64
	productID int64
	quantity  int
}

// New creates a server.
func New(cfg Config) *Server {
	secret := cfg.JWTSecret
	if len(secret) == 0 {
		secret = []byte("wishcrate-dev-secret")
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "devapi_requests_total",
		Help: "API requests by method and status.",
	}, []string{"method", "status"})
	registry.MustRegister(requests)

	s := &Server{
		users:      make(map[int64]*user),
		emailIndex: make(map[string]int64),
		products:   make(map[int64]*client.Product),
		categories: make(map[int64]*client.Category),
		carts:      make(map[int64][]*cartLine),
		addresses:  make(map[int64][]client.Address),
		orders:     make(map[int64][]*client.Order),

		jwtSecret:    secret,
		log:          log,
		loginLimiter: rate.NewLimiter(rate.Limit(5), 10),
		registry:     registry,
		requests:     requests,
	}

	if cfg.Seed {
		s.seed()
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	api := r.PathPrefix("/api").Subrouter()

	// Public
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	api.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/featured", s.handleFeaturedProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/search", s.handleSearchProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/price-range", s.handlePriceRange).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{categoryId:[0-9]+}", s.handleProductsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", s.handleGetProduct).Methods(http.MethodGet)

	api.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{id:[0-9]+}", s.handleGetCategory).Methods(http.MethodGet)

	// Authenticated
	auth := api.NewRoute().Subrouter()
	auth.Use(s.authMiddleware)

	auth.HandleFunc("/cart", s.handleGetCart).Methods(http.MethodGet)
	auth.HandleFunc("/cart/add", s.handleAddToCart).Methods(http.MethodPost)
	auth.HandleFunc("/cart/update/{id:[0-9]+}", s.handleUpdateCartItem).Methods(http.MethodPut)
	auth.HandleFunc("/cart/remove/{id:[0-9]+}", s.handleRemoveCartItem).Methods(http.MethodDelete)
	auth.HandleFunc("/cart/clear", s.handleClearCart).Methods(http.MethodDelete)

	auth.HandleFunc("/addresses", s.handleListAddresses).Methods(http.MethodGet)
	auth.HandleFunc("/addresses", s.handleSaveAddress).Methods(http.MethodPost)
	auth.HandleFunc("/addresses/{id:[0-9]+}", s.handleDeleteAddress).Methods(http.MethodDelete)

	auth.HandleFunc("/orders/create", s.handleCreateOrder).Methods(http.MethodPost)
	auth.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	auth.HandleFunc("/orders/{orderId:[0-9]+}", s.handleGetOrder).Methods(http.MethodGet)
	auth.HandleFunc("/orders/{orderId:[0-9]+}/cancel", s.handleCancelOrder).Methods(http.MethodPut)

	// Admin
	admin := api.NewRoute().Subrouter()
	admin.Use(s.authMiddleware, s.adminMiddleware)

	admin.HandleFunc("/products", s.handleCreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id:[0-9]+}", s.handleUpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id:[0-9]+}", s.handleDeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id:[0-9]+}", s.handleUpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{orderId:[0-9]+}/status", s.handleUpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/admin/stats", s.handleStats).Methods(http.MethodGet)

	return r
}

// =============================================================================
// Middleware
// =============================================================================

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := s.identify(r)
		if err != nil {
			jsonError(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		r.Header.Set(userIDHeader, strconv.FormatInt(userID, 10))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, role, err := s.identify(r)
		if err != nil {
			jsonError(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}
		if role != client.RoleAdmin && role != client.RoleSeller {
			jsonError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const userIDHeader = "X-User-ID"

// =============================================================================
// JWT
// =============================================================================

type claims struct {
	UserID int64       `json:"userId"`
	Role   client.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) generateToken(userID int64, role client.Role) (string, error) {
	c := &claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "wishcrate-devapi",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.jwtSecret)
}

func (s *Server) identify(r *http.Request) (int64, client.Role, error) {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		return 0, "", errMissingToken
	}

	token, err := jwt.ParseWithClaims(authHeader[7:], &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadSigning
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, "", err
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, "", errMissingToken
	}
	return c.UserID, c.Role, nil
}

// =============================================================================
// Helpers
// =============================================================================

func currentUserID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.Header.Get(userIDHeader), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func jsonError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

func (s *Server) allocID() int64 {
	s.nextID++
	return s.nextID
}
