// routes/routes.go
package routes

import (
	"io"
	"net/http"

	"go-qkart/controllers"
	"go-qkart/middleware"
	"go-qkart/utils"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Controllers groups the handlers mounted under /v1
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Product *controllers.ProductController
	Cart    *controllers.CartController
	Health  *controllers.HealthController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, auth mux.MiddlewareFunc) {
	router.Use(middleware.RequireJSON)
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	v1 := router.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/health", c.Health.Health).Methods("GET")
	v1.HandleFunc("/auth/register", c.Auth.Register).Methods("POST")
	v1.HandleFunc("/auth/login", c.Auth.Login).Methods("POST")
	v1.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	v1.HandleFunc("/products/{productId}", c.Product.GetProductByID).Methods("GET")

	// Protected routes
	users := v1.PathPrefix("/users").Subrouter()
	users.Use(auth)
	users.HandleFunc("/{userId}", c.User.GetUser).Methods("GET")
	users.HandleFunc("/{userId}", c.User.SetAddress).Methods("PUT")

	cart := v1.PathPrefix("/cart").Subrouter()
	cart.Use(auth)
	cart.HandleFunc("", c.Cart.GetCart).Methods("GET")
	cart.HandleFunc("", c.Cart.AddToCart).Methods("POST")
	cart.HandleFunc("", c.Cart.UpdateCart).Methods("PUT")
	cart.HandleFunc("/checkout", c.Cart.Checkout).Methods("PUT")
}

// Wrap adds request ids, CORS, gzip, panic recovery and, when accessLog is
// set, an Apache combined access log around h
func Wrap(h http.Handler, corsOrigins []string, accessLog io.Writer) http.Handler {
	h = middleware.RequestID(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(corsOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)(h)
	h = handlers.CompressHandler(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	if accessLog != nil {
		h = handlers.CombinedLoggingHandler(accessLog, h)
	}
	return h
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, utils.NotFound("Not found"))
}
