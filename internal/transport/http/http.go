package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/service/services/authsvc"
	"github.com/chocobean/storefront/internal/service/services/catalogsvc"
	"github.com/chocobean/storefront/internal/service/services/messagesvc"
	"github.com/chocobean/storefront/internal/service/services/ordersvc"
	"github.com/chocobean/storefront/internal/service/services/usersvc"
	"github.com/chocobean/storefront/internal/transport/http/authn"
	"github.com/chocobean/storefront/internal/transport/http/catalog"
	"github.com/chocobean/storefront/internal/transport/http/messages"
	"github.com/chocobean/storefront/internal/transport/http/orders"
	"github.com/chocobean/storefront/internal/transport/http/users"
	"github.com/chocobean/storefront/pkg/http/middleware/trace"
	"github.com/chocobean/storefront/pkg/logger"

	authmw "github.com/chocobean/storefront/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	jwtManager *auth.JWTManager

	authSvc    *authsvc.AuthService
	catalogSvc *catalogsvc.CatalogService
	orderSvc   *ordersvc.OrderService
	userSvc    *usersvc.UserService
	messageSvc *messagesvc.MessageService
}

func NewHTTPTransport(
	jwtManager *auth.JWTManager,
	authSvc *authsvc.AuthService,
	catalogSvc *catalogsvc.CatalogService,
	orderSvc *ordersvc.OrderService,
	userSvc *usersvc.UserService,
	messageSvc *messagesvc.MessageService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:     server,
		router:     router,
		jwtManager: jwtManager,
		authSvc:    authSvc,
		catalogSvc: catalogSvc,
		orderSvc:   orderSvc,
		userSvc:    userSvc,
		messageSvc: messageSvc,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	requireAuth := authmw.Auth(h.jwtManager)

	h.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/login", h.login)

		r.Get("/products", h.listProducts)
		r.Get("/products/{productId}", h.getProduct)
		r.Get("/categories", h.listCategories)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/orders", h.createOrder)
			r.Get("/orders/mine", h.myOrders)
			r.Get("/orders/{orderId}", h.getOrder)
			r.Delete("/orders/{orderId}", h.deleteOrder)

			r.Get("/users/{userId}", h.getUser)
			r.Delete("/users/{userId}", h.deleteUser)
			r.Get("/users/{userId}/profile", h.getProfile)
			r.Post("/users/{userId}/profile", h.upsertProfile)

			r.Post("/messages", h.sendMessage)
			r.Get("/messages/user/{userId}", h.userMessages)
			r.Put("/messages/{messageId}/read", h.markMessageRead)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, authmw.RequireAdmin)

			r.Get("/orders", h.allOrders)
			r.Put("/orders/{orderId}/status", h.updateOrderStatus)

			r.Get("/users", h.allUsers)
			r.Put("/users/{userId}/status", h.updateUserStatus)

			r.Get("/messages/admin", h.adminMessages)
		})
	})
}

func (h *HTTPTransport) signup(w http.ResponseWriter, r *http.Request) {
	authn.Signup(w, r, h.authSvc)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	authn.Login(w, r, h.authSvc)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	catalog.ListProducts(w, r, h.catalogSvc)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	catalog.GetProduct(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	catalog.ListCategories(w, r, h.catalogSvc)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	orders.Create(w, r, h.orderSvc)
}

func (h *HTTPTransport) myOrders(w http.ResponseWriter, r *http.Request) {
	orders.Mine(w, r, h.orderSvc)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	orders.Get(w, r, h.orderSvc)
}

func (h *HTTPTransport) allOrders(w http.ResponseWriter, r *http.Request) {
	orders.All(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orders.UpdateStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) deleteOrder(w http.ResponseWriter, r *http.Request) {
	orders.Delete(w, r, h.orderSvc)
}

func (h *HTTPTransport) getUser(w http.ResponseWriter, r *http.Request) {
	users.Get(w, r, h.userSvc)
}

func (h *HTTPTransport) allUsers(w http.ResponseWriter, r *http.Request) {
	users.GetAll(w, r, h.userSvc)
}

func (h *HTTPTransport) deleteUser(w http.ResponseWriter, r *http.Request) {
	users.Delete(w, r, h.userSvc)
}

func (h *HTTPTransport) updateUserStatus(w http.ResponseWriter, r *http.Request) {
	users.UpdateStatus(w, r, h.userSvc)
}

func (h *HTTPTransport) getProfile(w http.ResponseWriter, r *http.Request) {
	users.GetProfile(w, r, h.userSvc)
}

func (h *HTTPTransport) upsertProfile(w http.ResponseWriter, r *http.Request) {
	users.UpsertProfile(w, r, h.userSvc)
}

func (h *HTTPTransport) sendMessage(w http.ResponseWriter, r *http.Request) {
	messages.Send(w, r, h.messageSvc)
}

func (h *HTTPTransport) userMessages(w http.ResponseWriter, r *http.Request) {
	messages.ForUser(w, r, h.messageSvc)
}

func (h *HTTPTransport) adminMessages(w http.ResponseWriter, r *http.Request) {
	messages.AdminInbox(w, r, h.messageSvc)
}

func (h *HTTPTransport) markMessageRead(w http.ResponseWriter, r *http.Request) {
	messages.MarkRead(w, r, h.messageSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
