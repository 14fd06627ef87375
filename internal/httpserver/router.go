package httpserver

import (
	"context"
	"errors"
	"log"

	"ecomcart/internal/domain"
	usersvc "ecomcart/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the router dispatches to.
type Deps struct {
	AuthSvc    authService
	ProductSvc productService
	CartSvc    cartService
	UserSvc    userService
}

type authService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
}

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, value string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	Get(u *domain.User) []domain.CartItem
	Upsert(ctx context.Context, u *domain.User, productID string, qty int) ([]domain.CartItem, error)
	Remove(ctx context.Context, u *domain.User, productID string) ([]domain.CartItem, error)
	Checkout(ctx context.Context, u *domain.User, addressID string) (*domain.Order, error)
}

type userService interface {
	Addresses(u *domain.User) []domain.Address
	AddAddress(ctx context.Context, u *domain.User, text string) ([]domain.Address, error)
	RemoveAddress(ctx context.Context, u *domain.User, id string) ([]domain.Address, error)
	GetProfile(u *domain.User) usersvc.Profile
	UpdateProfile(ctx context.Context, u *domain.User, name, mobile *string) (*usersvc.Profile, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.AuthSvc == nil || deps.ProductSvc == nil || deps.CartSvc == nil || deps.UserSvc == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api/v1")

	api.POST("/auth/register", registerHandler(deps.AuthSvc))
	api.POST("/auth/login", loginHandler(deps.AuthSvc))

	api.GET("/products", listProductsHandler(deps.ProductSvc))
	api.GET("/products/search", searchProductsHandler(deps.ProductSvc))
	api.GET("/products/:id", getProductHandler(deps.ProductSvc))

	authed := api.Group("", authMiddleware(deps.AuthSvc))
	authed.GET("/cart", getCartHandler(deps.CartSvc))
	authed.POST("/cart", upsertCartHandler(deps.CartSvc))
	authed.POST("/cart/checkout", checkoutHandler(deps.CartSvc))
	authed.DELETE("/cart/:productId", removeCartHandler(deps.CartSvc))

	authed.GET("/user/addresses", listAddressesHandler(deps.UserSvc))
	authed.POST("/user/addresses", addAddressHandler(deps.UserSvc))
	authed.DELETE("/user/addresses/:id", removeAddressHandler(deps.UserSvc))
	authed.GET("/user/profile", getProfileHandler(deps.UserSvc))
	authed.PUT("/user/profile", updateProfileHandler(deps.UserSvc))

	return router, nil
}
