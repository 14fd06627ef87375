package httpserver

import (
	"errors"
	"net/http"

	"ecomcart/internal/domain"
	cartsvc "ecomcart/internal/service/cart"

	"github.com/gin-gonic/gin"
)

type upsertCartRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type checkoutRequest struct {
	AddressID string `json:"addressId"`
}

func getCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Get(currentUser(c)))
	}
}

func upsertCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
			respondError(c, http.StatusBadRequest, "Product id is required")
			return
		}
		cart, err := svc.Upsert(c.Request.Context(), currentUser(c), req.ProductID, req.Qty)
		if err != nil {
			switch {
			case errors.Is(err, cartsvc.ErrProductNotFound):
				respondError(c, http.StatusNotFound, "Product doesn't exist")
			case errors.Is(err, cartsvc.ErrNegativeQuantity):
				respondError(c, http.StatusBadRequest, "Quantity must not be negative")
			default:
				respondStoreError(c)
			}
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func removeCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Remove(c.Request.Context(), currentUser(c), c.Param("productId"))
		if err != nil {
			if errors.Is(err, cartsvc.ErrNotInCart) {
				respondError(c, http.StatusNotFound, "Product not found in cart")
				return
			}
			respondStoreError(c)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func checkoutHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutRequest
		// Body may legitimately be empty; the service rejects a missing address.
		_ = c.ShouldBindJSON(&req)

		order, err := svc.Checkout(c.Request.Context(), currentUser(c), req.AddressID)
		if err != nil {
			switch {
			case errors.Is(err, cartsvc.ErrEmptyCart):
				respondError(c, http.StatusBadRequest, "Cart is empty")
			case errors.Is(err, cartsvc.ErrCartProductGone):
				respondError(c, http.StatusNotFound, "Invalid product in cart")
			case errors.Is(err, cartsvc.ErrInsufficientFunds):
				respondError(c, http.StatusBadRequest, "Wallet balance not sufficient to place order")
			case errors.Is(err, cartsvc.ErrAddressRequired):
				respondError(c, http.StatusBadRequest, "Address not set")
			case errors.Is(err, cartsvc.ErrAddressNotFound):
				respondError(c, http.StatusNotFound, "Bad address specified")
			case errors.Is(err, domain.ErrConflict):
				respondError(c, http.StatusConflict, "Checkout raced with another update, please retry")
			default:
				respondStoreError(c)
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   order,
		})
	}
}
