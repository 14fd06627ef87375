package httpserver

import (
	"errors"
	"net/http"

	"ecomcart/internal/domain"
	usersvc "ecomcart/internal/service/user"

	"github.com/gin-gonic/gin"
)

type addAddressRequest struct {
	Address string `json:"address"`
}

type updateProfileRequest struct {
	Name   *string `json:"name"`
	Mobile *string `json:"mobile"`
}

func listAddressesHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Addresses(currentUser(c)))
	}
}

func addAddressHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Address is required")
			return
		}
		addresses, err := svc.AddAddress(c.Request.Context(), currentUser(c), req.Address)
		if err != nil {
			switch {
			case errors.Is(err, usersvc.ErrAddressTooShort):
				respondError(c, http.StatusBadRequest, "Address should be greater than 20 characters")
			case errors.Is(err, usersvc.ErrAddressTooLong):
				respondError(c, http.StatusBadRequest, "Address should be less than 128 characters")
			default:
				respondStoreError(c)
			}
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

func removeAddressHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		addresses, err := svc.RemoveAddress(c.Request.Context(), currentUser(c), c.Param("id"))
		if err != nil {
			if errors.Is(err, usersvc.ErrAddressNotFound) {
				respondError(c, http.StatusNotFound, "Address to delete was not found")
				return
			}
			respondStoreError(c)
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

func getProfileHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.GetProfile(currentUser(c)))
	}
}

func updateProfileHandler(svc userService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "No valid fields to update")
			return
		}
		profile, err := svc.UpdateProfile(c.Request.Context(), currentUser(c), req.Name, req.Mobile)
		if err != nil {
			switch {
			case errors.Is(err, usersvc.ErrNoProfileFields):
				respondError(c, http.StatusBadRequest, "No valid fields to update")
			case errors.Is(err, domain.ErrNotFound):
				respondError(c, http.StatusNotFound, "User not found after update")
			default:
				respondStoreError(c)
			}
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
