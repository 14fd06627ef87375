package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"ecomcart/internal/domain"
	authsvc "ecomcart/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const userCtxKey = "ecomcart.user"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func registerHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "Username and password are required")
			return
		}
		_, err := svc.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, authsvc.ErrUsernameTaken):
				respondError(c, http.StatusConflict, "Username already taken")
			case errors.Is(err, authsvc.ErrUsernameRequired):
				respondError(c, http.StatusBadRequest, "Username is required")
			case errors.Is(err, authsvc.ErrPasswordTooShort):
				respondError(c, http.StatusBadRequest, "Password must be at least 6 characters")
			default:
				respondStoreError(c)
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	}
}

func loginHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
			respondError(c, http.StatusBadRequest, "Username and password are required")
			return
		}
		u, token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidCredentials) {
				respondError(c, http.StatusUnauthorized, "Password is incorrect")
				return
			}
			respondStoreError(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"token":    token,
			"username": u.Username,
			"balance":  u.Balance,
		})
	}
}

// authMiddleware resolves the Bearer token to a freshly-read user document
// and attaches it to the request. Every downstream handler operates on that
// snapshot of the user.
func authMiddleware(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respondError(c, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
			c.Abort()
			return
		}
		u, err := svc.LookupByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, authsvc.ErrInvalidToken) {
				respondError(c, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token invalid")
				c.Abort()
				return
			}
			respondStoreError(c)
			c.Abort()
			return
		}
		c.Set(userCtxKey, u)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

