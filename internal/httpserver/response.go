package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// failure is the JSON body for every non-2xx response. Store errors are
// collapsed into a generic message so no internal detail leaks.
type failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, failure{Success: false, Message: message})
}

func respondStoreError(c *gin.Context) {
	respondError(c, http.StatusInternalServerError, "Something went wrong")
}
