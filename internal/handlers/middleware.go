package handlers

import (
	"net/http"
	"strings"

	"discussion_board/internal/models"

	"github.com/gin-gonic/gin"
)

// currentUserKey is the gin context key holding the resolved *models.User.
const currentUserKey = "currentUser"

// bearerAuthMiddleware resolves the Authorization header into a full user
// record and aborts with 401 on any failure.
func (h *Handler) bearerAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.ResolveUser(c.Request.Context(), parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser fetches the user stored by bearerAuthMiddleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
