package handlers

import (
	"net/http"

	"discussion_board/internal/apperr"

	"github.com/gin-gonic/gin"
)

const (
	msgUserCreated = "new user created"

	errMissingCredentials = "username and password are required"
)

// respondError maps a taxonomy error to its stable HTTP status. Untyped
// errors become 500 with a generic message; the cause is only logged. Client
// failures log at info, server-side failures at error.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	kind := apperr.KindOf(err)
	if h.log != nil {
		fields := append([]interface{}{"err", err, "kind", kind.String()}, kv...)
		if kind == apperr.KindUnknown {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	if kind == apperr.KindUnknown {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(apperr.HTTPStatus(kind), gin.H{"error": err.Error()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Issue access token
// @Description  Validates username/password form fields and returns a bearer token.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  map[string]string  "access_token, token_type"
// @Failure      401  {object}  map[string]string
// @Router       /token/ [post]
func (h *Handler) issueToken(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMissingCredentials})
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), username, password)
	if err != nil {
		h.respondError(c, "token_issue_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// @Summary      Register user
// @Tags         user
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username          formData  string  true  "Username (max 50 chars)"
// @Param        password          formData  string  true  "Password"
// @Param        confirm_password  formData  string  true  "Password confirmation"
// @Success      200  {object}  map[string]interface{}  "message, id"
// @Failure      422  {object}  map[string]string
// @Router       /user/create/ [post]
func (h *Handler) createUser(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	id, err := h.services.SignUp(c.Request.Context(), username, password, confirm)
	if err != nil {
		h.respondError(c, "user_create_failed", err, "username", username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgUserCreated, "id": id})
}
