package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"discussion_board/internal/apperr"
	"discussion_board/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgThreadDeleted = "discussion thread deleted"

	errNotAuthenticated = "not authenticated"
)

// threadID parses the :id path parameter.
func threadID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid thread id")
	}
	return id, nil
}

// @Summary      List discussion threads
// @Description  Optionally filters by a case-sensitive title substring (max 20 chars).
// @Tags         discussion_threads
// @Produce      json
// @Param        search_title  query  string  false  "Title substring"
// @Success      200  {array}   models.DiscussionThread
// @Failure      422  {object}  map[string]string
// @Router       /discussion_threads/ [get]
func (h *Handler) listThreads(c *gin.Context) {
	threads, err := h.services.Threads.List(c.Request.Context(), c.Query("search_title"))
	if err != nil {
		h.respondError(c, "threads_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

// @Summary      Create discussion thread
// @Description  Multipart form with title, content and an optional image attachment.
// @Tags         discussion_threads
// @Accept       multipart/form-data
// @Produce      json
// @Param        title    formData  string  true   "Title"
// @Param        content  formData  string  true   "Content"
// @Param        image    formData  file    false  "Image attachment"
// @Success      200  {object}  models.DiscussionThread
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /discussion_threads/create/ [post]
// @Security     BearerAuth
func (h *Handler) createThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}

	in := service.CreateThreadInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	// Absent file part or a non-multipart body means no attachment; anything
	// else is a broken upload and must not fall through as "no image".
	fileHeader, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		h.respondError(c, "thread_image_read_failed", apperr.Wrap(apperr.KindValidation, "cannot read uploaded file", err))
		return
	case fileHeader != nil:
		f, err := fileHeader.Open()
		if err != nil {
			h.respondError(c, "thread_image_open_failed", apperr.Wrap(apperr.KindValidation, "cannot read uploaded file", err))
			return
		}
		defer f.Close()
		in.Image = &service.ImageUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        f,
		}
	}

	thread, err := h.services.Threads.Create(c.Request.Context(), user, in)
	if err != nil {
		h.respondError(c, "thread_create_failed", err, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// @Summary      Read discussion thread
// @Tags         discussion_threads
// @Produce      json
// @Param        id   path      int  true  "Thread ID"
// @Success      200  {object}  models.DiscussionThread
// @Failure      404  {object}  map[string]string
// @Router       /discussion_threads/{id}/ [get]
func (h *Handler) readThread(c *gin.Context) {
	id, err := threadID(c)
	if err != nil {
		h.respondError(c, "thread_read_bad_id", err)
		return
	}
	thread, err := h.services.Threads.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, "thread_read_failed", err, "thread_id", id)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// @Summary      Update discussion thread content
// @Tags         discussion_threads
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id       path      int     true  "Thread ID"
// @Param        content  formData  string  true  "New content"
// @Success      200  {object}  models.DiscussionThread
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /discussion_threads/{id}/ [patch]
// @Security     BearerAuth
func (h *Handler) updateThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}
	id, err := threadID(c)
	if err != nil {
		h.respondError(c, "thread_update_bad_id", err)
		return
	}

	thread, err := h.services.Threads.Update(c.Request.Context(), id, user, c.PostForm("content"))
	if err != nil {
		h.respondError(c, "thread_update_failed", err, "thread_id", id, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// @Summary      Delete discussion thread
// @Tags         discussion_threads
// @Produce      json
// @Param        id   path      int  true  "Thread ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /discussion_threads/{id}/ [delete]
// @Security     BearerAuth
func (h *Handler) deleteThread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}
	id, err := threadID(c)
	if err != nil {
		h.respondError(c, "thread_delete_bad_id", err)
		return
	}

	if err := h.services.Threads.Delete(c.Request.Context(), id, user); err != nil {
		h.respondError(c, "thread_delete_failed", err, "thread_id", id, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgThreadDeleted})
}

// @Summary      List caller's discussion threads
// @Tags         user
// @Produce      json
// @Success      200  {array}   models.DiscussionThread
// @Failure      401  {object}  map[string]string
// @Router       /user/discussion_threads/ [get]
// @Security     BearerAuth
func (h *Handler) myThreads(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}
	threads, err := h.services.Threads.ListByOwner(c.Request.Context(), user)
	if err != nil {
		h.respondError(c, "user_threads_failed", err, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, threads)
}
