package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/middleware"
	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/services"
)

type ForumHandler struct {
	Forum *services.ForumService
}

func (h *ForumHandler) List(c *gin.Context) {
	filter := models.ThreadFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	var ok bool
	if filter.Skip, ok = queryInt(c, "skip"); !ok {
		return
	}
	if filter.Limit, ok = queryInt(c, "limit"); !ok {
		return
	}

	threads, err := h.Forum.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Thread not found")
		return
	}
	c.JSON(http.StatusOK, threads)
}

func (h *ForumHandler) Create(c *gin.Context) {
	var req models.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := h.Forum.Create(c.Request.Context(), middleware.GetUsername(c), req)
	if err != nil {
		respondError(c, err, "Thread not found")
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func (h *ForumHandler) Get(c *gin.Context) {
	thread, err := h.Forum.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Thread not found")
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *ForumHandler) Delete(c *gin.Context) {
	if err := h.Forum.Delete(c.Request.Context(), c.Param("id"), middleware.GetUsername(c)); err != nil {
		respondError(c, err, "Thread not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ForumHandler) Reply(c *gin.Context) {
	var req models.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.Forum.Reply(c.Request.Context(), c.Param("id"), middleware.GetUsername(c), req)
	if err != nil {
		respondError(c, err, "Thread not found")
		return
	}
	c.JSON(http.StatusCreated, reply)
}
