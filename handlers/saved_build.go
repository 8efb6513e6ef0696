package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/pcease-api/middleware"
	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/services"
)

type SavedBuildHandler struct {
	Builds *services.SavedBuildService
}

func (h *SavedBuildHandler) List(c *gin.Context) {
	builds, err := h.Builds.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "Build not found")
		return
	}
	c.JSON(http.StatusOK, builds)
}

func (h *SavedBuildHandler) Create(c *gin.Context) {
	var req models.SavedBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrMissingBuild.Error()})
		return
	}

	build, err := h.Builds.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err, "Build not found")
		return
	}
	c.JSON(http.StatusCreated, build)
}

func (h *SavedBuildHandler) Update(c *gin.Context) {
	var req models.SavedBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrMissingBuild.Error()})
		return
	}

	build, err := h.Builds.Update(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, err, "Build not found")
		return
	}
	c.JSON(http.StatusOK, build)
}

func (h *SavedBuildHandler) Delete(c *gin.Context) {
	if err := h.Builds.Delete(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		respondError(c, err, "Build not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Build deleted"})
}
