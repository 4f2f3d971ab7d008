package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateApplicationRequest struct {
	State string `json:"state" binding:"required,jobstatus"`
}

func (h *Handler) applyForJob(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.applications.Apply(c.Request.Context(), c.Param("username"), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": id})
}

func (h *Handler) updateApplicationStatus(c *gin.Context) {
	var req updateApplicationRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	id, err := parseID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	status, err := h.applications.UpdateStatus(c.Request.Context(), c.Param("username"), id, req.State)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": status})
}

func (h *Handler) listApplications(c *gin.Context) {
	applied, err := h.applications.ListForUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]ApplicationResponse, len(applied))
	for i := range applied {
		resp[i] = applicationToResponse(applied[i])
	}
	c.JSON(http.StatusOK, gin.H{"apps": resp})
}
