package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgboard/internal/model"
	"orgboard/internal/service"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// CreateUser handles POST /users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req service.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.admin.CreateUser(c.Request.Context(), req, callerID)
	c.JSON(resp.StatusCode, resp)
}

// UpdateUser handles PUT /users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.NewUser
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.admin.UpdateUser(c.Request.Context(), userID, req, callerID)
	c.JSON(resp.StatusCode, resp)
}

// DeleteUser handles DELETE /users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.admin.DeleteUser(c.Request.Context(), userID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// GetUser handles GET /users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.admin.GetUser(c.Request.Context(), userID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// ListUsers handles GET /users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	resp := h.admin.GetAllUsers(c.Request.Context(), callerID)
	c.JSON(resp.StatusCode, resp)
}

// UpdateOrganization handles PUT /organization
func (h *AdminHandler) UpdateOrganization(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ID   int    `json:"id" binding:"required"`
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.admin.UpdateOrganization(c.Request.Context(), &model.Organization{ID: req.ID, Name: req.Name}, callerID)
	c.JSON(resp.StatusCode, resp)
}
