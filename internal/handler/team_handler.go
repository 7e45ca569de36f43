package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgboard/internal/model"
	"orgboard/internal/service"
)

type TeamHandler struct {
	teams *service.TeamService
}

func NewTeamHandler(teams *service.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// Create handles POST /teams
func (h *TeamHandler) Create(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.teams.CreateTeam(c.Request.Context(), req.Name, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Rename handles PUT /teams/:id
func (h *TeamHandler) Rename(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.teams.UpdateTeamName(c.Request.Context(), &model.Team{ID: teamID, Name: req.Name}, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Delete handles DELETE /teams/:id
func (h *TeamHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.teams.DeleteTeam(c.Request.Context(), teamID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Members handles GET /teams/:id/members
func (h *TeamHandler) Members(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.teams.GetTeamMembers(c.Request.Context(), teamID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// AssignMember handles POST /teams/:id/members/:userId
func (h *TeamHandler) AssignMember(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	resp := h.teams.AssignUserToTeam(c.Request.Context(), teamID, userID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// RemoveMember handles DELETE /teams/:id/members/:userId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	resp := h.teams.RemoveUserFromTeam(c.Request.Context(), teamID, userID, callerID)
	c.JSON(resp.StatusCode, resp)
}
