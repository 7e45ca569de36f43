package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgboard/internal/model"
	"orgboard/internal/service"
)

type BoardHandler struct {
	boards *service.BoardService
}

func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// Create handles POST /boards. The board lands on the caller's team.
func (h *BoardHandler) Create(c *gin.Context) {
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

	resp := h.boards.CreateBoard(c.Request.Context(), req.Name, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Get handles GET /boards/:id
func (h *BoardHandler) Get(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.boards.GetBoard(c.Request.Context(), boardID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// ListForTeam handles GET /teams/:id/boards
func (h *BoardHandler) ListForTeam(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.boards.GetTeamBoards(c.Request.Context(), teamID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Rename handles PUT /boards/:id
func (h *BoardHandler) Rename(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
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

	resp := h.boards.UpdateBoard(c.Request.Context(), &model.Board{ID: boardID, Name: req.Name}, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Delete handles DELETE /boards/:id. Tasks and their assignments go
// with the board.
func (h *BoardHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.boards.DeleteBoard(c.Request.Context(), boardID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Tasks handles GET /boards/:id/tasks
func (h *BoardHandler) Tasks(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.boards.GetBoardTasks(c.Request.Context(), boardID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// CreateTask handles POST /boards/:id/tasks
func (h *BoardHandler) CreateTask(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.NewTask
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp := h.boards.CreateTask(c.Request.Context(), req, boardID, callerID)
	c.JSON(resp.StatusCode, resp)
}
