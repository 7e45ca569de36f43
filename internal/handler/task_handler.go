package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orgboard/internal/model"
	"orgboard/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Get handles GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.tasks.GetTask(c.Request.Context(), taskID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Update handles PUT /tasks/:id. Status is not writable here; the
// complete and confirm endpoints own transitions.
func (h *TaskHandler) Update(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		BoardID     int      `json:"board_id" binding:"required"`
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Estimation  *float64 `json:"estimation,omitempty"`
		Headcount   *float64 `json:"headcount,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task := &model.Task{
		ID:          taskID,
		BoardID:     req.BoardID,
		Title:       req.Title,
		Description: req.Description,
		Estimation:  req.Estimation,
		Headcount:   req.Headcount,
	}
	resp := h.tasks.UpdateTask(c.Request.Context(), task, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.tasks.DeleteTask(c.Request.Context(), taskID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Assign handles POST /tasks/:id/assign/:userId
func (h *TaskHandler) Assign(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	assigneeID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	resp := h.tasks.AssignTask(c.Request.Context(), taskID, callerID, assigneeID)
	c.JSON(resp.StatusCode, resp)
}

// Complete handles POST /tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.tasks.MarkTaskAsComplete(c.Request.Context(), taskID, callerID)
	c.JSON(resp.StatusCode, resp)
}

// Confirm handles POST /tasks/:id/confirm
func (h *TaskHandler) Confirm(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp := h.tasks.ConfirmTaskCompletion(c.Request.Context(), taskID, callerID)
	c.JSON(resp.StatusCode, resp)
}
