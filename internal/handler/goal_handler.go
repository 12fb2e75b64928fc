package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomosync/internal/service"
)

type GoalHandler struct {
	pomodoroService *service.PomodoroService
}

type addGoalRequest struct {
	Title            string `json:"title"`
	PlannedPomodoros int    `json:"plannedPomodoros"`
}

type setCheckedRequest struct {
	Checked bool `json:"checked"`
}

func NewGoalHandler(pomodoroService *service.PomodoroService) *GoalHandler {
	return &GoalHandler{pomodoroService: pomodoroService}
}

func (h *GoalHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goals": h.pomodoroService.GetState().Goals})
}

// Add accepts a blank title without error; the list is simply unchanged.
func (h *GoalHandler) Add(c *gin.Context) {
	req := addGoalRequest{PlannedPomodoros: 1}
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, h.pomodoroService.AddGoal(req.Title, req.PlannedPomodoros))
}

func (h *GoalHandler) Toggle(c *gin.Context) {
	h.respond(c, h.pomodoroService.ToggleGoal(c.Param("id")))
}

func (h *GoalHandler) SetChecked(c *gin.Context) {
	var req setCheckedRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c, h.pomodoroService.SetGoalChecked(c.Param("id"), req.Checked))
}

func (h *GoalHandler) Increment(c *gin.Context) {
	h.respond(c, h.pomodoroService.IncrementGoal(c.Param("id")))
}

func (h *GoalHandler) Decrement(c *gin.Context) {
	h.respond(c, h.pomodoroService.DecrementGoal(c.Param("id")))
}

func (h *GoalHandler) Delete(c *gin.Context) {
	h.respond(c, h.pomodoroService.DeleteGoal(c.Param("id")))
}

func (h *GoalHandler) respond(c *gin.Context, state *service.StateView) {
	c.JSON(http.StatusOK, gin.H{"goals": state.Goals, "stats": state.Stats})
}
