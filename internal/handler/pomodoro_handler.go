package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomosync/internal/service"
)

type PomodoroHandler struct {
	pomodoroService *service.PomodoroService
}

type switchModeRequest struct {
	Mode string `json:"mode"`
}

type updateSettingsRequest struct {
	AutoStartNext     *bool `json:"autoStartNext"`
	MusicDuringBreak  *bool `json:"musicDuringBreak"`
	PauseMusicOnPause *bool `json:"pauseMusicOnPause"`
}

func NewPomodoroHandler(pomodoroService *service.PomodoroService) *PomodoroHandler {
	return &PomodoroHandler{pomodoroService: pomodoroService}
}

func (h *PomodoroHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.pomodoroService.GetState()})
}

func (h *PomodoroHandler) Toggle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.pomodoroService.Toggle()})
}

func (h *PomodoroHandler) Start(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.pomodoroService.Start()})
}

func (h *PomodoroHandler) Pause(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.pomodoroService.Pause()})
}

func (h *PomodoroHandler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.pomodoroService.Reset()})
}

func (h *PomodoroHandler) Skip(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.pomodoroService.Skip()})
}

func (h *PomodoroHandler) SwitchMode(c *gin.Context) {
	var req switchModeRequest
	if !bindJSON(c, &req) {
		return
	}

	state, apiErr := h.pomodoroService.SwitchMode(req.Mode)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": state})
}

func (h *PomodoroHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.pomodoroService.GetState().Options})
}

// UpdateSettings changes only the toggles present in the body.
func (h *PomodoroHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	options := h.pomodoroService.GetState().Options
	applyToggle(&options.AutoStartNext, req.AutoStartNext)
	applyToggle(&options.MusicDuringBreak, req.MusicDuringBreak)
	applyToggle(&options.PauseMusicOnPause, req.PauseMusicOnPause)

	state := h.pomodoroService.UpdateOptions(options)
	c.JSON(http.StatusOK, gin.H{"settings": state.Options})
}

func (h *PomodoroHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.pomodoroService.Stats()})
}

func (h *PomodoroHandler) Save(c *gin.Context) {
	if apiErr := h.pomodoroService.Save(c.Request.Context()); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func applyToggle(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}

