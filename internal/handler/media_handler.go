package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pomosync/internal/service"
)

type MediaHandler struct {
	pomodoroService *service.PomodoroService
}

type setSourceRequest struct {
	URL string `json:"url"`
}

func NewMediaHandler(pomodoroService *service.PomodoroService) *MediaHandler {
	return &MediaHandler{pomodoroService: pomodoroService}
}

func (h *MediaHandler) SetSource(c *gin.Context) {
	var req setSourceRequest
	if !bindJSON(c, &req) {
		return
	}

	state, apiErr := h.pomodoroService.SetSource(c.Param("phase"), req.URL)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sources": state.Sources, "media": state.Media})
}

// Get is polled by the embedded player to follow the desired state.
func (h *MediaHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"media": h.pomodoroService.Media()})
}

func (h *MediaHandler) Ready(c *gin.Context) {
	h.respond(c, h.pomodoroService.MediaReady())
}

func (h *MediaHandler) Loaded(c *gin.Context) {
	h.respond(c, h.pomodoroService.MediaLoaded())
}

func (h *MediaHandler) Play(c *gin.Context) {
	h.respond(c, h.pomodoroService.MediaPlay())
}

func (h *MediaHandler) Pause(c *gin.Context) {
	h.respond(c, h.pomodoroService.MediaPause())
}

func (h *MediaHandler) ToggleMute(c *gin.Context) {
	h.respond(c, h.pomodoroService.ToggleMute())
}

func (h *MediaHandler) respond(c *gin.Context, state *service.StateView) {
	c.JSON(http.StatusOK, gin.H{"media": state.Media})
}
