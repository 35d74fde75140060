package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/services"
)

type TrendsHandler struct {
	log           *logger.Logger
	trendsService services.TrendsService
}

func NewTrendsHandler(log *logger.Logger, trendsService services.TrendsService) *TrendsHandler {
	return &TrendsHandler{
		log:           log.With("handler", "TrendsHandler"),
		trendsService: trendsService,
	}
}

func (th *TrendsHandler) TimeSeries(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	series, err := th.trendsService.TimeSeries(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"series": series, "labels": series.Labels()})
}

func (th *TrendsHandler) DominantCounts(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	counts, err := th.trendsService.DominantCounts(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"counts": counts})
}

func (th *TrendsHandler) Summary(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	label := c.Query("emotion")
	if label == "" {
		RespondError(c, http.StatusBadRequest, "missing_emotion", nil)
		return
	}
	summary, err := th.trendsService.Summary(c.Request.Context(), therapistID, patientID, label)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"emotion": label, "summary": summary})
}

func (th *TrendsHandler) Trend(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	label := c.Query("emotion")
	if label == "" {
		RespondError(c, http.StatusBadRequest, "missing_emotion", nil)
		return
	}
	direction, err := th.trendsService.Trend(c.Request.Context(), therapistID, patientID, label)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"emotion": label, "direction": direction})
}
