package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/requestdata"
	"github.com/mindscribe/mindscribe-backend/internal/services"
)

type TherapistHandler struct {
	therapistService services.TherapistService
}

func NewTherapistHandler(therapistService services.TherapistService) *TherapistHandler {
	return &TherapistHandler{therapistService: therapistService}
}

func (th *TherapistHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.TherapistID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	therapist, err := th.therapistService.GetTherapist(c.Request.Context(), rd.TherapistID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"therapist": therapist})
}
