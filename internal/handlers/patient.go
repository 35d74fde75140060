package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/requestdata"
	"github.com/mindscribe/mindscribe-backend/internal/services"
)

type PatientHandler struct {
	log            *logger.Logger
	patientService services.PatientService
}

func NewPatientHandler(log *logger.Logger, patientService services.PatientService) *PatientHandler {
	return &PatientHandler{
		log:            log.With("handler", "PatientHandler"),
		patientService: patientService,
	}
}

func therapistFromContext(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.TherapistID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return uuid.Nil, false
	}
	return rd.TherapistID, true
}

func patientIDFromPath(c *gin.Context) (uuid.UUID, bool) {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_patient_id", err)
		return uuid.Nil, false
	}
	return patientID, true
}

func (ph *PatientHandler) Create(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	var req services.PatientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	patient, err := ph.patientService.CreatePatient(c.Request.Context(), therapistID, req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": patient})
}

func (ph *PatientHandler) List(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patients, err := ph.patientService.ListPatients(c.Request.Context(), therapistID)
	if err != nil {
		ph.log.Error("ListPatients failed", "error", err, "therapist_id", therapistID)
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"patients": patients})
}

func (ph *PatientHandler) Get(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	patient, err := ph.patientService.GetPatient(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": patient})
}

func (ph *PatientHandler) Update(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	var req services.PatientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	patient, err := ph.patientService.UpdatePatient(c.Request.Context(), therapistID, patientID, req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"patient": patient})
}

func (ph *PatientHandler) Delete(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	if err := ph.patientService.DeletePatient(c.Request.Context(), therapistID, patientID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
