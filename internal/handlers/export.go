package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/services"
)

type ExportHandler struct {
	log            *logger.Logger
	patientService services.PatientService
	noteService    services.NoteService
	exportService  services.ExportService
}

func NewExportHandler(
	log *logger.Logger,
	patientService services.PatientService,
	noteService services.NoteService,
	exportService services.ExportService,
) *ExportHandler {
	return &ExportHandler{
		log:            log.With("handler", "ExportHandler"),
		patientService: patientService,
		noteService:    noteService,
		exportService:  exportService,
	}
}

func (eh *ExportHandler) CSV(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	patient, err := eh.patientService.GetPatient(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	notes, err := eh.noteService.ListNotes(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	rows, err := eh.exportService.Rows(patient, notes)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	data, err := eh.exportService.CSV(rows)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	filename := fmt.Sprintf("%s_records_%s.csv", safeFilename(patient.Name), time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

func (eh *ExportHandler) Report(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	patient, err := eh.patientService.GetPatient(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	notes, err := eh.noteService.ListNotes(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	doc, err := eh.exportService.Document(patient, notes)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"report": doc})
}

func safeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
