package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/services"
)

type NoteHandler struct {
	log         *logger.Logger
	noteService services.NoteService
}

func NewNoteHandler(log *logger.Logger, noteService services.NoteService) *NoteHandler {
	return &NoteHandler{
		log:         log.With("handler", "NoteHandler"),
		noteService: noteService,
	}
}

func (nh *NoteHandler) Create(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	var req struct {
		NoteText string `json:"note_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	note, err := nh.noteService.Annotate(c.Request.Context(), therapistID, patientID, req.NoteText)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"note": note})
}

func (nh *NoteHandler) List(c *gin.Context) {
	therapistID, ok := therapistFromContext(c)
	if !ok {
		return
	}
	patientID, ok := patientIDFromPath(c)
	if !ok {
		return
	}
	notes, err := nh.noteService.ListNotes(c.Request.Context(), therapistID, patientID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"notes": notes})
}
