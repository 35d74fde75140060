package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/mindscribe/mindscribe-backend/internal/emotion"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/types"
)

// ExportService flattens annotated notes into the row and document
// structures the export collaborators consume. Both projections are pure:
// they read already-computed data and never touch storage. File formats
// and filenames are the collaborator's concern, except for the CSV byte
// rendering offered for the download endpoint.
type ExportService interface {
	Rows(patient *types.Patient, notes []*types.SessionNote) ([]ExportRow, error)
	Document(patient *types.Patient, notes []*types.SessionNote) (*ReportDocument, error)
	CSV(rows []ExportRow) ([]byte, error)
}

// ExportRow is one flat record per note. Scores carries one entry per
// emotion label and renders as a "Score: <label>" column.
type ExportRow struct {
	Date            time.Time        `json:"date"`
	NoteText        string           `json:"note_text"`
	DominantEmotion string           `json:"dominant_emotion"`
	Scores          emotion.ScoreMap `json:"scores"`
}

// ReportDocument is the sectioned, human-readable report structure.
type ReportDocument struct {
	PatientName  string          `json:"patient_name"`
	Age          *int            `json:"age,omitempty"`
	Gender       string          `json:"gender,omitempty"`
	Contact      string          `json:"contact,omitempty"`
	PatientSince time.Time       `json:"patient_since"`
	Sections     []ReportSection `json:"sections"`
}

type ReportSection struct {
	Date            time.Time   `json:"date"`
	NoteText        string      `json:"note_text"`
	DominantEmotion string      `json:"dominant_emotion"`
	DominantScore   string      `json:"dominant_score"`
	Breakdown       []ScoreLine `json:"breakdown"`
}

// ScoreLine is one formatted entry of a note's score breakdown.
type ScoreLine struct {
	Label string `json:"label"`
	Score string `json:"score"`
}

type exportService struct {
	log *logger.Logger
}

func NewExportService(baseLog *logger.Logger) ExportService {
	return &exportService{log: baseLog.With("service", "ExportService")}
}

func (es *exportService) Rows(patient *types.Patient, notes []*types.SessionNote) ([]ExportRow, error) {
	rows := make([]ExportRow, 0, len(notes))
	for _, note := range notes {
		scores, err := note.Scores()
		if err != nil {
			return nil, err
		}
		dominant, _, err := emotion.Dominant(scores)
		if err != nil {
			return nil, err
		}
		rows = append(rows, ExportRow{
			Date:            note.CreatedAt,
			NoteText:        note.NoteText,
			DominantEmotion: dominant,
			Scores:          scores,
		})
	}
	return rows, nil
}

func (es *exportService) Document(patient *types.Patient, notes []*types.SessionNote) (*ReportDocument, error) {
	doc := &ReportDocument{
		PatientName:  patient.Name,
		Age:          patient.Age,
		Gender:       patient.Gender,
		Contact:      patient.Contact,
		PatientSince: patient.CreatedAt,
		Sections:     make([]ReportSection, 0, len(notes)),
	}
	for _, note := range notes {
		scores, err := note.Scores()
		if err != nil {
			return nil, err
		}
		dominant, dominantScore, err := emotion.Dominant(scores)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, ReportSection{
			Date:            note.CreatedAt,
			NoteText:        note.NoteText,
			DominantEmotion: dominant,
			DominantScore:   fmt.Sprintf("%.2f", dominantScore),
			Breakdown:       breakdownDescending(scores),
		})
	}
	return doc, nil
}

// breakdownDescending lists every score, highest first; equal scores order
// alphabetically so the output is stable.
func breakdownDescending(scores emotion.ScoreMap) []ScoreLine {
	labels := make([]string, 0, len(scores))
	for label := range scores {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if scores[labels[i]] == scores[labels[j]] {
			return labels[i] < labels[j]
		}
		return scores[labels[i]] > scores[labels[j]]
	})
	lines := make([]ScoreLine, 0, len(labels))
	for _, label := range labels {
		lines = append(lines, ScoreLine{Label: label, Score: fmt.Sprintf("%.2f", scores[label])})
	}
	return lines
}

func (es *exportService) CSV(rows []ExportRow) ([]byte, error) {
	// Column set is the union of label vocabularies across all rows, in
	// case the classifier's vocabulary varied over time.
	labelSet := map[string]struct{}{}
	for _, row := range rows {
		for label := range row.Scores {
			labelSet[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	header := []string{"Date", "Note", "Dominant Emotion"}
	for _, label := range labels {
		header = append(header, "Score: "+label)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02 15:04:05"),
			row.NoteText,
			row.DominantEmotion,
		}
		for _, label := range labels {
			score, ok := row.Scores[label]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(score, 'f', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
