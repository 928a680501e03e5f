package handler

import (
	"time"

	"attrisk/internal/history"
	"attrisk/internal/scoring"
)

// PredictResponse is the wire shape of a completed prediction.
type PredictResponse struct {
	Prediction  int     `json:"prediction"`
	Probability float64 `json:"probability"`
	Message     string  `json:"message"`
}

func newPredictResponse(result scoring.ScoreResult) PredictResponse {
	return PredictResponse{
		Prediction:  result.Prediction,
		Probability: result.Probability,
		Message:     result.Message(),
	}
}

// HistoryEntry is one persisted prediction, newest first in the listing.
type HistoryEntry struct {
	ID          string                 `json:"id"`
	CreatedAt   time.Time              `json:"date_prediction"`
	Input       scoring.EmployeeRecord `json:"input"`
	Prediction  int                    `json:"prediction"`
	Probability float64                `json:"probability"`
}

// HistoryResponse wraps the listing so the shape can grow without breaking
// clients.
type HistoryResponse struct {
	Records []HistoryEntry `json:"records"`
}

func newHistoryResponse(records []*history.Record) HistoryResponse {
	entries := make([]HistoryEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, HistoryEntry{
			ID:          record.ID.String(),
			CreatedAt:   record.CreatedAt,
			Input:       record.Input,
			Prediction:  record.Result.Prediction,
			Probability: record.Result.Probability,
		})
	}
	return HistoryResponse{Records: entries}
}
