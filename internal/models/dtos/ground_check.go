package dtos

import (
	"time"

	"airnav/groundcheck/internal/groundcheck"
	gormModels "airnav/groundcheck/internal/models/gorm"
)

// GroundCheckInput carries one submitted sheet. Date is kept as the raw
// submitted text so a malformed value can be reported back to the user.
type GroundCheckInput struct {
	Location    string
	Date        string `validate:"required,datetime=2006-01-02"`
	Technicians []string
	SignOffs    []string
	Notes       string
	Readings    [groundcheck.RowCount]groundcheck.Readings
}

// GroundCheckSummary is one line of the records list.
type GroundCheckSummary struct {
	ID             uint      `json:"id"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	Technicians    string    `json:"technicians"`
	SignOffs       string    `json:"sign_offs"`
	Notes          string    `json:"notes,omitempty"`
	RowCount       int       `json:"row_count"`
	FilledReadings int       `json:"filled_readings"`
}

// GroundCheckRowResponse is one measurement row in API responses.
type GroundCheckRowResponse struct {
	Position  int    `json:"position"`
	Frequency string `json:"frequency"`
	Distance  string `json:"distance"`
	Angle     string `json:"angle"`
	groundcheck.Readings
}

// GroundCheckResponse is a full sheet in API responses.
type GroundCheckResponse struct {
	ID          uint                     `json:"id"`
	Location    string                   `json:"location"`
	Date        string                   `json:"date"`
	Technicians []string                 `json:"technicians"`
	SignOffs    []string                 `json:"sign_offs"`
	Notes       string                   `json:"notes,omitempty"`
	Rows        []GroundCheckRowResponse `json:"rows"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewGroundCheckResponse maps a stored sheet onto its API shape.
func NewGroundCheckResponse(gc *gormModels.GroundCheck) GroundCheckResponse {
	resp := GroundCheckResponse{
		ID:          gc.ID,
		Location:    gc.Location,
		Date:        gc.Date.Format("2006-01-02"),
		Technicians: gc.TechnicianList(),
		SignOffs:    gc.SignOffList(),
		Notes:       gc.Notes,
		Rows:        make([]GroundCheckRowResponse, 0, len(gc.Rows)),
		CreatedAt:   gc.CreatedAt,
		UpdatedAt:   gc.UpdatedAt,
	}

	for _, row := range gc.Rows {
		resp.Rows = append(resp.Rows, GroundCheckRowResponse{
			Position:  row.Position,
			Frequency: row.Frequency,
			Distance:  row.Distance,
			Angle:     row.Angle,
			Readings:  row.Readings(),
		})
	}

	return resp
}

// NewGroundCheckInput builds the input that would reproduce a stored sheet.
func NewGroundCheckInput(gc *gormModels.GroundCheck) GroundCheckInput {
	return GroundCheckInput{
		Location:    gc.Location,
		Date:        gc.Date.Format("2006-01-02"),
		Technicians: gc.TechnicianList(),
		SignOffs:    gc.SignOffList(),
		Notes:       gc.Notes,
		Readings:    gc.Sheet(),
	}
}
