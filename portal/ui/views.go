package ui

import (
	"airnav/groundcheck/internal/groundcheck"
	"airnav/groundcheck/internal/models/dtos"
)

// readingCell is one numeric input of the entry form.
type readingCell struct {
	Name  string
	Value string
}

// formRow is one of the 17 measurement rows as the form renders it.
type formRow struct {
	Position groundcheck.Position
	TX1      []readingCell
	TX2      []readingCell
}

// groundCheckForm is the view model behind templates/llz/ground_check.html.
type groundCheckForm struct {
	Action      string
	Location    string
	Date        string
	Technicians []string
	SignOffs    []string
	Notes       string
	Rows        []formRow
}

// newGroundCheckForm turns an input back into form values, so a rejected
// submission and a stored record both render with the same field names.
func newGroundCheckForm(action string, in dtos.GroundCheckInput) groundCheckForm {
	form := groundCheckForm{
		Action:      action,
		Location:    in.Location,
		Date:        in.Date,
		Technicians: atLeastOne(in.Technicians),
		SignOffs:    atLeastOne(in.SignOffs),
		Notes:       in.Notes,
		Rows:        make([]formRow, 0, groundcheck.RowCount),
	}

	half := groundcheck.ReadingsPerRow / 2
	for _, pos := range groundcheck.Positions() {
		values := in.Readings[pos.Index].Values()
		row := formRow{
			Position: pos,
			TX1:      make([]readingCell, 0, half),
			TX2:      make([]readingCell, 0, half),
		}
		for col, v := range values {
			cell := readingCell{
				Name:  groundcheck.FieldName(pos.Index, col),
				Value: groundcheck.FormatReading(v),
			}
			if col < half {
				row.TX1 = append(row.TX1, cell)
			} else {
				row.TX2 = append(row.TX2, cell)
			}
		}
		form.Rows = append(form.Rows, row)
	}

	return form
}

// atLeastOne keeps one empty input on screen for an empty name list.
func atLeastOne(names []string) []string {
	if len(names) == 0 {
		return []string{""}
	}
	return names
}

// detailRow is one read-only row of the detail page.
type detailRow struct {
	Frequency string
	Distance  string
	Angle     string
	Values    []string
}

func newDetailRows(resp dtos.GroundCheckResponse) []detailRow {
	rows := make([]detailRow, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		values := r.Readings.Values()
		row := detailRow{
			Frequency: r.Frequency,
			Distance:  r.Distance,
			Angle:     r.Angle,
			Values:    make([]string, 0, len(values)),
		}
		for _, v := range values {
			row.Values = append(row.Values, groundcheck.FormatReading(v))
		}
		rows = append(rows, row)
	}
	return rows
}
