package groundcheck

import "strconv"

// Band is the modulation frequency a measurement row was taken on.
type Band string

const (
	Band90Hz   Band = "90 Hz"
	Band150Hz  Band = "150 Hz"
	BandCenter Band = "Center"
)

const (
	// RowCount is the number of measurement rows every ground check carries.
	RowCount = 17
	// CenterIndex is the position of the single center-line row.
	CenterIndex = 8
	// ReadingsPerRow is the number of transmitter readings per row (6 per TX).
	ReadingsPerRow = 12
)

// Position describes one fixed row of the ground-check sheet. Distance and
// Angle are opaque labels copied verbatim onto the stored row.
type Position struct {
	Index    int
	Band     Band
	Distance string
	Angle    string
}

// positions is ordered outer-to-inner on the 90 Hz side, then the center
// line, then inner-to-outer on the 150 Hz side.
var positions = [RowCount]Position{
	{0, Band90Hz, "210.1", "35°"},
	{1, Band90Hz, "173.2", "30°"},
	{2, Band90Hz, "139.9", "25°"},
	{3, Band90Hz, "109.2", "20°"},
	{4, Band90Hz, "80.4", "15°"},
	{5, Band90Hz, "52.9", "10°"},
	{6, Band90Hz, "26.2", "5°"},
	{7, Band90Hz, "9.7", "1.85°"},
	{8, BandCenter, "0", "0°"},
	{9, Band150Hz, "9.7", "1.85°"},
	{10, Band150Hz, "26.2", "5°"},
	{11, Band150Hz, "52.9", "10°"},
	{12, Band150Hz, "80.4", "15°"},
	{13, Band150Hz, "109.2", "20°"},
	{14, Band150Hz, "139.9", "25°"},
	{15, Band150Hz, "173.2", "30°"},
	{16, Band150Hz, "210.1", "35°"},
}

// Positions returns a copy of the position table in sheet order.
func Positions() []Position {
	out := make([]Position, RowCount)
	copy(out, positions[:])
	return out
}

// PositionAt returns the fixed position for idx.
func PositionAt(idx int) (Position, bool) {
	if idx < 0 || idx >= RowCount {
		return Position{}, false
	}
	return positions[idx], true
}

// FieldPrefix returns the form field prefix used by the row at idx:
// hz90_<idx>_ for the 90 Hz side, center_0_ for the center row and
// hz150_<idx-9>_ for the 150 Hz side. Out of range indexes yield "".
func FieldPrefix(idx int) string {
	switch {
	case idx >= 0 && idx < CenterIndex:
		return "hz90_" + strconv.Itoa(idx) + "_"
	case idx == CenterIndex:
		return "center_0_"
	case idx > CenterIndex && idx < RowCount:
		return "hz150_" + strconv.Itoa(idx-CenterIndex-1) + "_"
	}
	return ""
}

// FieldName returns the form field holding reading col (0..11) of row idx.
func FieldName(idx, col int) string {
	return FieldPrefix(idx) + strconv.Itoa(col)
}
