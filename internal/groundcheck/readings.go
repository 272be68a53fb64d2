package groundcheck

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Channel holds the six readings taken from one transmitter chain.
// A nil field means no reading was taken.
type Channel struct {
	DDMPercent   *float64 `json:"ddm_percent"`
	DDMMicroAmps *float64 `json:"ddm_ua"`
	Sum          *float64 `json:"sum"`
	Mod90        *float64 `json:"mod_90"`
	Mod150       *float64 `json:"mod_150"`
	RF           *float64 `json:"rf"`
}

// Readings is the full set of values for one row, TX1 then TX2.
type Readings struct {
	TX1 Channel `json:"tx1"`
	TX2 Channel `json:"tx2"`
}

// Values flattens r into column order, matching the <prefix><0..11> fields.
func (r Readings) Values() [ReadingsPerRow]*float64 {
	return [ReadingsPerRow]*float64{
		r.TX1.DDMPercent, r.TX1.DDMMicroAmps, r.TX1.Sum, r.TX1.Mod90, r.TX1.Mod150, r.TX1.RF,
		r.TX2.DDMPercent, r.TX2.DDMMicroAmps, r.TX2.Sum, r.TX2.Mod90, r.TX2.Mod150, r.TX2.RF,
	}
}

// Filled counts the readings that are present.
func (r Readings) Filled() int {
	n := 0
	for _, v := range r.Values() {
		if v != nil {
			n++
		}
	}
	return n
}

// ReadingsFromValues is the inverse of Values.
func ReadingsFromValues(v [ReadingsPerRow]*float64) Readings {
	return Readings{
		TX1: Channel{DDMPercent: v[0], DDMMicroAmps: v[1], Sum: v[2], Mod90: v[3], Mod150: v[4], RF: v[5]},
		TX2: Channel{DDMPercent: v[6], DDMMicroAmps: v[7], Sum: v[8], Mod90: v[9], Mod150: v[10], RF: v[11]},
	}
}

// ParseReading converts a raw form value into a reading.
//
// Blank input means "no reading" and yields nil. Input that does not parse
// as a finite decimal number also yields nil: a malformed cell degrades to
// missing data instead of rejecting the whole sheet. It never returns an error.
func ParseReading(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || isHexLiteral(s) {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// isHexLiteral reports whether s carries a 0x prefix, which ParseFloat
// would otherwise accept as a hexadecimal float.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// FormatReading renders a reading back into form text; nil renders as "".
func FormatReading(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// RowReadingsFromForm reads the 12 fields of row idx from form. Missing
// fields are treated exactly like blank ones.
func RowReadingsFromForm(form url.Values, idx int) Readings {
	var v [ReadingsPerRow]*float64
	for col := 0; col < ReadingsPerRow; col++ {
		v[col] = ParseReading(form.Get(FieldName(idx, col)))
	}
	return ReadingsFromValues(v)
}

// SheetFromForm reads every row of the sheet from form in position order.
func SheetFromForm(form url.Values) [RowCount]Readings {
	var sheet [RowCount]Readings
	for idx := range sheet {
		sheet[idx] = RowReadingsFromForm(form, idx)
	}
	return sheet
}

// FormValues is the inverse of SheetFromForm, used to pre-fill edit forms.
func FormValues(sheet [RowCount]Readings) url.Values {
	form := url.Values{}
	for idx, r := range sheet {
		for col, v := range r.Values() {
			if v != nil {
				form.Set(FieldName(idx, col), FormatReading(v))
			}
		}
	}
	return form
}
