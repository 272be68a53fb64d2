package gorm

import (
	"time"

	"airnav/groundcheck/internal/groundcheck"
)

// GroundCheck is the header of one LLZ ground-check sheet.
type GroundCheck struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Location    string    `gorm:"column:location;type:text"`
	Date        time.Time `gorm:"column:date;type:date;not null"`
	Technicians string    `gorm:"column:technicians;type:text"`
	SignOffs    string    `gorm:"column:sign_offs;type:text"`
	Notes       string    `gorm:"column:notes;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Rows []GroundCheckRow `gorm:"foreignKey:GroundCheckID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (GroundCheck) TableName() string {
	return "ground_checks"
}

// TechnicianList returns the technicians in submission order.
func (g GroundCheck) TechnicianList() []string {
	return groundcheck.SplitNames(g.Technicians)
}

// SignOffList returns the sign-offs in submission order.
func (g GroundCheck) SignOffList() []string {
	return groundcheck.SplitNames(g.SignOffs)
}

// Sheet returns the readings of every row indexed by position.
func (g GroundCheck) Sheet() [groundcheck.RowCount]groundcheck.Readings {
	var sheet [groundcheck.RowCount]groundcheck.Readings
	for _, row := range g.Rows {
		if row.Position >= 0 && row.Position < groundcheck.RowCount {
			sheet[row.Position] = row.Readings()
		}
	}
	return sheet
}

// GroundCheckRow is one measurement point of a sheet. Frequency, Distance
// and Angle always come from the fixed position table.
type GroundCheckRow struct {
	ID            uint   `gorm:"column:id;primaryKey;autoIncrement"`
	GroundCheckID uint   `gorm:"column:ground_check_id;not null;index"`
	Position      int    `gorm:"column:position;not null"`
	Frequency     string `gorm:"column:frequency;type:varchar(16);not null"`
	Distance      string `gorm:"column:distance;type:varchar(16);not null"`
	Angle         string `gorm:"column:angle;type:varchar(16);not null"`

	TX1DDMPercent   *float64 `gorm:"column:tx1_ddm_percent"`
	TX1DDMMicroAmps *float64 `gorm:"column:tx1_ddm_ua"`
	TX1Sum          *float64 `gorm:"column:tx1_sum"`
	TX1Mod90        *float64 `gorm:"column:tx1_mod90"`
	TX1Mod150       *float64 `gorm:"column:tx1_mod150"`
	TX1RF           *float64 `gorm:"column:tx1_rf"`
	TX2DDMPercent   *float64 `gorm:"column:tx2_ddm_percent"`
	TX2DDMMicroAmps *float64 `gorm:"column:tx2_ddm_ua"`
	TX2Sum          *float64 `gorm:"column:tx2_sum"`
	TX2Mod90        *float64 `gorm:"column:tx2_mod90"`
	TX2Mod150       *float64 `gorm:"column:tx2_mod150"`
	TX2RF           *float64 `gorm:"column:tx2_rf"`
}

// TableName specifies the table name for GORM
func (GroundCheckRow) TableName() string {
	return "ground_check_rows"
}

// NewGroundCheckRow builds the stored row for a position and its readings.
func NewGroundCheckRow(groundCheckID uint, pos groundcheck.Position, r groundcheck.Readings) GroundCheckRow {
	return GroundCheckRow{
		GroundCheckID: groundCheckID,
		Position:      pos.Index,
		Frequency:     string(pos.Band),
		Distance:      pos.Distance,
		Angle:         pos.Angle,

		TX1DDMPercent:   r.TX1.DDMPercent,
		TX1DDMMicroAmps: r.TX1.DDMMicroAmps,
		TX1Sum:          r.TX1.Sum,
		TX1Mod90:        r.TX1.Mod90,
		TX1Mod150:       r.TX1.Mod150,
		TX1RF:           r.TX1.RF,
		TX2DDMPercent:   r.TX2.DDMPercent,
		TX2DDMMicroAmps: r.TX2.DDMMicroAmps,
		TX2Sum:          r.TX2.Sum,
		TX2Mod90:        r.TX2.Mod90,
		TX2Mod150:       r.TX2.Mod150,
		TX2RF:           r.TX2.RF,
	}
}

// Readings returns the row's transmitter readings.
func (r GroundCheckRow) Readings() groundcheck.Readings {
	return groundcheck.Readings{
		TX1: groundcheck.Channel{
			DDMPercent:   r.TX1DDMPercent,
			DDMMicroAmps: r.TX1DDMMicroAmps,
			Sum:          r.TX1Sum,
			Mod90:        r.TX1Mod90,
			Mod150:       r.TX1Mod150,
			RF:           r.TX1RF,
		},
		TX2: groundcheck.Channel{
			DDMPercent:   r.TX2DDMPercent,
			DDMMicroAmps: r.TX2DDMMicroAmps,
			Sum:          r.TX2Sum,
			Mod90:        r.TX2Mod90,
			Mod150:       r.TX2Mod150,
			RF:           r.TX2RF,
		},
	}
}
