package services

import (
	"context"
	"errors"
	"math"
	"net/url"
	"testing"

	"airnav/groundcheck/internal/db/repositories"
	"airnav/groundcheck/internal/groundcheck"
	"airnav/groundcheck/internal/metrics"
	"airnav/groundcheck/internal/models/dtos"
	gormModels "airnav/groundcheck/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps every statement on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	// Auto migrate
	if err := db.AutoMigrate(&gormModels.GroundCheck{}, &gormModels.GroundCheckRow{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func setupTestService(t *testing.T) (*GroundCheckService, *gorm.DB) {
	db := setupTestDB(t)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	stats := repositories.NewGroundCheckStatsRepository(sqlx.NewDb(sqlDB, "sqlite3"))

	return NewGroundCheckService(db, repositories.NewGroundCheckRepository(db), stats, metrics.NewMetricsRegistry(prometheus.NewRegistry())), db
}

func scenarioInput() dtos.GroundCheckInput {
	form := url.Values{}
	form.Set("hz90_0_0", "12.5")

	return dtos.GroundCheckInput{
		Location:    "Runway 09",
		Date:        "2024-03-01",
		Technicians: []string{"Alice", "Bob"},
		SignOffs:    []string{"A.", "B."},
		Readings:    groundcheck.SheetFromForm(form),
	}
}

func fullInput() dtos.GroundCheckInput {
	form := url.Values{}
	for idx := 0; idx < groundcheck.RowCount; idx++ {
		for col := 0; col < groundcheck.ReadingsPerRow; col++ {
			// leave every third cell blank
			if (idx+col)%3 == 0 {
				continue
			}
			v := float64(idx*100+col) / 10
			form.Set(groundcheck.FieldName(idx, col), groundcheck.FormatReading(&v))
		}
	}

	return dtos.GroundCheckInput{
		Location:    "LLZ RWY 27",
		Date:        "2024-05-17",
		Technicians: []string{"Citra", "Dewi", "Eko"},
		SignOffs:    []string{"C.", "D.", "E."},
		Notes:       "TX2 warmed up for 10 minutes",
		Readings:    groundcheck.SheetFromForm(form),
	}
}

func countTable(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	return count
}

func readingsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) < 1e-9
}

func assertSheetEqual(t *testing.T, want, got [groundcheck.RowCount]groundcheck.Readings) {
	t.Helper()
	for idx := range want {
		w := want[idx].Values()
		g := got[idx].Values()
		for col := range w {
			if !readingsEqual(w[col], g[col]) {
				t.Errorf("Row %d col %d: expected %v, got %v",
					idx, col, groundcheck.FormatReading(w[col]), groundcheck.FormatReading(g[col]))
			}
		}
	}
}

func TestGroundCheckService_Create_Scenario(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, scenarioInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	gc, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}

	if gc.Location != "Runway 09" {
		t.Errorf("Expected location Runway 09, got %s", gc.Location)
	}
	if gc.Date.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("Expected date 2024-03-01, got %s", gc.Date.Format("2006-01-02"))
	}
	if gc.Technicians != "Alice, Bob" {
		t.Errorf("Expected technicians \"Alice, Bob\", got %q", gc.Technicians)
	}
	if gc.SignOffs != "A., B." {
		t.Errorf("Expected sign-offs \"A., B.\", got %q", gc.SignOffs)
	}

	if len(gc.Rows) != groundcheck.RowCount {
		t.Fatalf("Expected %d rows, got %d", groundcheck.RowCount, len(gc.Rows))
	}

	row0 := gc.Rows[0]
	if row0.Frequency != "90 Hz" || row0.Distance != "210.1" || row0.Angle != "35°" {
		t.Errorf("Unexpected row 0 position: %s / %s / %s", row0.Frequency, row0.Distance, row0.Angle)
	}
	if row0.TX1DDMPercent == nil || *row0.TX1DDMPercent != 12.5 {
		t.Errorf("Expected row 0 TX1 DDM%% 12.5, got %v", row0.TX1DDMPercent)
	}
	if filled := row0.Readings().Filled(); filled != 1 {
		t.Errorf("Expected 1 reading on row 0, got %d", filled)
	}

	for _, row := range gc.Rows[1:] {
		if filled := row.Readings().Filled(); filled != 0 {
			t.Errorf("Expected row %d to have no readings, got %d", row.Position, filled)
		}
	}
}

func TestGroundCheckService_Create_RowsFollowPositionTable(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, fullInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	gc, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}

	for i, pos := range groundcheck.Positions() {
		row := gc.Rows[i]
		if row.Position != pos.Index || row.Frequency != string(pos.Band) ||
			row.Distance != pos.Distance || row.Angle != pos.Angle {
			t.Errorf("Row %d: expected %+v, got %d %s %s %s",
				i, pos, row.Position, row.Frequency, row.Distance, row.Angle)
		}
	}
}

func TestGroundCheckService_RoundTrip(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	in := fullInput()
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	gc, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}

	assertSheetEqual(t, in.Readings, gc.Sheet())

	if gc.Notes != in.Notes {
		t.Errorf("Expected notes %q, got %q", in.Notes, gc.Notes)
	}
	names := gc.TechnicianList()
	if len(names) != 3 || names[0] != "Citra" || names[2] != "Eko" {
		t.Errorf("Expected technicians in submission order, got %v", names)
	}
}

func TestGroundCheckService_Create_InvalidDate(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	for _, date := range []string{"", "01-03-2024", "2024/03/01", "2024-02-30", " 2024-03-01", "2024-3-1"} {
		in := scenarioInput()
		in.Date = date

		_, err := svc.Create(ctx, in)

		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("Date %q: expected FormatError, got %v", date, err)
			continue
		}
		if formatErr.Field != "tanggal" {
			t.Errorf("Expected field tanggal, got %s", formatErr.Field)
		}
	}

	if n := countTable(t, db, &gormModels.GroundCheck{}); n != 0 {
		t.Errorf("Expected no headers persisted, got %d", n)
	}
	if n := countTable(t, db, &gormModels.GroundCheckRow{}); n != 0 {
		t.Errorf("Expected no rows persisted, got %d", n)
	}
}

func TestGroundCheckService_Create_FailureAfterHeaderLeavesNothing(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	injected := errors.New("injected row failure")
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_rows", func(tx *gorm.DB) {
		if tx.Statement.Table == "ground_check_rows" {
			tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	_, err = svc.Create(ctx, scenarioInput())
	if !errors.Is(err, injected) {
		t.Fatalf("Expected injected error, got %v", err)
	}

	if n := countTable(t, db, &gormModels.GroundCheck{}); n != 0 {
		t.Errorf("Expected header to be rolled back, got %d headers", n)
	}
	if n := countTable(t, db, &gormModels.GroundCheckRow{}); n != 0 {
		t.Errorf("Expected zero rows, got %d", n)
	}
}

func TestGroundCheckService_Edit_ReplacesAllRows(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, fullInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	edited := scenarioInput()
	edited.Notes = ""
	if err := svc.Edit(ctx, id, edited); err != nil {
		t.Fatalf("Expected no error on edit, got %v", err)
	}

	gc, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}

	if gc.Location != "Runway 09" || gc.Technicians != "Alice, Bob" || gc.Date.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("Expected header to be overwritten, got %+v", gc)
	}
	if gc.Notes != "" {
		t.Errorf("Expected notes to be cleared, got %q", gc.Notes)
	}
	assertSheetEqual(t, edited.Readings, gc.Sheet())

	if n := countTable(t, db, &gormModels.GroundCheckRow{}); n != groundcheck.RowCount {
		t.Errorf("Expected exactly %d rows after edit, got %d", groundcheck.RowCount, n)
	}
}

func TestGroundCheckService_Edit_Idempotent(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	in := fullInput()
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}

	// Re-submit exactly what the edit form would be pre-filled with
	if err := svc.Edit(ctx, id, dtos.NewGroundCheckInput(before)); err != nil {
		t.Fatalf("Expected no error on edit, got %v", err)
	}

	after, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}

	if after.Location != before.Location || after.Technicians != before.Technicians ||
		after.SignOffs != before.SignOffs || after.Notes != before.Notes ||
		!after.Date.Equal(before.Date) {
		t.Errorf("Expected header unchanged, before %+v after %+v", before, after)
	}
	if len(after.Rows) != groundcheck.RowCount {
		t.Errorf("Expected %d rows, got %d", groundcheck.RowCount, len(after.Rows))
	}
	assertSheetEqual(t, before.Sheet(), after.Sheet())
}

func TestGroundCheckService_Edit_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.Edit(context.Background(), 42, scenarioInput())
	if !errors.Is(err, ErrGroundCheckNotFound) {
		t.Errorf("Expected ErrGroundCheckNotFound, got %v", err)
	}
}

func TestGroundCheckService_Edit_InvalidDateKeepsRecord(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	in := fullInput()
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	bad := scenarioInput()
	bad.Date = "March 1st"
	err = svc.Edit(ctx, id, bad)

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Expected FormatError, got %v", err)
	}

	gc, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}
	if gc.Location != in.Location {
		t.Errorf("Expected header untouched, got location %s", gc.Location)
	}
	assertSheetEqual(t, in.Readings, gc.Sheet())
}

func TestGroundCheckService_Edit_FailureAfterRowDeleteLeavesRecord(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	in := fullInput()
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Header update and row delete succeed, then the row insert fails
	injected := errors.New("injected row failure")
	err = db.Callback().Create().Before("gorm:create").Register("test:fail_rows", func(tx *gorm.DB) {
		if tx.Statement.Table == "ground_check_rows" {
			tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	err = svc.Edit(ctx, id, scenarioInput())
	if !errors.Is(err, injected) {
		t.Fatalf("Expected injected error, got %v", err)
	}

	gc, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Failed to load ground check: %v", err)
	}
	if gc.Location != in.Location || gc.Notes != in.Notes ||
		gc.Date.Format("2006-01-02") != in.Date {
		t.Errorf("Expected original header after failed edit, got %+v", gc)
	}
	if len(gc.Rows) != groundcheck.RowCount {
		t.Errorf("Expected %d rows, got %d", groundcheck.RowCount, len(gc.Rows))
	}
	assertSheetEqual(t, in.Readings, gc.Sheet())

	if n := countTable(t, db, &gormModels.GroundCheckRow{}); n != groundcheck.RowCount {
		t.Errorf("Expected %d stored rows, got %d", groundcheck.RowCount, n)
	}
}

func TestGroundCheckService_Delete_Cascades(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	keep, err := svc.Create(ctx, scenarioInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	drop, err := svc.Create(ctx, fullInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := svc.Delete(ctx, drop); err != nil {
		t.Fatalf("Expected no error on delete, got %v", err)
	}

	var rows []gormModels.GroundCheckRow
	if err := db.Where("ground_check_id = ?", drop).Find(&rows).Error; err != nil {
		t.Fatalf("Failed to query rows: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected no rows for deleted header, got %d", len(rows))
	}

	if _, err := svc.Get(ctx, drop); !errors.Is(err, ErrGroundCheckNotFound) {
		t.Errorf("Expected deleted header to be gone, got %v", err)
	}

	remaining, err := svc.Get(ctx, keep)
	if err != nil {
		t.Fatalf("Expected other record to survive, got %v", err)
	}
	if len(remaining.Rows) != groundcheck.RowCount {
		t.Errorf("Expected %d rows on surviving record, got %d", groundcheck.RowCount, len(remaining.Rows))
	}
}

func TestGroundCheckService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.Delete(context.Background(), 7)
	if !errors.Is(err, ErrGroundCheckNotFound) {
		t.Errorf("Expected ErrGroundCheckNotFound, got %v", err)
	}
}

func TestGroundCheckService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Get(context.Background(), 1)
	if !errors.Is(err, ErrGroundCheckNotFound) {
		t.Errorf("Expected ErrGroundCheckNotFound, got %v", err)
	}
}

func TestGroundCheckService_List(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("Expected empty list, got %d", len(list))
	}

	first, err := svc.Create(ctx, scenarioInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := svc.Create(ctx, fullInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	list, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(list))
	}

	if list[0].ID != first || list[1].ID != second {
		t.Errorf("Expected storage order [%d %d], got [%d %d]", first, second, list[0].ID, list[1].ID)
	}
	if list[0].RowCount != groundcheck.RowCount {
		t.Errorf("Expected row count %d, got %d", groundcheck.RowCount, list[0].RowCount)
	}
	if list[0].FilledReadings != 1 {
		t.Errorf("Expected 1 filled reading, got %d", list[0].FilledReadings)
	}

	in := fullInput()
	if list[1].FilledReadings != countFilled(in.Readings) {
		t.Errorf("Expected %d filled readings, got %d", countFilled(in.Readings), list[1].FilledReadings)
	}
}
