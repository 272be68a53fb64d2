package repositories

import (
	"context"
	"testing"
	"time"

	"airnav/groundcheck/internal/groundcheck"
	gormModels "airnav/groundcheck/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Setup test database
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&gormModels.GroundCheck{}, &gormModels.GroundCheckRow{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func seedGroundCheck(t *testing.T, repo *GroundCheckRepository, location string, filled int) uint {
	t.Helper()
	ctx := context.Background()

	gc := &gormModels.GroundCheck{
		Location: location,
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateHeader(ctx, gc); err != nil {
		t.Fatalf("Failed to create header: %v", err)
	}

	// insert in reverse to check that reads come back in position order
	positions := groundcheck.Positions()
	rows := make([]gormModels.GroundCheckRow, 0, len(positions))
	for i := len(positions) - 1; i >= 0; i-- {
		var r groundcheck.Readings
		if positions[i].Index < filled {
			v := float64(positions[i].Index)
			r.TX2.RF = &v
		}
		rows = append(rows, gormModels.NewGroundCheckRow(gc.ID, positions[i], r))
	}
	if err := repo.CreateRows(ctx, rows); err != nil {
		t.Fatalf("Failed to create rows: %v", err)
	}

	return gc.ID
}

func TestGroundCheckRepository_GetWithRows(t *testing.T) {
	repo := NewGroundCheckRepository(setupTestDB(t))
	id := seedGroundCheck(t, repo, "Runway 09", 0)

	gc, err := repo.GetWithRows(context.Background(), id)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gc == nil {
		t.Fatal("Expected ground check, got nil")
	}
	if len(gc.Rows) != groundcheck.RowCount {
		t.Fatalf("Expected %d rows, got %d", groundcheck.RowCount, len(gc.Rows))
	}
	for i, row := range gc.Rows {
		if row.Position != i {
			t.Errorf("Row %d: expected position %d, got %d", i, i, row.Position)
		}
	}
	if gc.Rows[8].Frequency != string(groundcheck.BandCenter) {
		t.Errorf("Expected center row at position 8, got %s", gc.Rows[8].Frequency)
	}
}

func TestGroundCheckRepository_GetMissing(t *testing.T) {
	repo := NewGroundCheckRepository(setupTestDB(t))

	gc, err := repo.GetByID(context.Background(), 42)
	if err != nil || gc != nil {
		t.Errorf("Expected nil, nil for a missing header, got %v, %v", gc, err)
	}
}

func TestGroundCheckRepository_Delete(t *testing.T) {
	repo := NewGroundCheckRepository(setupTestDB(t))
	ctx := context.Background()
	keep := seedGroundCheck(t, repo, "Runway 27", 0)
	id := seedGroundCheck(t, repo, "Runway 09", 0)

	found, err := repo.Delete(ctx, id)
	if err != nil || !found {
		t.Fatalf("Expected delete to succeed, got %v, %v", found, err)
	}

	if n, _ := repo.CountRows(ctx, id); n != 0 {
		t.Errorf("Expected rows to be deleted, got %d", n)
	}
	if n, _ := repo.CountRows(ctx, keep); n != groundcheck.RowCount {
		t.Errorf("Expected other sheet untouched, got %d rows", n)
	}

	found, err = repo.Delete(ctx, id)
	if err != nil || found {
		t.Errorf("Expected second delete to report not found, got %v, %v", found, err)
	}
}

func TestGroundCheckStatsRepository_ReadingStats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroundCheckRepository(db)
	first := seedGroundCheck(t, repo, "Runway 09", 3)
	second := seedGroundCheck(t, repo, "Runway 27", 0)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	stats := NewGroundCheckStatsRepository(sqlx.NewDb(sqlDB, "sqlite3"))

	got, err := stats.ReadingStats(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got[first].RowCount != groundcheck.RowCount || got[first].FilledReadings != 3 {
		t.Errorf("Unexpected stats for first sheet: %+v", got[first])
	}
	if got[second].RowCount != groundcheck.RowCount || got[second].FilledReadings != 0 {
		t.Errorf("Unexpected stats for second sheet: %+v", got[second])
	}

	if err := stats.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}
