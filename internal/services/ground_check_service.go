package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airnav/groundcheck/internal/constants"
	"airnav/groundcheck/internal/db/repositories"
	"airnav/groundcheck/internal/groundcheck"
	"airnav/groundcheck/internal/logging"
	"airnav/groundcheck/internal/metrics"
	"airnav/groundcheck/internal/models/dtos"
	gormModels "airnav/groundcheck/internal/models/gorm"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrGroundCheckNotFound is returned when the requested header does not exist.
var ErrGroundCheckNotFound = errors.New("ground check not found")

// FormatError reports a submitted header field that does not have the
// required format. Nothing is persisted when it is returned.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// GroundCheckService owns the create/read/update/delete operations on
// ground-check sheets. Every mutation runs in a single transaction so a
// header is never visible without its 17 rows.
type GroundCheckService struct {
	db       *gorm.DB
	repo     *repositories.GroundCheckRepository
	stats    *repositories.GroundCheckStatsRepository
	metrics  *metrics.MetricsRegistry
	validate *validator.Validate
}

func NewGroundCheckService(
	db *gorm.DB,
	repo *repositories.GroundCheckRepository,
	stats *repositories.GroundCheckStatsRepository,
	metricsReg *metrics.MetricsRegistry,
) *GroundCheckService {
	return &GroundCheckService{
		db:       db,
		repo:     repo,
		stats:    stats,
		metrics:  metricsReg,
		validate: validator.New(),
	}
}

// Create stores a new sheet and returns its ID.
func (svc *GroundCheckService) Create(ctx context.Context, in dtos.GroundCheckInput) (uint, error) {
	header, err := svc.newHeader(in)
	if err != nil {
		svc.metrics.ObserveOperation("create", err)
		return 0, err
	}

	start := time.Now()
	err = svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := svc.repo.WithTx(tx)

		if err := repo.CreateHeader(ctx, header); err != nil {
			return err
		}

		return repo.CreateRows(ctx, buildRows(header.ID, in.Readings))
	})
	svc.metrics.ObserveDB("create_ground_check", start, err)
	svc.metrics.ObserveOperation("create", err)

	if err != nil {
		return 0, fmt.Errorf("failed to save ground check: %w", err)
	}

	svc.metrics.ReadingsStoredTotal.Add(float64(countFilled(in.Readings)))
	logging.Info("Ground check created",
		"id", header.ID,
		"location", header.Location,
		"date", in.Date,
	)

	return header.ID, nil
}

// Edit overwrites the header of an existing sheet and replaces all of its
// rows with the submitted ones.
func (svc *GroundCheckService) Edit(ctx context.Context, id uint, in dtos.GroundCheckInput) error {
	start := time.Now()
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := svc.repo.WithTx(tx)

		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrGroundCheckNotFound
		}

		header, err := svc.newHeader(in)
		if err != nil {
			return err
		}
		header.ID = id

		if err := repo.UpdateHeader(ctx, header); err != nil {
			return err
		}
		if err := repo.DeleteRows(ctx, id); err != nil {
			return err
		}

		return repo.CreateRows(ctx, buildRows(id, in.Readings))
	})
	svc.metrics.ObserveDB("edit_ground_check", start, err)
	svc.metrics.ObserveOperation("edit", err)

	if err != nil {
		var formatErr *FormatError
		if errors.Is(err, ErrGroundCheckNotFound) || errors.As(err, &formatErr) {
			return err
		}
		return fmt.Errorf("failed to update ground check: %w", err)
	}

	svc.metrics.ReadingsStoredTotal.Add(float64(countFilled(in.Readings)))
	logging.Info("Ground check updated", "id", id, "date", in.Date)

	return nil
}

// Delete removes a sheet with all of its rows.
func (svc *GroundCheckService) Delete(ctx context.Context, id uint) error {
	start := time.Now()
	err := svc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := svc.repo.WithTx(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return ErrGroundCheckNotFound
		}
		return nil
	})
	svc.metrics.ObserveDB("delete_ground_check", start, err)
	svc.metrics.ObserveOperation("delete", err)

	if err != nil {
		if errors.Is(err, ErrGroundCheckNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete ground check: %w", err)
	}

	logging.Info("Ground check deleted", "id", id)
	return nil
}

// Get returns a header with its rows in position order.
func (svc *GroundCheckService) Get(ctx context.Context, id uint) (*gormModels.GroundCheck, error) {
	start := time.Now()
	gc, err := svc.repo.GetWithRows(ctx, id)
	svc.metrics.ObserveDB("get_ground_check", start, err)

	if err != nil {
		return nil, err
	}
	if gc == nil {
		return nil, ErrGroundCheckNotFound
	}

	return gc, nil
}

// List returns every header in storage order, with row and reading counts.
func (svc *GroundCheckService) List(ctx context.Context) ([]dtos.GroundCheckSummary, error) {
	start := time.Now()
	checks, err := svc.repo.List(ctx)
	svc.metrics.ObserveDB("list_ground_checks", start, err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	stats, err := svc.stats.ReadingStats(ctx)
	svc.metrics.ObserveDB("reading_stats", start, err)
	if err != nil {
		return nil, err
	}

	summaries := make([]dtos.GroundCheckSummary, 0, len(checks))
	for _, gc := range checks {
		s := stats[gc.ID]
		summaries = append(summaries, dtos.GroundCheckSummary{
			ID:             gc.ID,
			Location:       gc.Location,
			Date:           gc.Date,
			Technicians:    gc.Technicians,
			SignOffs:       gc.SignOffs,
			Notes:          gc.Notes,
			RowCount:       s.RowCount,
			FilledReadings: s.FilledReadings,
		})
	}

	return summaries, nil
}

// newHeader validates the header fields of in and builds the model. Only the
// date is checked; every other field is stored as submitted.
func (svc *GroundCheckService) newHeader(in dtos.GroundCheckInput) (*gormModels.GroundCheck, error) {
	if err := svc.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &FormatError{
				Field: "tanggal",
				Value: in.Date,
				Err:   fmt.Errorf("failed %q validation", verrs[0].Tag()),
			}
		}
		return nil, fmt.Errorf("failed to validate ground check: %w", err)
	}

	date, err := time.Parse(constants.DateLayout, in.Date)
	if err != nil {
		return nil, &FormatError{Field: "tanggal", Value: in.Date, Err: err}
	}

	return &gormModels.GroundCheck{
		Location:    in.Location,
		Date:        date,
		Technicians: groundcheck.JoinNames(in.Technicians),
		SignOffs:    groundcheck.JoinNames(in.SignOffs),
		Notes:       in.Notes,
	}, nil
}

// buildRows lays the submitted readings onto the fixed position table.
func buildRows(groundCheckID uint, sheet [groundcheck.RowCount]groundcheck.Readings) []gormModels.GroundCheckRow {
	rows := make([]gormModels.GroundCheckRow, 0, groundcheck.RowCount)
	for _, pos := range groundcheck.Positions() {
		rows = append(rows, gormModels.NewGroundCheckRow(groundCheckID, pos, sheet[pos.Index]))
	}
	return rows
}

func countFilled(sheet [groundcheck.RowCount]groundcheck.Readings) int {
	n := 0
	for _, r := range sheet {
		n += r.Filled()
	}
	return n
}
