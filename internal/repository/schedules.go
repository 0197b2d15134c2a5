package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
	"github.com/mercato-dev/roster-manager/backend/internal/roster"
)

func (r *Repository) CreateSchedule(s *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedules (id, name, start_date, end_date, branch, division, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING version
	`
	args := []any{s.ID, s.Name, s.StartDate, s.EndDate, s.Branch, s.Division, s.CreatedAt, s.UpdatedAt}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&s.Version); err != nil {
		return err
	}

	if err := insertShifts(ctx, tx, s); err != nil {
		return err
	}

	return tx.Commit()
}

func insertShifts(ctx context.Context, tx *sql.Tx, s *domain.Schedule) error {
	query := `
		INSERT INTO schedule_shifts (id, schedule_id, date, start_time, end_time, employee_id, status, coverage_type, coverage_branch, coverage_shift, position, ord)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	ord := 0
	for _, day := range s.Days {
		for _, shift := range day.Shifts {
			var covType, covBranch, covShift string
			if shift.Coverage != nil {
				covType = string(shift.Coverage.Type)
				covBranch = shift.Coverage.Branch
				covShift = string(shift.Coverage.Shift)
			}

			args := []any{shift.ID, s.ID, shift.Date, shift.StartTime, shift.EndTime, shift.EmployeeID, shift.Status, covType, covBranch, covShift, shift.Position, ord}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
			ord++
		}
	}

	return nil
}

func (r *Repository) GetScheduleByID(id string) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	s := &domain.Schedule{
		ID: id,
	}

	query := `
		SELECT name, start_date, end_date, branch, division, created_at, updated_at, version
		FROM schedules WHERE id = $1
	`
	dst := []any{&s.Name, &s.StartDate, &s.EndDate, &s.Branch, &s.Division, &s.CreatedAt, &s.UpdatedAt, &s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	query = `
		SELECT id, date, start_time, end_time, employee_id, status, coverage_type, coverage_branch, coverage_shift, position
		FROM schedule_shifts WHERE schedule_id = $1
		ORDER BY ord
	`
	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shiftsByDate := make(map[string][]domain.Shift)
	for rows.Next() {
		var shift domain.Shift
		var covType, covBranch, covShift string

		dst := []any{&shift.ID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.EmployeeID, &shift.Status, &covType, &covBranch, &covShift, &shift.Position}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if covType != "" {
			shift.Coverage = &domain.CoverageInfo{
				Type:   domain.CoverageType(covType),
				Branch: covBranch,
				Shift:  domain.Window(covShift),
			}
		}
		shift.IsAssigned = shift.Status == domain.StatusAssigned || shift.Status == domain.StatusCovering

		shiftsByDate[shift.Date] = append(shiftsByDate[shift.Date], shift)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rebuild the day list by walking the period; a date without rows
	// is a valid empty day and must survive the round trip.
	start, err := roster.ParseDate(s.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := roster.ParseDate(s.EndDate)
	if err != nil {
		return nil, err
	}

	dayCount := start.DaysUntil(end) + 1
	s.Days = make([]domain.ScheduleDay, 0, dayCount)
	for offset := 0; offset < dayCount; offset++ {
		date := start.AddDays(offset)
		shifts := shiftsByDate[date.String()]
		if shifts == nil {
			shifts = make([]domain.Shift, 0)
		}
		s.Days = append(s.Days, domain.ScheduleDay{
			Date:    date.String(),
			DayName: date.DayName(),
			Shifts:  shifts,
		})
	}

	return s, nil
}

// GetAllSchedules returns schedule headers only; days are loaded per
// schedule through GetScheduleByID.
func (r *Repository) GetAllSchedules() ([]*domain.Schedule, error) {
	query := `
		SELECT id, name, start_date, end_date, branch, division, created_at, updated_at, version
		FROM schedules ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		dst := []any{&s.ID, &s.Name, &s.StartDate, &s.EndDate, &s.Branch, &s.Division, &s.CreatedAt, &s.UpdatedAt, &s.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}

func (r *Repository) UpdateScheduleMeta(s *domain.Schedule) error {
	query := `
		UPDATE schedules
		SET
			name = $1,
			branch = $2,
			division = $3,
			updated_at = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{s.Name, s.Branch, s.Division, s.UpdatedAt, s.ID, s.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&s.Version); err != nil {
		return err
	}

	return nil
}

// SaveScheduleShifts persists the current in-memory shift state of a
// schedule. Last-writer-wins is enforced here through the version
// check; concurrent editors of the same roster get sql.ErrNoRows and
// must reload.
func (r *Repository) SaveScheduleShifts(s *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE schedules
		SET updated_at = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, s.UpdatedAt, s.ID, s.Version).Scan(&s.Version); err != nil {
		return err
	}

	query = `
		DELETE FROM schedule_shifts WHERE schedule_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, s.ID); err != nil {
		return err
	}

	if err := insertShifts(ctx, tx, s); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteSchedule(id string) error {
	query := `
		DELETE FROM schedules WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
