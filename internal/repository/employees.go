package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

func (r *Repository) CreateEmployee(emp *domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	days, err := json.Marshal(emp.AvailableDays)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO employees (id, full_name, department, email, phone, available_days, shift_window, branch, division, max_hours_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, version
	`

	args := []any{emp.ID, emp.FullName, emp.Department, emp.Email, emp.Phone, days, emp.ShiftWindow, emp.Branch, emp.Division, emp.MaxHoursWeek}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&emp.CreatedAt, &emp.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmployeeByID(id string) (*domain.Employee, error) {
	query := `
		SELECT full_name, department, email, phone, available_days, shift_window, branch, division, max_hours_week, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	emp := &domain.Employee{
		ID: id,
	}

	var days []byte
	dst := []any{&emp.FullName, &emp.Department, &emp.Email, &emp.Phone, &days, &emp.ShiftWindow, &emp.Branch, &emp.Division, &emp.MaxHoursWeek, &emp.CreatedAt, &emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(days, &emp.AvailableDays); err != nil {
		return nil, err
	}

	return emp, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT id, full_name, department, email, phone, available_days, shift_window, branch, division, max_hours_week, created_at, version
		FROM employees ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		emp := &domain.Employee{}
		var days []byte
		dst := []any{&emp.ID, &emp.FullName, &emp.Department, &emp.Email, &emp.Phone, &days, &emp.ShiftWindow, &emp.Branch, &emp.Division, &emp.MaxHoursWeek, &emp.CreatedAt, &emp.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(days, &emp.AvailableDays); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) UpdateEmployee(emp *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			full_name = $1,
			department = $2,
			email = $3,
			phone = $4,
			available_days = $5,
			shift_window = $6,
			branch = $7,
			division = $8,
			max_hours_week = $9,
			version = version + 1
		WHERE id = $10 AND version = $11
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	days, err := json.Marshal(emp.AvailableDays)
	if err != nil {
		return err
	}

	args := []any{emp.FullName, emp.Department, emp.Email, emp.Phone, days, emp.ShiftWindow, emp.Branch, emp.Division, emp.MaxHoursWeek, emp.ID, emp.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&emp.CreatedAt, &emp.Version); err != nil {
		return err
	}

	return nil
}

// DeleteEmployee removes the employee only. Shifts keep their dangling
// employee_id on purpose: a shift tolerates a missing reference and
// simply renders as unassigned.
func (r *Repository) DeleteEmployee(id string) error {
	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
