package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/haergo/workforce-backend-go/internal/domain/employee"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, department, position, status, joined_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.Department, &emp.Position, &emp.Status, &emp.JoinedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &emp, nil
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, department, position, status, joined_at
		FROM employees
		WHERE status = 'active'
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := rows.Scan(&emp.ID, &emp.FullName, &emp.Department, &emp.Position, &emp.Status, &emp.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
