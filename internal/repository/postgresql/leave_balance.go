package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/haergo/workforce-backend-go/internal/domain/leave"
	"github.com/haergo/workforce-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// GetOrCreateForUpdate inserts the ledger row if missing and locks it.
// FOR UPDATE keeps concurrent holds on the same balance serialized, so
// the Used + Held <= Allotted check in the service cannot be raced past.
func (r *leaveBalanceRepository) GetOrCreateForUpdate(ctx context.Context, employeeID, leaveType string, year, allotted int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	insert := `
		INSERT INTO leave_balances (id, employee_id, leave_type, year, allotted, used, held, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6)
		ON CONFLICT (employee_id, leave_type, year) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, uuid.NewString(), employeeID, leaveType, year, allotted, time.Now()); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to ensure leave balance: %w", err)
	}

	query := `
		SELECT id, employee_id, leave_type, year, allotted, used, held, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2 AND year = $3
		FOR UPDATE
	`

	var balance leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveType, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.LeaveType, &balance.Year,
		&balance.Allotted, &balance.Used, &balance.Held, &balance.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to lock leave balance: %w", err)
	}

	return balance, nil
}

func (r *leaveBalanceRepository) UpdateCounts(ctx context.Context, id string, used, held int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used = $2, held = $3, updated_at = $4
		WHERE id = $1
	`

	if _, err := q.Exec(ctx, query, id, used, held, time.Now()); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	return nil
}

func (r *leaveBalanceRepository) ListByEmployee(ctx context.Context, employeeID string, year int) ([]leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type, year, allotted, used, held, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY leave_type ASC
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.Balance
	for rows.Next() {
		var balance leave.Balance
		if err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.LeaveType, &balance.Year,
			&balance.Allotted, &balance.Used, &balance.Held, &balance.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}
