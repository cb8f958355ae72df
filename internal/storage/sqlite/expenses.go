package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/homehero/homehero/internal/models"
	"github.com/homehero/homehero/internal/storage"
)

const expenseColumns = "id, household_id, payer_id, item, cost, score, created_at"

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	e := &models.Expense{}
	err := row.Scan(&e.ID, &e.HouseholdID, &e.PayerID, &e.Item, &e.Cost, &e.Score, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func scanSplit(row interface{ Scan(...any) error }) (*models.ExpenseSplit, error) {
	sp := &models.ExpenseSplit{}
	err := row.Scan(&sp.ID, &sp.ExpenseID, &sp.ProfileID, &sp.Amount, &sp.Paid)
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// CreateExpense persists an expense with its splits and applies the
// matching balance increments in one transaction: each owing profile's
// amount_owed and the payer's amount_owed_to_user grow by the split
// amount. Either everything commits or nothing does.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.HouseholdID, expense.PayerID,
		expense.Item, expense.Cost, expense.Score, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range splits {
		split := &splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, profile_id, amount, paid) VALUES (?, ?, ?, ?, ?)`,
			split.ID, split.ExpenseID, split.ProfileID, split.Amount, split.Paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET amount_owed = amount_owed + ? WHERE id = ?`,
			split.Amount, split.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to update owed balance: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET amount_owed_to_user = amount_owed_to_user + ? WHERE id = ?`,
			split.Amount, expense.PayerID)
		if err != nil {
			return fmt.Errorf("failed to update payer balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpenseByID retrieves an expense by its ID.
func (s *SQLiteStore) GetExpenseByID(ctx context.Context, id string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

// GetExpensesByHousehold lists a household's expenses, newest first.
func (s *SQLiteStore) GetExpensesByHousehold(ctx context.Context, householdID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE household_id = ? ORDER BY created_at DESC, id`,
		householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense mutates an expense's item and cost fields only. Splits
// and balances are left as they were written at creation time.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, id, item string, cost float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET item = ?, cost = ? WHERE id = ?`, item, cost, id)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

// RemoveExpense reverses the balance effect of every still-unpaid
// non-payer split, then deletes all splits and the expense. Reversal and
// deletion commit together.
func (s *SQLiteStore) RemoveExpense(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense, err := scanExpense(tx.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, expense_id, profile_id, amount, paid FROM expense_splits WHERE expense_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	var splits []models.ExpenseSplit
	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, *sp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}

	// Paid splits already had their balance effect undone when they were
	// marked paid; only unpaid shares still sit on the two balances.
	for _, split := range splits {
		if split.Paid || split.ProfileID == expense.PayerID {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET amount_owed = amount_owed - ? WHERE id = ?`,
			split.Amount, split.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to reverse owed balance: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET amount_owed_to_user = amount_owed_to_user - ? WHERE id = ?`,
			split.Amount, expense.PayerID)
		if err != nil {
			return fmt.Errorf("failed to reverse payer balance: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_splits WHERE expense_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSplitsByExpense lists the splits of an expense.
func (s *SQLiteStore) GetSplitsByExpense(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, profile_id, amount, paid FROM expense_splits WHERE expense_id = ? ORDER BY id`,
		expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// GetSplitByID retrieves a split by its ID.
func (s *SQLiteStore) GetSplitByID(ctx context.Context, id string) (*models.ExpenseSplit, error) {
	sp, err := scanSplit(s.db.QueryRowContext(ctx,
		`SELECT id, expense_id, profile_id, amount, paid FROM expense_splits WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("split %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	return sp, nil
}

// GetSplitsByProfileAndHousehold lists a profile's splits across a
// household's expenses.
func (s *SQLiteStore) GetSplitsByProfileAndHousehold(ctx context.Context, profileID, householdID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sp.id, sp.expense_id, sp.profile_id, sp.amount, sp.paid
		 FROM expense_splits sp
		 JOIN expenses e ON e.id = sp.expense_id
		 WHERE sp.profile_id = ? AND e.household_id = ?
		 ORDER BY e.created_at DESC, sp.id`,
		profileID, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		sp, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// SetSplitPaid flips a split's paid flag and applies the inverse balance
// delta in the same transaction. Settling a share removes it from both
// running balances; reopening it puts it back. A split already in the
// target state is left untouched so the operation is idempotent.
func (s *SQLiteStore) SetSplitPaid(ctx context.Context, splitID string, paid bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	split, err := scanSplit(tx.QueryRowContext(ctx,
		`SELECT id, expense_id, profile_id, amount, paid FROM expense_splits WHERE id = ?`, splitID))
	if err == sql.ErrNoRows {
		return fmt.Errorf("split %s: %w", splitID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get split: %w", err)
	}

	if split.Paid == paid {
		return tx.Commit()
	}

	var payerID string
	err = tx.QueryRowContext(ctx,
		`SELECT payer_id FROM expenses WHERE id = ?`, split.ExpenseID).Scan(&payerID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("expense %s: %w", split.ExpenseID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE expense_splits SET paid = ? WHERE id = ?`, paid, splitID); err != nil {
		return fmt.Errorf("failed to update split: %w", err)
	}

	if split.ProfileID != payerID {
		delta := split.Amount
		if paid {
			delta = -delta
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET amount_owed = amount_owed + ? WHERE id = ?`,
			delta, split.ProfileID)
		if err != nil {
			return fmt.Errorf("failed to update owed balance: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE profiles SET amount_owed_to_user = amount_owed_to_user + ? WHERE id = ?`,
			delta, payerID)
		if err != nil {
			return fmt.Errorf("failed to update payer balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SumExpensesSince totals a household's expense costs created at or after
// the given Unix timestamp.
func (s *SQLiteStore) SumExpensesSince(ctx context.Context, householdID string, since int64) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(cost), 0) FROM expenses WHERE household_id = ? AND created_at >= ?`,
		householdID, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
