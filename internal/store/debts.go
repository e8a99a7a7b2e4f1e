package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/debtpath/internal/model"
)

// ErrNotFound is returned when a debt id is not in the store.
var ErrNotFound = errors.New("not found")

const upsertDebtSQL = `INSERT INTO debts
	(id, name, kind, balance, apr, minimum_payment, position, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM debts), ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		kind = excluded.kind,
		balance = excluded.balance,
		apr = excluded.apr,
		minimum_payment = excluded.minimum_payment,
		updated_at = excluded.updated_at`

const selectDebtsSQL = `SELECT id, name, kind, balance, apr, minimum_payment FROM debts`

// ListDebts returns all debts in the order they were first added.
func (s *Store) ListDebts() ([]model.Debt, error) {
	rows, err := s.db.Query(selectDebtsSQL + " ORDER BY position, id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var debts []model.Debt
	for rows.Next() {
		var d model.Debt
		if err := rows.Scan(&d.ID, &d.Name, &d.Kind, &d.Balance, &d.APR, &d.MinimumPayment); err != nil {
			return nil, err
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// GetDebt returns one debt by id.
func (s *Store) GetDebt(id string) (model.Debt, error) {
	var d model.Debt
	err := s.db.QueryRow(s.rebind(selectDebtsSQL+" WHERE id = ?"), id).
		Scan(&d.ID, &d.Name, &d.Kind, &d.Balance, &d.APR, &d.MinimumPayment)
	if errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("debt %q: %w", id, ErrNotFound)
	}
	return d, err
}

// UpsertDebt inserts a debt or replaces the stored fields of an existing one.
// Updated debts keep their original position.
func (s *Store) UpsertDebt(d model.Debt) error {
	_, err := s.db.Exec(s.rebind(upsertDebtSQL),
		d.ID, d.Name, d.Kind, d.Balance, d.APR, d.MinimumPayment,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ImportDebts upserts every debt in a single transaction.
func (s *Store) ImportDebts(debts []model.Debt) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(s.rebind(upsertDebtSQL))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range debts {
		if _, err := stmt.Exec(d.ID, d.Name, d.Kind, d.Balance, d.APR, d.MinimumPayment, now); err != nil {
			return fmt.Errorf("importing %q: %w", d.ID, err)
		}
	}

	return tx.Commit()
}

// DeleteDebt removes a debt by id.
func (s *Store) DeleteDebt(id string) error {
	res, err := s.db.Exec(s.rebind("DELETE FROM debts WHERE id = ?"), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("debt %q: %w", id, ErrNotFound)
	}
	return nil
}

// DebtCount returns the number of stored debts.
func (s *Store) DebtCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM debts").Scan(&count)
	return count, err
}
