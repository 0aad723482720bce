package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/MaxiAdad31/gastos/internal/models"
)

const incomeColumns = "id, date, amount, concept, detail, user_id"

func scanIncome(row interface{ Scan(...any) error }) (*models.Income, error) {
	var (
		i      models.Income
		date   string
		detail sql.NullString
	)
	if err := row.Scan(&i.ID, &date, &i.Amount, &i.Concept, &detail, &i.UserID); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	i.Date = d
	i.Detail = detail.String
	return &i, nil
}

// CreateIncome inserts a new income row for its owning user.
func (db *DB) CreateIncome(i *models.Income) error {
	if err := i.Validate(); err != nil {
		return err
	}

	result, err := db.conn.Exec(
		"INSERT INTO incomes (date, amount, concept, detail, user_id) VALUES (?, ?, ?, ?, ?)",
		formatDate(i.Date), i.Amount.String(), i.Concept, nullable(i.Detail), i.UserID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	i.ID, err = result.LastInsertId()
	return err
}

// GetIncome retrieves a single income row. The lookup is scoped to the
// owning user: another user's row reads as not found.
func (db *DB) GetIncome(id, userID int64) (*models.Income, error) {
	row := db.conn.QueryRow(
		"SELECT "+incomeColumns+" FROM incomes WHERE id = ? AND user_id = ?", id, userID,
	)
	i, err := scanIncome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return i, err
}

// ListIncomes returns the user's income rows, most recent first.
func (db *DB) ListIncomes(userID int64) ([]models.Income, error) {
	return db.queryIncomes(
		"SELECT "+incomeColumns+" FROM incomes WHERE user_id = ? ORDER BY date DESC, id DESC",
		userID,
	)
}

// ListIncomesBetween returns all income rows with date in [from, to],
// oldest first. The dashboard aggregates household-wide, so this query is
// not owner-scoped.
func (db *DB) ListIncomesBetween(from, to time.Time) ([]models.Income, error) {
	return db.queryIncomes(
		"SELECT "+incomeColumns+" FROM incomes WHERE date >= ? AND date <= ? ORDER BY date, id",
		formatDate(from), formatDate(to),
	)
}

// RecentIncomes returns the n most recently dated income rows across all
// users, ties broken by insertion id descending.
func (db *DB) RecentIncomes(n int) ([]models.Income, error) {
	return db.queryIncomes(
		"SELECT "+incomeColumns+" FROM incomes ORDER BY date DESC, id DESC LIMIT ?", n,
	)
}

// UpdateIncome replaces all mutable fields of the user's income row.
// The owner cannot be reassigned.
func (db *DB) UpdateIncome(i *models.Income) error {
	if err := i.Validate(); err != nil {
		return err
	}
	res, err := db.conn.Exec(
		"UPDATE incomes SET date = ?, amount = ?, concept = ?, detail = ? WHERE id = ? AND user_id = ?",
		formatDate(i.Date), i.Amount.String(), i.Concept, nullable(i.Detail), i.ID, i.UserID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteIncome removes the user's income row.
func (db *DB) DeleteIncome(id, userID int64) error {
	res, err := db.conn.Exec("DELETE FROM incomes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (db *DB) queryIncomes(query string, args ...any) ([]models.Income, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, *i)
	}
	return incomes, rows.Err()
}
