package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/MaxiAdad31/gastos/internal/models"
)

const expenseColumns = "id, date, amount, concept, category_id, note"

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var (
		e    models.Expense
		date string
		note sql.NullString
	)
	if err := row.Scan(&e.ID, &date, &e.Amount, &e.Concept, &e.CategoryID, &note); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	e.Date = d
	e.Note = note.String
	return &e, nil
}

// CreateExpense inserts a new expense and assigns its id. The category must
// already exist.
func (db *DB) CreateExpense(e *models.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	result, err := db.conn.Exec(
		"INSERT INTO expenses (date, amount, concept, category_id, note) VALUES (?, ?, ?, ?, ?)",
		formatDate(e.Date), e.Amount.String(), e.Concept, e.CategoryID, nullable(e.Note),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	e.ID, err = result.LastInsertId()
	return err
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(id int64) (*models.Expense, error) {
	row := db.conn.QueryRow("SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// ListExpenses returns all expenses, most recent first.
func (db *DB) ListExpenses() ([]models.Expense, error) {
	return db.queryExpenses("SELECT " + expenseColumns + " FROM expenses ORDER BY date DESC, id DESC")
}

// ListExpensesByCategory returns the expenses referencing a category,
// most recent first.
func (db *DB) ListExpensesByCategory(categoryID int64) ([]models.Expense, error) {
	return db.queryExpenses(
		"SELECT "+expenseColumns+" FROM expenses WHERE category_id = ? ORDER BY date DESC, id DESC",
		categoryID,
	)
}

// ListExpensesBetween returns the expenses with date in [from, to], oldest
// first. Bounds are inclusive calendar dates.
func (db *DB) ListExpensesBetween(from, to time.Time) ([]models.Expense, error) {
	return db.queryExpenses(
		"SELECT "+expenseColumns+" FROM expenses WHERE date >= ? AND date <= ? ORDER BY date, id",
		formatDate(from), formatDate(to),
	)
}

// RecentExpenses returns the n most recently dated expenses, ties broken by
// insertion id descending.
func (db *DB) RecentExpenses(n int) ([]models.Expense, error) {
	return db.queryExpenses(
		"SELECT "+expenseColumns+" FROM expenses ORDER BY date DESC, id DESC LIMIT ?", n,
	)
}

// UpdateExpense replaces all mutable fields of an existing expense.
func (db *DB) UpdateExpense(e *models.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := db.conn.Exec(
		"UPDATE expenses SET date = ?, amount = ?, concept = ?, category_id = ?, note = ? WHERE id = ?",
		formatDate(e.Date), e.Amount.String(), e.Concept, e.CategoryID, nullable(e.Note), e.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return checkRowsAffected(res)
}

// DeleteExpense removes an expense. Deletion is immediate and permanent.
func (db *DB) DeleteExpense(id int64) error {
	res, err := db.conn.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (db *DB) queryExpenses(query string, args ...any) ([]models.Expense, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}
	return expenses, rows.Err()
}

// nullable maps an empty optional field to NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
