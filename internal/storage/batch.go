package storage

import (
	"fmt"

	"github.com/MaxiAdad31/gastos/internal/models"
)

// InsertExpenses writes a batch of expenses in a single transaction.
// The first failing row rolls back the whole batch.
func (db *DB) InsertExpenses(expenses []models.Expense) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO expenses (date, amount, concept, category_id, note) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range expenses {
		e := &expenses[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("expense %d: %w", i+1, err)
		}
		if _, err := stmt.Exec(
			formatDate(e.Date), e.Amount.String(), e.Concept, e.CategoryID, nullable(e.Note),
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("expense %d: category %d: %w", i+1, e.CategoryID, ErrNotFound)
			}
			return fmt.Errorf("expense %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// InsertIncomes writes a batch of income rows in a single transaction.
func (db *DB) InsertIncomes(incomes []models.Income) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO incomes (date, amount, concept, detail, user_id) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range incomes {
		in := &incomes[i]
		if err := in.Validate(); err != nil {
			return fmt.Errorf("income %d: %w", i+1, err)
		}
		if _, err := stmt.Exec(
			formatDate(in.Date), in.Amount.String(), in.Concept, nullable(in.Detail), in.UserID,
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("income %d: user %d: %w", i+1, in.UserID, ErrNotFound)
			}
			return fmt.Errorf("income %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}

// InsertCardCharges writes a batch of card charges in a single transaction.
func (db *DB) InsertCardCharges(charges []models.CardCharge) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO card_charges (date, concept, amount, installment, card_id) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range charges {
		c := &charges[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("card charge %d: %w", i+1, err)
		}
		if _, err := stmt.Exec(
			formatDate(c.Date), c.Concept, c.Amount.String(), nullable(c.Installment), c.CardID,
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("card charge %d: card %d: %w", i+1, c.CardID, ErrNotFound)
			}
			return fmt.Errorf("card charge %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
