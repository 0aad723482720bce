package storage

import (
	"database/sql"
	"errors"

	"github.com/MaxiAdad31/gastos/internal/models"
)

const chargeColumns = "id, date, concept, amount, installment, card_id"

func scanCharge(row interface{ Scan(...any) error }) (*models.CardCharge, error) {
	var (
		c           models.CardCharge
		date        string
		installment sql.NullString
	)
	if err := row.Scan(&c.ID, &date, &c.Concept, &c.Amount, &installment, &c.CardID); err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	c.Date = d
	c.Installment = installment.String
	return &c, nil
}

// CreateCardCharge inserts a new card charge. The card must already exist.
func (db *DB) CreateCardCharge(c *models.CardCharge) error {
	if err := c.Validate(); err != nil {
		return err
	}

	result, err := db.conn.Exec(
		"INSERT INTO card_charges (date, concept, amount, installment, card_id) VALUES (?, ?, ?, ?, ?)",
		formatDate(c.Date), c.Concept, c.Amount.String(), nullable(c.Installment), c.CardID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	c.ID, err = result.LastInsertId()
	return err
}

// GetCardCharge retrieves a single card charge by ID.
func (db *DB) GetCardCharge(id int64) (*models.CardCharge, error) {
	row := db.conn.QueryRow("SELECT "+chargeColumns+" FROM card_charges WHERE id = ?", id)
	c, err := scanCharge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// ListCardCharges returns all card charges, most recent first.
func (db *DB) ListCardCharges() ([]models.CardCharge, error) {
	return db.queryCharges("SELECT " + chargeColumns + " FROM card_charges ORDER BY date DESC, id DESC")
}

// ListCardChargesByCard returns the charges booked against a card,
// most recent first.
func (db *DB) ListCardChargesByCard(cardID int64) ([]models.CardCharge, error) {
	return db.queryCharges(
		"SELECT "+chargeColumns+" FROM card_charges WHERE card_id = ? ORDER BY date DESC, id DESC",
		cardID,
	)
}

// UpdateCardCharge replaces all mutable fields of an existing charge.
func (db *DB) UpdateCardCharge(c *models.CardCharge) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := db.conn.Exec(
		"UPDATE card_charges SET date = ?, concept = ?, amount = ?, installment = ?, card_id = ? WHERE id = ?",
		formatDate(c.Date), c.Concept, c.Amount.String(), nullable(c.Installment), c.CardID, c.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return err
	}
	return checkRowsAffected(res)
}

// DeleteCardCharge removes a card charge.
func (db *DB) DeleteCardCharge(id int64) error {
	res, err := db.conn.Exec("DELETE FROM card_charges WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (db *DB) queryCharges(query string, args ...any) ([]models.CardCharge, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []models.CardCharge
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, err
		}
		charges = append(charges, *c)
	}
	return charges, rows.Err()
}
