package storage

import (
	"database/sql"
	"errors"

	"github.com/MaxiAdad31/gastos/internal/models"
)

// CreateCard inserts a new card and assigns its id.
func (db *DB) CreateCard(c *models.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}

	result, err := db.conn.Exec(
		"INSERT INTO cards (name, bank, is_supplementary) VALUES (?, ?, ?)",
		c.Name, c.Bank, c.IsSupplementary,
	)
	if err != nil {
		return err
	}
	c.ID, err = result.LastInsertId()
	return err
}

// GetCard retrieves a single card by ID.
func (db *DB) GetCard(id int64) (*models.Card, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, bank, is_supplementary FROM cards WHERE id = ?", id,
	)

	var c models.Card
	if err := row.Scan(&c.ID, &c.Name, &c.Bank, &c.IsSupplementary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListCards returns all cards ordered by name.
func (db *DB) ListCards() ([]models.Card, error) {
	rows, err := db.conn.Query("SELECT id, name, bank, is_supplementary FROM cards ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.Bank, &c.IsSupplementary); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// UpdateCard replaces all mutable fields of an existing card.
func (db *DB) UpdateCard(c *models.Card) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := db.conn.Exec(
		"UPDATE cards SET name = ?, bank = ?, is_supplementary = ? WHERE id = ?",
		c.Name, c.Bank, c.IsSupplementary, c.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// DeleteCard removes a card.
func (db *DB) DeleteCard(id int64) error {
	res, err := db.conn.Exec("DELETE FROM cards WHERE id = ?", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCardInUse
		}
		return err
	}
	return checkRowsAffected(res)
}
