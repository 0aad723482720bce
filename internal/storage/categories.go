package storage

import (
	"database/sql"
	"errors"

	"github.com/MaxiAdad31/gastos/internal/models"
)

// CreateCategory inserts a new category and returns it with its assigned id.
func (db *DB) CreateCategory(name string) (*models.Category, error) {
	c := &models.Category{Name: name}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result, err := db.conn.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// GetCategory retrieves a single category by ID.
func (db *DB) GetCategory(id int64) (*models.Category, error) {
	row := db.conn.QueryRow("SELECT id, name FROM categories WHERE id = ?", id)

	var c models.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListCategories returns all categories ordered by name.
func (db *DB) ListCategories() ([]models.Category, error) {
	rows, err := db.conn.Query("SELECT id, name FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory replaces the category's name.
func (db *DB) UpdateCategory(c *models.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := db.conn.Exec("UPDATE categories SET name = ? WHERE id = ?", c.Name, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return err
	}
	return checkRowsAffected(res)
}

// DeleteCategory removes a category. Deletion is rejected with
// ErrCategoryInUse while expenses still reference it.
func (db *DB) DeleteCategory(id int64) error {
	var refs int
	if err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM expenses WHERE category_id = ?", id,
	).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrCategoryInUse
	}

	res, err := db.conn.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}
