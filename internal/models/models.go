package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used throughout: forms, CSV files
// and the database all carry dates as YYYY-MM-DD with no time component.
const DateLayout = "2006-01-02"

var (
	ErrEmptyConcept   = errors.New("concept is required")
	ErrEmptyName      = errors.New("name is required")
	ErrEmptyBank      = errors.New("bank is required")
	ErrZeroDate       = errors.New("date is required")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrMissingRef     = errors.New("missing foreign key reference")
)

// User represents a user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category groups expenses. Names are unique.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// Expense is a single household expense. Expenses are shared across the
// household and carry no owning user.
type Expense struct {
	ID         int64           `json:"id"`
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Concept    string          `json:"concept"`
	CategoryID int64           `json:"category_id"`
	Note       string          `json:"note,omitempty"`
}

func (e *Expense) Validate() error {
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if e.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if e.Concept == "" {
		return ErrEmptyConcept
	}
	if e.CategoryID == 0 {
		return ErrMissingRef
	}
	return nil
}

// Income is a single income record, owned by exactly one user.
type Income struct {
	ID      int64           `json:"id"`
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	Concept string          `json:"concept"`
	Detail  string          `json:"detail,omitempty"`
	UserID  int64           `json:"user_id"`
}

func (i *Income) Validate() error {
	if i.Date.IsZero() {
		return ErrZeroDate
	}
	if i.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if i.Concept == "" {
		return ErrEmptyConcept
	}
	if i.UserID == 0 {
		return ErrMissingRef
	}
	return nil
}

// Card is a credit card charges can be booked against.
type Card struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Bank            string `json:"bank"`
	IsSupplementary bool   `json:"is_supplementary"`
}

func (c *Card) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Bank == "" {
		return ErrEmptyBank
	}
	return nil
}

// CardCharge is a single credit-card charge. Installment is a free-form
// label such as "3/12" and may be empty.
type CardCharge struct {
	ID          int64           `json:"id"`
	Date        time.Time       `json:"date"`
	Concept     string          `json:"concept"`
	Amount      decimal.Decimal `json:"amount"`
	Installment string          `json:"installment,omitempty"`
	CardID      int64           `json:"card_id"`
}

func (c *CardCharge) Validate() error {
	if c.Date.IsZero() {
		return ErrZeroDate
	}
	if c.Concept == "" {
		return ErrEmptyConcept
	}
	if c.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if c.CardID == 0 {
		return ErrMissingRef
	}
	return nil
}
