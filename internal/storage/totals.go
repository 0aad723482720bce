package storage

import "github.com/shopspring/decimal"

// TotalExpenses returns the all-time sum of expense amounts, zero when no
// rows exist. Amounts are stored as decimal text and summed in Go so the
// result is exact.
func (db *DB) TotalExpenses() (decimal.Decimal, error) {
	return db.sumAmounts("SELECT amount FROM expenses")
}

// TotalIncomes returns the all-time sum of income amounts across all users,
// zero when no rows exist.
func (db *DB) TotalIncomes() (decimal.Decimal, error) {
	return db.sumAmounts("SELECT amount FROM incomes")
}

func (db *DB) sumAmounts(query string) (decimal.Decimal, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}
