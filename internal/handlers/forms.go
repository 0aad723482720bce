package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxiAdad31/gastos/internal/models"
)

// parseDateField reads a YYYY-MM-DD form field, defaulting to today when
// the field is blank.
func parseDateField(r *http.Request, name string) (time.Time, error) {
	v := r.FormValue(name)
	if v == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", v)
	}
	return d, nil
}

// parseAmountField reads a decimal form field; it must parse and must not
// be negative.
func parseAmountField(r *http.Request, name string) (decimal.Decimal, error) {
	v := r.FormValue(name)
	a, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe inválido %q", v)
	}
	if a.IsNegative() {
		return decimal.Zero, fmt.Errorf("el importe no puede ser negativo")
	}
	return a, nil
}

// parseIDField reads a numeric foreign-key selector.
func parseIDField(r *http.Request, name string) (int64, error) {
	v := r.FormValue(name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("selección inválida")
	}
	return id, nil
}

// pathID reads the {id} path value.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido")
	}
	return id, nil
}
