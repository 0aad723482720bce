// Package importer bulk-loads delimited files into the ledger. Each file is
// one batch: the first row is a header naming fields, every following row
// becomes one record, and any malformed row aborts the whole file before
// anything is committed.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// Kind selects which record type a file holds.
type Kind string

const (
	KindExpenses    Kind = "gastos"
	KindIncomes     Kind = "ingresos"
	KindCardCharges Kind = "gastos_tarjeta"
)

// Options carries identity not present in the file formats: the income file
// has no owner column and the card charge file has no card column.
type Options struct {
	UserID int64 // owner for imported income rows
	CardID int64 // card for imported charge rows
}

// Importer loads CSV batches into the ledger repository. It runs outside
// the request path with no session context.
type Importer struct {
	db *storage.DB
}

func New(db *storage.DB) *Importer {
	return &Importer{db: db}
}

// ImportFile reads the delimited file at path and persists every row as one
// record of the given kind, all in a single transaction. Returns the number
// of rows written. Any row failing validation aborts the batch with nothing
// persisted.
func (im *Importer) ImportFile(path string, kind Kind, opts Options) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return 0, err
	}

	switch kind {
	case KindExpenses:
		return im.importExpenses(records)
	case KindIncomes:
		if opts.UserID == 0 {
			return 0, errors.New("income import requires an owner user id")
		}
		return im.importIncomes(records, opts.UserID)
	case KindCardCharges:
		if opts.CardID == 0 {
			return 0, errors.New("card charge import requires a card id")
		}
		return im.importCardCharges(records, opts.CardID)
	default:
		return 0, fmt.Errorf("unknown import kind %q", kind)
	}
}

// record is one data row keyed by header name.
type record struct {
	line   int
	fields map[string]string
}

func (r record) get(name string) (string, error) {
	v, ok := r.fields[name]
	if !ok {
		return "", fmt.Errorf("row %d: missing column %q", r.line, name)
	}
	return v, nil
}

func (r record) optional(name string) string {
	return r.fields[name]
}

func (r record) date(name string) (time.Time, error) {
	v, err := r.get(name)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("row %d: invalid date %q: %w", r.line, v, err)
	}
	return d, nil
}

func (r record) amount(name string) (decimal.Decimal, error) {
	v, err := r.get(name)
	if err != nil {
		return decimal.Zero, err
	}
	a, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("row %d: invalid amount %q: %w", r.line, v, err)
	}
	return a, nil
}

func (r record) id(name string) (int64, error) {
	v, err := r.get(name)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid id %q: %w", r.line, v, err)
	}
	return id, nil
}

func readRecords(f io.Reader) ([]record, error) {
	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("import file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var records []record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		records = append(records, record{line: line, fields: fields})
	}
	return records, nil
}

// Expense files carry: fecha,importe,concepto,categoria_id,detalle
func (im *Importer) importExpenses(records []record) (int, error) {
	expenses := make([]models.Expense, 0, len(records))
	for _, r := range records {
		date, err := r.date("fecha")
		if err != nil {
			return 0, err
		}
		amount, err := r.amount("importe")
		if err != nil {
			return 0, err
		}
		concept, err := r.get("concepto")
		if err != nil {
			return 0, err
		}
		categoryID, err := r.id("categoria_id")
		if err != nil {
			return 0, err
		}
		expenses = append(expenses, models.Expense{
			Date:       date,
			Amount:     amount,
			Concept:    concept,
			CategoryID: categoryID,
			Note:       r.optional("detalle"),
		})
	}
	if err := im.db.InsertExpenses(expenses); err != nil {
		return 0, fmt.Errorf("import expenses: %w", err)
	}
	return len(expenses), nil
}

// Income files carry: fecha,importe,concepto,detalle
func (im *Importer) importIncomes(records []record, userID int64) (int, error) {
	incomes := make([]models.Income, 0, len(records))
	for _, r := range records {
		date, err := r.date("fecha")
		if err != nil {
			return 0, err
		}
		amount, err := r.amount("importe")
		if err != nil {
			return 0, err
		}
		concept, err := r.get("concepto")
		if err != nil {
			return 0, err
		}
		incomes = append(incomes, models.Income{
			Date:    date,
			Amount:  amount,
			Concept: concept,
			Detail:  r.optional("detalle"),
			UserID:  userID,
		})
	}
	if err := im.db.InsertIncomes(incomes); err != nil {
		return 0, fmt.Errorf("import incomes: %w", err)
	}
	return len(incomes), nil
}

// Card charge files carry: fecha,concepto,monto,cuota
func (im *Importer) importCardCharges(records []record, cardID int64) (int, error) {
	charges := make([]models.CardCharge, 0, len(records))
	for _, r := range records {
		date, err := r.date("fecha")
		if err != nil {
			return 0, err
		}
		concept, err := r.get("concepto")
		if err != nil {
			return 0, err
		}
		amount, err := r.amount("monto")
		if err != nil {
			return 0, err
		}
		charges = append(charges, models.CardCharge{
			Date:        date,
			Concept:     concept,
			Amount:      amount,
			Installment: r.optional("cuota"),
			CardID:      cardID,
		})
	}
	if err := im.db.InsertCardCharges(charges); err != nil {
		return 0, fmt.Errorf("import card charges: %w", err)
	}
	return len(charges), nil
}
