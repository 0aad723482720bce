package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// ExpenseItem pairs an expense with its category name for display.
type ExpenseItem struct {
	models.Expense
	CategoryName string
}

// ExpenseListViewModel is the data passed to the expense list view.
type ExpenseListViewModel struct {
	Flash    string
	Expenses []ExpenseItem
}

// ExpenseFormViewModel is the data passed to the expense create/edit form.
type ExpenseFormViewModel struct {
	Flash      string
	IsEdit     bool
	Expense    *models.Expense
	Categories []models.Category
}

// ListExpenses renders all expenses, most recent first.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.db.ListExpenses()
	if err != nil {
		h.storageError(w, "list expenses", err)
		return
	}
	names, err := h.categoryNames()
	if err != nil {
		h.storageError(w, "list categories", err)
		return
	}

	items := make([]ExpenseItem, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, ExpenseItem{Expense: e, CategoryName: names[e.CategoryID]})
	}

	h.render(w, r, "gastos.html", ExpenseListViewModel{
		Flash:    h.popFlash(w, r),
		Expenses: items,
	})
}

// AddExpenseForm renders the form to create a new expense.
func (h *Handlers) AddExpenseForm(w http.ResponseWriter, r *http.Request) {
	categories, err := h.db.ListCategories()
	if err != nil {
		h.storageError(w, "list categories", err)
		return
	}
	h.render(w, r, "gasto_form.html", ExpenseFormViewModel{
		Flash:      h.popFlash(w, r),
		Categories: categories,
	})
}

// AddExpense handles the creation of a new expense.
func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	e, err := expenseFromForm(r)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/gastos/agregar", http.StatusFound)
		return
	}
	if err := h.db.CreateExpense(e); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "La categoría seleccionada no existe")
			http.Redirect(w, r, "/gastos/agregar", http.StatusFound)
			return
		}
		h.storageError(w, "create expense", err)
		return
	}
	h.setFlash(w, "Gasto agregado exitosamente")
	http.Redirect(w, r, "/gastos", http.StatusFound)
}

// EditExpenseForm renders the form to edit an existing expense.
func (h *Handlers) EditExpenseForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	expense, err := h.db.GetExpense(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.storageError(w, "get expense", err)
		return
	}
	categories, err := h.db.ListCategories()
	if err != nil {
		h.storageError(w, "list categories", err)
		return
	}
	h.render(w, r, "gasto_form.html", ExpenseFormViewModel{
		Flash:      h.popFlash(w, r),
		IsEdit:     true,
		Expense:    expense,
		Categories: categories,
	})
}

// EditExpense handles the update of an existing expense. All mutable fields
// are replaced with the submitted values.
func (h *Handlers) EditExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	e, err := expenseFromForm(r)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/editar/"+r.PathValue("id"), http.StatusFound)
		return
	}
	e.ID = id
	if err := h.db.UpdateExpense(e); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "El gasto no existe")
			http.Redirect(w, r, "/gastos", http.StatusFound)
			return
		}
		h.storageError(w, "update expense", err)
		return
	}
	h.setFlash(w, "Gasto actualizado exitosamente")
	http.Redirect(w, r, "/", http.StatusFound)
}

// DeleteExpense removes an expense. Deletion is immediate and permanent.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.DeleteExpense(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "El gasto no existe")
			http.Redirect(w, r, "/gastos", http.StatusFound)
			return
		}
		h.storageError(w, "delete expense", err)
		return
	}
	h.setFlash(w, "Gasto eliminado exitosamente")
	http.Redirect(w, r, "/", http.StatusFound)
}

func expenseFromForm(r *http.Request) (*models.Expense, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	date, err := parseDateField(r, "fecha")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField(r, "importe")
	if err != nil {
		return nil, err
	}
	categoryID, err := parseIDField(r, "categoria")
	if err != nil {
		return nil, err
	}
	e := &models.Expense{
		Date:       date,
		Amount:     amount,
		Concept:    r.FormValue("concepto"),
		CategoryID: categoryID,
		Note:       r.FormValue("informacion_adicional"),
	}
	return e, e.Validate()
}

// categoryNames returns an id->name lookup for list displays.
func (h *Handlers) categoryNames() (map[int64]string, error) {
	categories, err := h.db.ListCategories()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// storageError surfaces an unexpected repository failure as a generic 500.
func (h *Handlers) storageError(w http.ResponseWriter, op string, err error) {
	slog.Error(op, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
