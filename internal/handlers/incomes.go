package handlers

import (
	"errors"
	"net/http"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// IncomeListViewModel is the data passed to the income list view.
type IncomeListViewModel struct {
	Flash   string
	Incomes []models.Income
}

// IncomeFormViewModel is the data passed to the income create/edit form.
type IncomeFormViewModel struct {
	Flash  string
	IsEdit bool
	Income *models.Income
}

// ListIncomes renders the acting user's income rows, most recent first.
// Income is the only owner-scoped resource.
func (h *Handlers) ListIncomes(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	incomes, err := h.db.ListIncomes(user.ID)
	if err != nil {
		h.storageError(w, "list incomes", err)
		return
	}
	h.render(w, r, "ingresos.html", IncomeListViewModel{
		Flash:   h.popFlash(w, r),
		Incomes: incomes,
	})
}

// AddIncomeForm renders the form to create a new income row.
func (h *Handlers) AddIncomeForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "ingreso_form.html", IncomeFormViewModel{Flash: h.popFlash(w, r)})
}

// AddIncome handles the creation of a new income row. The owner is always
// the acting user.
func (h *Handlers) AddIncome(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	in, err := incomeFromForm(r, user.ID)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/ingresos/agregar", http.StatusFound)
		return
	}
	if err := h.db.CreateIncome(in); err != nil {
		h.storageError(w, "create income", err)
		return
	}
	h.setFlash(w, "Ingreso agregado exitosamente")
	http.Redirect(w, r, "/ingresos", http.StatusFound)
}

// EditIncomeForm renders the form to edit one of the user's income rows.
func (h *Handlers) EditIncomeForm(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	income, err := h.db.GetIncome(id, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.storageError(w, "get income", err)
		return
	}
	h.render(w, r, "ingreso_form.html", IncomeFormViewModel{
		Flash:  h.popFlash(w, r),
		IsEdit: true,
		Income: income,
	})
}

// EditIncome handles the update of one of the user's income rows.
func (h *Handlers) EditIncome(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	in, err := incomeFromForm(r, user.ID)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/ingresos/editar/"+r.PathValue("id"), http.StatusFound)
		return
	}
	in.ID = id
	if err := h.db.UpdateIncome(in); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "El ingreso no existe")
			http.Redirect(w, r, "/ingresos", http.StatusFound)
			return
		}
		h.storageError(w, "update income", err)
		return
	}
	h.setFlash(w, "Ingreso actualizado exitosamente")
	http.Redirect(w, r, "/ingresos", http.StatusFound)
}

// DeleteIncome removes one of the user's income rows.
func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.DeleteIncome(id, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "El ingreso no existe")
			http.Redirect(w, r, "/ingresos", http.StatusFound)
			return
		}
		h.storageError(w, "delete income", err)
		return
	}
	h.setFlash(w, "Ingreso eliminado exitosamente")
	http.Redirect(w, r, "/ingresos", http.StatusFound)
}

func incomeFromForm(r *http.Request, userID int64) (*models.Income, error) {
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
	in := &models.Income{
		Date:    date,
		Amount:  amount,
		Concept: r.FormValue("concepto"),
		Detail:  r.FormValue("detalle"),
		UserID:  userID,
	}
	return in, in.Validate()
}
