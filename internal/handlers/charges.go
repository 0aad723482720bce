package handlers

import (
	"errors"
	"net/http"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// ChargeItem pairs a card charge with its card name for display.
type ChargeItem struct {
	models.CardCharge
	CardName string
}

// ChargeListViewModel is the data passed to the card charge list view.
type ChargeListViewModel struct {
	Flash   string
	Charges []ChargeItem
}

// ChargeFormViewModel is the data passed to the card charge create/edit form.
type ChargeFormViewModel struct {
	Flash  string
	IsEdit bool
	Charge *models.CardCharge
	Cards  []models.Card
}

// ListCardCharges renders all card charges, most recent first.
func (h *Handlers) ListCardCharges(w http.ResponseWriter, r *http.Request) {
	charges, err := h.db.ListCardCharges()
	if err != nil {
		h.storageError(w, "list card charges", err)
		return
	}
	cards, err := h.db.ListCards()
	if err != nil {
		h.storageError(w, "list cards", err)
		return
	}
	names := make(map[int64]string, len(cards))
	for _, c := range cards {
		names[c.ID] = c.Name
	}

	items := make([]ChargeItem, 0, len(charges))
	for _, c := range charges {
		items = append(items, ChargeItem{CardCharge: c, CardName: names[c.CardID]})
	}

	h.render(w, r, "gastos_tarjeta.html", ChargeListViewModel{
		Flash:   h.popFlash(w, r),
		Charges: items,
	})
}

// AddCardChargeForm renders the form to create a new card charge.
func (h *Handlers) AddCardChargeForm(w http.ResponseWriter, r *http.Request) {
	cards, err := h.db.ListCards()
	if err != nil {
		h.storageError(w, "list cards", err)
		return
	}
	h.render(w, r, "gasto_tarjeta_form.html", ChargeFormViewModel{
		Flash: h.popFlash(w, r),
		Cards: cards,
	})
}

// AddCardCharge handles the creation of a new card charge.
func (h *Handlers) AddCardCharge(w http.ResponseWriter, r *http.Request) {
	c, err := chargeFromForm(r)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/gastos_tarjeta/agregar", http.StatusFound)
		return
	}
	if err := h.db.CreateCardCharge(c); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "La tarjeta seleccionada no existe")
			http.Redirect(w, r, "/gastos_tarjeta/agregar", http.StatusFound)
			return
		}
		h.storageError(w, "create card charge", err)
		return
	}
	h.setFlash(w, "Gasto con tarjeta agregado exitosamente")
	http.Redirect(w, r, "/gastos_tarjeta", http.StatusFound)
}

// EditCardChargeForm renders the form to edit an existing card charge.
func (h *Handlers) EditCardChargeForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	charge, err := h.db.GetCardCharge(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.storageError(w, "get card charge", err)
		return
	}
	cards, err := h.db.ListCards()
	if err != nil {
		h.storageError(w, "list cards", err)
		return
	}
	h.render(w, r, "gasto_tarjeta_form.html", ChargeFormViewModel{
		Flash:  h.popFlash(w, r),
		IsEdit: true,
		Charge: charge,
		Cards:  cards,
	})
}

// EditCardCharge handles the update of an existing card charge.
func (h *Handlers) EditCardCharge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c, err := chargeFromForm(r)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/gastos_tarjeta/editar/"+r.PathValue("id"), http.StatusFound)
		return
	}
	c.ID = id
	if err := h.db.UpdateCardCharge(c); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "El gasto con tarjeta no existe")
			http.Redirect(w, r, "/gastos_tarjeta", http.StatusFound)
			return
		}
		h.storageError(w, "update card charge", err)
		return
	}
	h.setFlash(w, "Gasto con tarjeta actualizado exitosamente")
	http.Redirect(w, r, "/gastos_tarjeta", http.StatusFound)
}

// DeleteCardCharge removes a card charge.
func (h *Handlers) DeleteCardCharge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.DeleteCardCharge(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "El gasto con tarjeta no existe")
			http.Redirect(w, r, "/gastos_tarjeta", http.StatusFound)
			return
		}
		h.storageError(w, "delete card charge", err)
		return
	}
	h.setFlash(w, "Gasto con tarjeta eliminado exitosamente")
	http.Redirect(w, r, "/gastos_tarjeta", http.StatusFound)
}

func chargeFromForm(r *http.Request) (*models.CardCharge, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	date, err := parseDateField(r, "fecha")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountField(r, "monto")
	if err != nil {
		return nil, err
	}
	cardID, err := parseIDField(r, "tarjeta")
	if err != nil {
		return nil, err
	}
	c := &models.CardCharge{
		Date:        date,
		Concept:     r.FormValue("concepto"),
		Amount:      amount,
		Installment: r.FormValue("cuota"),
		CardID:      cardID,
	}
	return c, c.Validate()
}
