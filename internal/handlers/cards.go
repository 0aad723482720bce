package handlers

import (
	"errors"
	"net/http"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// CardListViewModel is the data passed to the card list view.
type CardListViewModel struct {
	Flash string
	Cards []models.Card
}

// CardFormViewModel is the data passed to the card create/edit form.
type CardFormViewModel struct {
	Flash  string
	IsEdit bool
	Card   *models.Card
}

// ListCards renders all cards.
func (h *Handlers) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.db.ListCards()
	if err != nil {
		h.storageError(w, "list cards", err)
		return
	}
	h.render(w, r, "tarjetas.html", CardListViewModel{
		Flash: h.popFlash(w, r),
		Cards: cards,
	})
}

// AddCardForm renders the form to create a new card.
func (h *Handlers) AddCardForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "tarjeta_form.html", CardFormViewModel{Flash: h.popFlash(w, r)})
}

// AddCard handles the creation of a new card.
func (h *Handlers) AddCard(w http.ResponseWriter, r *http.Request) {
	c, err := cardFromForm(r)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/tarjetas/agregar", http.StatusFound)
		return
	}
	if err := h.db.CreateCard(c); err != nil {
		h.storageError(w, "create card", err)
		return
	}
	h.setFlash(w, "Tarjeta agregada exitosamente")
	http.Redirect(w, r, "/tarjetas", http.StatusFound)
}

// EditCardForm renders the form to edit an existing card.
func (h *Handlers) EditCardForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	card, err := h.db.GetCard(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.storageError(w, "get card", err)
		return
	}
	h.render(w, r, "tarjeta_form.html", CardFormViewModel{
		Flash:  h.popFlash(w, r),
		IsEdit: true,
		Card:   card,
	})
}

// EditCard handles the update of an existing card.
func (h *Handlers) EditCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	c, err := cardFromForm(r)
	if err != nil {
		h.setFlash(w, err.Error())
		http.Redirect(w, r, "/tarjetas/editar/"+r.PathValue("id"), http.StatusFound)
		return
	}
	c.ID = id
	if err := h.db.UpdateCard(c); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.setFlash(w, "La tarjeta no existe")
			http.Redirect(w, r, "/tarjetas", http.StatusFound)
			return
		}
		h.storageError(w, "update card", err)
		return
	}
	h.setFlash(w, "Tarjeta actualizada exitosamente")
	http.Redirect(w, r, "/tarjetas", http.StatusFound)
}

// DeleteCard removes a card. Cards with referencing charges cannot be
// deleted.
func (h *Handlers) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.DeleteCard(id); err != nil {
		switch {
		case errors.Is(err, storage.ErrCardInUse):
			h.setFlash(w, "No se puede eliminar: la tarjeta tiene gastos asociados")
			http.Redirect(w, r, "/tarjetas", http.StatusFound)
		case errors.Is(err, storage.ErrNotFound):
			h.setFlash(w, "La tarjeta no existe")
			http.Redirect(w, r, "/tarjetas", http.StatusFound)
		default:
			h.storageError(w, "delete card", err)
		}
		return
	}
	h.setFlash(w, "Tarjeta eliminada exitosamente")
	http.Redirect(w, r, "/tarjetas", http.StatusFound)
}

func cardFromForm(r *http.Request) (*models.Card, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	c := &models.Card{
		Name:            r.FormValue("nombre"),
		Bank:            r.FormValue("banco"),
		IsSupplementary: r.FormValue("es_adicional") != "",
	}
	return c, c.Validate()
}
