package handlers

import (
	"errors"
	"net/http"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// CategoryListViewModel is the data passed to the category list view.
type CategoryListViewModel struct {
	Flash      string
	Categories []models.Category
}

// CategoryFormViewModel is the data passed to the category create/edit form.
type CategoryFormViewModel struct {
	Flash    string
	IsEdit   bool
	Category *models.Category
}

// ListCategories renders all categories.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.db.ListCategories()
	if err != nil {
		h.storageError(w, "list categories", err)
		return
	}
	h.render(w, r, "categorias.html", CategoryListViewModel{
		Flash:      h.popFlash(w, r),
		Categories: categories,
	})
}

// AddCategoryForm renders the form to create a new category.
func (h *Handlers) AddCategoryForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "categoria_form.html", CategoryFormViewModel{Flash: h.popFlash(w, r)})
}

// AddCategory handles the creation of a new category.
func (h *Handlers) AddCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, "Solicitud inválida")
		http.Redirect(w, r, "/categorias/agregar", http.StatusFound)
		return
	}
	if _, err := h.db.CreateCategory(r.FormValue("nombre")); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyName):
			h.setFlash(w, "El nombre es obligatorio")
			http.Redirect(w, r, "/categorias/agregar", http.StatusFound)
		case errors.Is(err, storage.ErrDuplicateCategory):
			h.setFlash(w, "Ya existe una categoría con ese nombre")
			http.Redirect(w, r, "/categorias/agregar", http.StatusFound)
		default:
			h.storageError(w, "create category", err)
		}
		return
	}
	h.setFlash(w, "Categoría agregada exitosamente")
	http.Redirect(w, r, "/categorias", http.StatusFound)
}

// EditCategoryForm renders the form to edit an existing category.
func (h *Handlers) EditCategoryForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	category, err := h.db.GetCategory(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.storageError(w, "get category", err)
		return
	}
	h.render(w, r, "categoria_form.html", CategoryFormViewModel{
		Flash:    h.popFlash(w, r),
		IsEdit:   true,
		Category: category,
	})
}

// EditCategory handles the update of an existing category.
func (h *Handlers) EditCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.setFlash(w, "Solicitud inválida")
		http.Redirect(w, r, "/categorias/editar/"+r.PathValue("id"), http.StatusFound)
		return
	}
	c := &models.Category{ID: id, Name: r.FormValue("nombre")}
	if err := h.db.UpdateCategory(c); err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyName):
			h.setFlash(w, "El nombre es obligatorio")
			http.Redirect(w, r, "/categorias/editar/"+r.PathValue("id"), http.StatusFound)
		case errors.Is(err, storage.ErrDuplicateCategory):
			h.setFlash(w, "Ya existe una categoría con ese nombre")
			http.Redirect(w, r, "/categorias/editar/"+r.PathValue("id"), http.StatusFound)
		case errors.Is(err, storage.ErrNotFound):
			h.setFlash(w, "La categoría no existe")
			http.Redirect(w, r, "/categorias", http.StatusFound)
		default:
			h.storageError(w, "update category", err)
		}
		return
	}
	h.setFlash(w, "Categoría actualizada exitosamente")
	http.Redirect(w, r, "/categorias", http.StatusFound)
}

// DeleteCategory removes a category. Categories with referencing expenses
// cannot be deleted.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.db.DeleteCategory(id); err != nil {
		switch {
		case errors.Is(err, storage.ErrCategoryInUse):
			h.setFlash(w, "No se puede eliminar: la categoría tiene gastos asociados")
			http.Redirect(w, r, "/categorias", http.StatusFound)
		case errors.Is(err, storage.ErrNotFound):
			h.setFlash(w, "La categoría no existe")
			http.Redirect(w, r, "/categorias", http.StatusFound)
		default:
			h.storageError(w, "delete category", err)
		}
		return
	}
	h.setFlash(w, "Categoría eliminada exitosamente")
	http.Redirect(w, r, "/categorias", http.StatusFound)
}
