package main

import (
	"net/http"

	"github.com/MaxiAdad31/gastos/internal/handlers"
)

// setupRouter wires every route. All ledger routes sit behind the auth
// middleware; only login, registration and static assets are open.
func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /registro", h.RegisterForm)
	mux.HandleFunc("POST /registro", h.Register)
	mux.HandleFunc("GET /logout", h.Logout)

	protected := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, h.AuthMiddleware(fn))
	}

	protected("GET /{$}", h.Dashboard)

	protected("GET /gastos", h.ListExpenses)
	protected("GET /gastos/agregar", h.AddExpenseForm)
	protected("POST /gastos/agregar", h.AddExpense)
	protected("GET /editar/{id}", h.EditExpenseForm)
	protected("POST /editar/{id}", h.EditExpense)
	protected("POST /eliminar/{id}", h.DeleteExpense)

	protected("GET /categorias", h.ListCategories)
	protected("GET /categorias/agregar", h.AddCategoryForm)
	protected("POST /categorias/agregar", h.AddCategory)
	protected("GET /categorias/editar/{id}", h.EditCategoryForm)
	protected("POST /categorias/editar/{id}", h.EditCategory)
	protected("POST /categorias/eliminar/{id}", h.DeleteCategory)

	protected("GET /ingresos", h.ListIncomes)
	protected("GET /ingresos/agregar", h.AddIncomeForm)
	protected("POST /ingresos/agregar", h.AddIncome)
	protected("GET /ingresos/editar/{id}", h.EditIncomeForm)
	protected("POST /ingresos/editar/{id}", h.EditIncome)
	protected("POST /ingresos/eliminar/{id}", h.DeleteIncome)

	protected("GET /gastos_tarjeta", h.ListCardCharges)
	protected("GET /gastos_tarjeta/agregar", h.AddCardChargeForm)
	protected("POST /gastos_tarjeta/agregar", h.AddCardCharge)
	protected("GET /gastos_tarjeta/editar/{id}", h.EditCardChargeForm)
	protected("POST /gastos_tarjeta/editar/{id}", h.EditCardCharge)
	protected("POST /gastos_tarjeta/eliminar/{id}", h.DeleteCardCharge)

	protected("GET /tarjetas", h.ListCards)
	protected("GET /tarjetas/agregar", h.AddCardForm)
	protected("POST /tarjetas/agregar", h.AddCard)
	protected("GET /tarjetas/editar/{id}", h.EditCardForm)
	protected("POST /tarjetas/editar/{id}", h.EditCard)
	protected("POST /tarjetas/eliminar/{id}", h.DeleteCard)

	return mux
}
