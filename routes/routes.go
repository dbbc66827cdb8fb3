package routes

import (
	"net/http"

	"abinterior/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type Handlers struct {
	Auth      *handlers.AuthHandler
	Customer  *handlers.CustomerHandler
	Labour    *handlers.LabourHandler
	Transfer  *handlers.TransferHandler
	Statement *handlers.StatementHandler
	Profile   *handlers.ProfileHandler
}

func SetupRoutes(h Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(withCORS)
	r.Use(handlers.Recoverer)

	r.Post("/login", h.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAuth)

		// Customer routes
		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.Customer.ListCustomers)
			r.Post("/", h.Customer.CreateCustomer)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Customer.GetCustomer)
				r.Put("/", h.Customer.UpdateCustomer)
				r.Delete("/", h.Customer.DeleteCustomer)

				r.Post("/transactions", h.Customer.AddTransaction)
				r.Put("/transactions/{txID}", h.Customer.UpdateTransaction)
				r.Delete("/transactions/{txID}", h.Customer.DeleteTransaction)

				r.Post("/summary", h.Customer.Summary)
				r.Get("/statement", h.Statement.Statement)
			})
		})

		r.Get("/analytics", h.Customer.Analytics)

		// Import / export
		r.Get("/export/csv", h.Transfer.ExportCSV)
		r.Get("/export/json", h.Transfer.ExportJSON)
		r.Get("/export/xlsx", h.Transfer.ExportXLSX)
		r.Post("/import/csv", h.Transfer.ImportCSV)
		r.Post("/import/json", h.Transfer.ImportJSON)

		// Labour routes
		r.Route("/labour", func(r chi.Router) {
			r.Get("/", h.Labour.ListLabours)
			r.Post("/", h.Labour.CreateLabour)
			r.Delete("/{id}", h.Labour.DeleteLabour)
			r.Post("/{id}/payments", h.Labour.AddPayment)
			r.Delete("/{id}/payments/{paymentID}", h.Labour.DeletePayment)
		})

		// Business profile
		r.Get("/profile", h.Profile.GetProfile)
		r.Post("/profile", h.Profile.SaveProfile)
	})

	return r
}
