package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/santrikita/tpq-backend-go/internal/handler/http/middleware"
	"github.com/santrikita/tpq-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	halaqahHandler HalaqahHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "tpq-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.GetByID)
				r.Put("/{id}", employeeHandler.Update)
				r.Delete("/{id}", employeeHandler.Deactivate)
			})

			r.Route("/halaqah", func(r chi.Router) {
				r.Get("/", halaqahHandler.List)
				r.Post("/", halaqahHandler.Create)
				r.Get("/{id}", halaqahHandler.GetByID)
				r.Put("/{id}", halaqahHandler.Update)
				r.Delete("/{id}", halaqahHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Record)
				r.Get("/halaqah/{halaqahID}", attendanceHandler.ListByHalaqah)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", payrollHandler.ListPayrollRecords)
				r.Get("/summary", payrollHandler.GetPayrollSummary)
				r.Get("/{id}", payrollHandler.GetPayrollRecord)

				r.Route("/rates", func(r chi.Router) {
					r.Get("/", payrollHandler.ListSalaryRates)
					r.Get("/active/{role}", payrollHandler.GetActiveSalaryRate)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/", payrollHandler.CreateSalaryRate)
						r.Delete("/{id}", payrollHandler.DeactivateSalaryRate)
					})
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payrollHandler.GeneratePayroll)
					r.Post("/finalize", payrollHandler.FinalizePayroll)
					r.Delete("/{id}", payrollHandler.DeletePayrollRecord)
				})
			})
		})
	})
	return r
}
