package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/buildpro/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

type Handlers struct {
	Worker     WorkerHandler
	Attendance AttendanceHandler
	Client     ClientHandler
	Quotation  QuotationHandler
	Advance    AdvanceHandler
	Payroll    PayrollHandler
	Export     ExportHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "backoffice"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.Worker.List)
			r.Post("/", h.Worker.Create)
			r.Get("/{id}", h.Worker.Get)
			r.Put("/{id}", h.Worker.Update)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.List)
			r.Post("/", h.Attendance.Record)
			r.Put("/{id}", h.Attendance.Update)
			r.Delete("/{id}", h.Attendance.Delete)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.Client.List)
			r.Post("/", h.Client.Create)
			r.Get("/{id}", h.Client.Get)
			r.Put("/{id}", h.Client.Update)
			r.Delete("/{id}", h.Client.Delete)
		})

		r.Route("/quotations", func(r chi.Router) {
			r.Get("/", h.Quotation.List)
			r.Post("/", h.Quotation.Create)
			r.Post("/preview", h.Quotation.PreviewTotals)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Quotation.Get)
				r.Put("/", h.Quotation.Update)
				r.Patch("/status", h.Quotation.UpdateStatus)
				r.Get("/versions", h.Quotation.ListVersions)
				r.Post("/export", h.Export.ExportQuotation)
			})
		})

		r.Route("/advances", func(r chi.Router) {
			r.Get("/", h.Advance.List)
			r.Post("/", h.Advance.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Advance.Get)
				r.Post("/approve", h.Advance.Approve)
				r.Post("/reject", h.Advance.Reject)
				r.Post("/adjust", h.Advance.Adjust)
				r.Post("/schedule", h.Advance.CreateSchedule)
				r.Post("/installments/{installmentID}/pay", h.Advance.PayInstallment)
			})
		})

		r.Route("/deductions", func(r chi.Router) {
			r.Get("/", h.Payroll.ListDeductions)
			r.Post("/", h.Payroll.CreateDeduction)
			r.Delete("/{id}", h.Payroll.DeleteDeduction)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Post("/calculate", h.Payroll.CalculatePayment)
			r.Post("/calculate-batch", h.Payroll.CalculateBatch)
			r.Post("/validate", h.Payroll.ValidatePayment)
			r.Post("/generate", h.Payroll.GeneratePayments)
			r.Post("/mark-paid", h.Payroll.MarkPaid)
			r.Get("/", h.Payroll.ListPaymentRecords)
			r.Get("/{id}", h.Payroll.GetPaymentRecord)
		})

		r.Route("/exports", func(r chi.Router) {
			r.Post("/payments", h.Export.ExportPayments)
			r.Get("/files/*", h.Export.Download)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
