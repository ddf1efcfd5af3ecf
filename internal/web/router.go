package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lojf/registry/internal/handlers"
	"github.com/lojf/registry/internal/services"
)

// catalogPaths maps URL segments to catalogs.
var catalogPaths = map[string]services.CatalogKind{
	"rutas":     services.KindRoute,
	"grupos":    services.KindGroup,
	"guias":     services.KindGuide,
	"colores":   services.KindColor,
	"turnos":    services.KindShift,
	"inc-tipos": services.KindIncidentType,
}

func Router(conn *gorm.DB, svc *services.Services, log *zap.Logger) http.Handler {
	h := handlers.New(svc, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health(conn))

	r.Route("/api", func(api chi.Router) {
		// Catalogs
		for path, kind := range catalogPaths {
			api.Get("/"+path, h.ListCatalog(kind))
			api.Post("/"+path, h.CreateCatalog(kind))
			api.Put("/"+path+"/{id}", h.UpdateCatalog(kind))
		}

		// Assignments
		api.Post("/inc-grupos", h.CreateAssignment)
		api.Get("/inc-grupos", h.ListAssignments)
		api.Get("/inc-grupos/{id}/qr.png", h.AssignmentQR)
		api.Get("/grupos-dia", h.GroupsOfDay)
		api.Get("/grupos-disponibles", h.Available(services.DimensionGroup))
		api.Get("/rutas-disponibles", h.Available(services.DimensionRoute))

		// Incidents
		api.Post("/incidencias", h.CreateIncidents)
		api.Get("/incidencias-reporte", h.IncidentReport)
		api.Get("/incidencias-reporte.csv", h.IncidentReportCSV)
		api.Get("/incidencias-reporte.xlsx", h.IncidentReportXLSX)

		// Billing
		api.Get("/registros", h.ListBilling)
		api.Post("/registros", h.CreateBilling)
		api.Get("/registros.xlsx", h.BillingXLSX)
		api.Get("/doctores", h.ListDoctors)
		api.Post("/doctores", h.CreateDoctor)
		api.Get("/procedimientos", h.ListProcedures)
		api.Post("/procedimientos", h.CreateProcedure)

		// Users
		api.Post("/login", h.Login)
		api.Get("/usuarios", h.ListUsers)
		api.Post("/usuarios", h.CreateUser)
		api.Put("/usuarios/{usuario}", h.UpdateUser)
	})

	return r
}

// AccessLog writes one structured line per request.
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.Info("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", r.RemoteAddr),
			)
		})
	}
}
