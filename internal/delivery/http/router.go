package http

import (
	"net/http"

	"health-booking-api/internal/delivery/http/handler"
	"health-booking-api/internal/delivery/http/middleware"
	"health-booking-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	appointmentHandler *handler.AppointmentHandler
	doctorHandler      *handler.DoctorHandler
	healthIndexHandler *handler.HealthIndexHandler
	userHandler        *handler.UserHandler
	predictHandler     *handler.PredictHandler
	authMiddleware     *middleware.AuthMiddleware
	roleGate           *middleware.RoleGate
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	healthIndexHandler *handler.HealthIndexHandler,
	userHandler *handler.UserHandler,
	predictHandler *handler.PredictHandler,
	authMiddleware *middleware.AuthMiddleware,
	roleGate *middleware.RoleGate,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		appointmentHandler: appointmentHandler,
		doctorHandler:      doctorHandler,
		healthIndexHandler: healthIndexHandler,
		userHandler:        userHandler,
		predictHandler:     predictHandler,
		authMiddleware:     authMiddleware,
		roleGate:           roleGate,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.authMiddleware.Attach)

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Identity-provider lifecycle hook (no role gate; the provider calls it)
	api.HandleFunc("/auth/confirm", r.userHandler.PostConfirmation).Methods(http.MethodPost)

	// Doctor directory (any authenticated principal)
	shared := api.PathPrefix("/doctors").Subrouter()
	shared.Use(r.roleGate.Require(entity.RolePatient, entity.RoleDoctor))
	shared.HandleFunc("", r.doctorHandler.List).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("").Subrouter()
	patient.Use(r.roleGate.Require(entity.RolePatient))
	patient.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/patient", r.appointmentHandler.ListForPatient).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{appointmentId}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	patient.HandleFunc("/patients/{patientId}/health-index", r.healthIndexHandler.GetPatientIndex).Methods(http.MethodGet)
	patient.HandleFunc("/predict", r.predictHandler.Predict).Methods(http.MethodPost)

	// Doctor routes
	doctor := api.PathPrefix("").Subrouter()
	doctor.Use(r.roleGate.Require(entity.RoleDoctor))
	doctor.HandleFunc("/appointments/doctor", r.appointmentHandler.ListForDoctor).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{appointmentId}/confirm", r.appointmentHandler.Confirm).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{appointmentId}/decline", r.appointmentHandler.Decline).Methods(http.MethodPost)
	doctor.HandleFunc("/patients/{patientId}/health-summary", r.healthIndexHandler.GetSummary).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
