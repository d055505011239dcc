package http

import (
	"net/http"

	"hms-backend/internal/delivery/http/handler"
	"hms-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router         *mux.Router
	authHandler    *handler.AuthHandler
	patientHandler *handler.PatientAppointmentHandler
	doctorHandler  *handler.DoctorAppointmentHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientAppointmentHandler,
	doctorHandler *handler.DoctorAppointmentHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		authHandler:    authHandler,
		patientHandler: patientHandler,
		doctorHandler:  doctorHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Authenticated routes (any role)
	authed := api.PathPrefix("").Subrouter()
	authed.Use(r.authMiddleware.Authenticate)
	authed.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authed.HandleFunc("/doctors", r.adminHandler.ListDoctors).Methods(http.MethodGet)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/appointments", r.patientHandler.BookAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", r.patientHandler.ListMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments/{id}", r.patientHandler.UpdateAppointment).Methods(http.MethodPut)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/appointments", r.doctorHandler.ListMyAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}", r.doctorHandler.UpdateAppointment).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments/{id}/treatment", r.doctorHandler.GetTreatment).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.adminHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.adminHandler.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/patients", r.adminHandler.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.adminHandler.ListAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/summary", r.adminHandler.GetSummary).Methods(http.MethodGet)
	admin.HandleFunc("/departments", r.adminHandler.CreateDepartment).Methods(http.MethodPost)
	admin.HandleFunc("/departments", r.adminHandler.ListDepartments).Methods(http.MethodGet)
	admin.HandleFunc("/reports", r.adminHandler.TriggerReport).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
