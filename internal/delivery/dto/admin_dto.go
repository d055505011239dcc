package dto

// Request DTOs

type CreateDoctorRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=80"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Name           string `json:"name" validate:"required,min=2"`
	Specialization string `json:"specialization" validate:"omitempty"`
	DepartmentID   *uint  `json:"department_id" validate:"omitempty"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// Response DTOs

type DepartmentResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Total       int                  `json:"total"`
}

// SummaryResponse is the admin dashboard aggregate. The per-status counts
// always sum to the appointment total.
type SummaryResponse struct {
	TotalDoctors      int64 `json:"total_doctors"`
	TotalPatients     int64 `json:"total_patients"`
	TotalAppointments int64 `json:"total_appointments"`
	Booked            int64 `json:"booked"`
	Completed         int64 `json:"completed"`
	Cancelled         int64 `json:"cancelled"`
}

type ReportResponse struct {
	Filename string `json:"filename"`
}
