package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appt *entity.Appointment) *dto.AppointmentResponse {
	if appt == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:           appt.ID,
		DoctorID:     appt.DoctorID,
		PatientID:    appt.PatientID,
		Date:         appt.Date,
		Time:         appt.Time,
		Status:       string(appt.Status),
		Diagnosis:    appt.Diagnosis,
		Prescription: appt.Prescription,
		CreatedAt:    appt.CreatedAt,
		UpdatedAt:    appt.UpdatedAt,
	}

	// Names are present only when the relation was preloaded
	if appt.Doctor.ID != 0 {
		response.DoctorName = appt.Doctor.Name
	}
	if appt.Patient.ID != 0 {
		response.PatientName = appt.Patient.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appts []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appts))
	for i, appt := range appts {
		resp := AppointmentToResponse(&appt)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// TreatmentToResponse converts a Treatment entity to TreatmentResponse DTO
func TreatmentToResponse(t *entity.Treatment) *dto.TreatmentResponse {
	if t == nil {
		return nil
	}

	return &dto.TreatmentResponse{
		ID:            t.ID,
		AppointmentID: t.AppointmentID,
		Diagnosis:     t.Diagnosis,
		Prescription:  t.Prescription,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
