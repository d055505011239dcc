package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotAssignedDoctor = errors.New("appointment is not assigned to you")
	ErrTreatmentNotFound = errors.New("treatment not found")
)

type DoctorAppointmentUsecase interface {
	ListMyAppointments(ctx context.Context, doctorID uint) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, appointmentID, doctorID uint, req *dto.DoctorUpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetTreatment(ctx context.Context, appointmentID, doctorID uint) (*dto.TreatmentResponse, error)
}

type doctorAppointmentUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	apptRepo      repository.AppointmentRepository
	treatmentRepo repository.TreatmentRepository
	auditService  service.AuditService
}

func NewDoctorAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	apptRepo repository.AppointmentRepository,
	treatmentRepo repository.TreatmentRepository,
	auditService service.AuditService,
) DoctorAppointmentUsecase {
	return &doctorAppointmentUsecase{
		db:            db,
		log:           log,
		apptRepo:      apptRepo,
		treatmentRepo: treatmentRepo,
		auditService:  auditService,
	}
}

// ListMyAppointments returns the doctor's appointments ordered by date and
// time ascending.
func (u *doctorAppointmentUsecase) ListMyAppointments(ctx context.Context, doctorID uint) (*dto.AppointmentListResponse, error) {
	appts, err := u.apptRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %d: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appts),
		Total:        len(appts),
	}, nil
}

// UpdateAppointment records the treatment outcome on the appointment and its
// 1:1 treatment record.
//
// Diagnosis and prescription are overwritten (whitespace-trimmed). Status
// defaults to Completed when omitted. The appointment fields and the
// treatment record commit in the same transaction. The slot is untouched,
// so no conflict check runs here.
func (u *doctorAppointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID, doctorID uint, req *dto.DoctorUpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appt, err := u.apptRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotAssignedDoctor
	}

	status := entity.AppointmentStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = entity.AppointmentStatusCompleted
	}
	switch status {
	case entity.AppointmentStatusBooked, entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appt.Diagnosis = strings.TrimSpace(req.Diagnosis)
	appt.Prescription = strings.TrimSpace(req.Prescription)
	appt.Status = status

	if err := u.apptRepo.Update(tx, appt); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", appt.ID, err)
		return nil, err
	}

	// Keep the 1:1 clinical record in step with the appointment
	treatment, err := u.treatmentRepo.FindByAppointmentID(tx, appt.ID)
	if err != nil {
		u.log.Warnf("Failed to find treatment for appointment %d: %+v", appt.ID, err)
		return nil, err
	}
	if treatment == nil {
		treatment = &entity.Treatment{AppointmentID: appt.ID}
	}
	treatment.Diagnosis = appt.Diagnosis
	treatment.Prescription = appt.Prescription
	treatment.Notes = strings.TrimSpace(req.Notes)

	if err := u.treatmentRepo.Save(tx, treatment); err != nil {
		u.log.Warnf("Failed to save treatment for appointment %d: %+v", appt.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAppointmentTreat, "appointment", fmt.Sprint(appt.ID), nil, converter.AppointmentToResponse(appt)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment treated: id=%d, doctor=%d, status=%s", appt.ID, doctorID, appt.Status)
	return converter.AppointmentToResponse(appt), nil
}

// GetTreatment returns the clinical record for one of the doctor's own
// appointments.
func (u *doctorAppointmentUsecase) GetTreatment(ctx context.Context, appointmentID, doctorID uint) (*dto.TreatmentResponse, error) {
	appt, err := u.apptRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotAssignedDoctor
	}

	treatment, err := u.treatmentRepo.FindByAppointmentID(u.db.WithContext(ctx), appt.ID)
	if err != nil {
		u.log.Warnf("Failed to find treatment for appointment %d: %+v", appt.ID, err)
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}

	return converter.TreatmentToResponse(treatment), nil
}
