package usecase

import (
	"context"
	"errors"
	"fmt"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSlotTaken           = errors.New("this time slot is already booked")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAppointmentOwner = errors.New("appointment does not belong to you")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

type PatientAppointmentUsecase interface {
	ListMyAppointments(ctx context.Context, patientID uint) (*dto.AppointmentListResponse, error)
	Book(ctx context.Context, patientID uint, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, appointmentID, patientID uint, req *dto.PatientUpdateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type patientAppointmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	apptRepo     repository.AppointmentRepository
	slotLock     *service.SlotLockService
	auditService service.AuditService
}

func NewPatientAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	apptRepo repository.AppointmentRepository,
	slotLock *service.SlotLockService,
	auditService service.AuditService,
) PatientAppointmentUsecase {
	return &patientAppointmentUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		apptRepo:     apptRepo,
		slotLock:     slotLock,
		auditService: auditService,
	}
}

// ListMyAppointments returns the patient's appointments ordered by date and
// time ascending.
func (u *patientAppointmentUsecase) ListMyAppointments(ctx context.Context, patientID uint) (*dto.AppointmentListResponse, error) {
	appts, err := u.apptRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %d: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appts),
		Total:        len(appts),
	}, nil
}

// Book creates a new appointment for the patient.
//
// Flow:
// 1. Validate the doctor exists and actually has the doctor role
// 2. Acquire the slot mutex for (doctor, date, time)
// 3. In one transaction: re-check the slot is free, insert with status Booked
//
// The conflict check counts cancelled appointments too; a cancelled slot
// stays blocked until the product decides otherwise.
func (u *patientAppointmentUsecase) Book(ctx context.Context, patientID uint, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctor, err := u.userRepo.FindByID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	// Serialize check-then-insert per slot so concurrent requests for the
	// same slot cannot both pass the conflict check.
	unlock := u.slotLock.Lock(req.DoctorID, req.Date, req.Time)
	defer unlock()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	taken, err := u.apptRepo.SlotTaken(tx, req.DoctorID, req.Date, req.Time, 0)
	if err != nil {
		u.log.Warnf("Failed slot conflict check for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	appt := &entity.Appointment{
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    entity.AppointmentStatusBooked,
	}

	if err := u.apptRepo.Create(tx, appt); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", fmt.Sprint(appt.ID), converter.AppointmentToResponse(appt)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%d, slot=%s %s", appt.ID, appt.DoctorID, appt.Date, appt.Time)

	appt.Doctor = *doctor
	return converter.AppointmentToResponse(appt), nil
}

// Update reschedules and/or cancels the patient's own appointment.
//
// Patients may only set status Booked or Cancelled; Completed is a doctor
// action. When date or time are supplied the effective slot is the supplied
// value merged over the existing one, and the booking conflict check is
// re-run with this appointment excluded. Both the slot change and the
// status change commit in a single transaction or not at all.
func (u *patientAppointmentUsecase) Update(ctx context.Context, appointmentID, patientID uint, req *dto.PatientUpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appt, err := u.apptRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appt == nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.PatientID != patientID {
		return nil, ErrNotAppointmentOwner
	}

	newStatus := entity.AppointmentStatus(req.Status)
	if req.Status != "" && !entity.ValidPatientStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	// Effective slot: supplied values merged over the current ones
	effectiveDate := appt.Date
	if req.Date != "" {
		effectiveDate = req.Date
	}
	effectiveTime := appt.Time
	if req.Time != "" {
		effectiveTime = req.Time
	}
	slotChanged := req.Date != "" || req.Time != ""

	unlock := u.slotLock.Lock(appt.DoctorID, effectiveDate, effectiveTime)
	defer unlock()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if slotChanged {
		taken, err := u.apptRepo.SlotTaken(tx, appt.DoctorID, effectiveDate, effectiveTime, appt.ID)
		if err != nil {
			u.log.Warnf("Failed slot conflict check for appointment %d: %+v", appt.ID, err)
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}
		appt.Date = effectiveDate
		appt.Time = effectiveTime
	}

	action := entity.AuditActionAppointmentReschedule
	if req.Status != "" {
		appt.Status = newStatus
		if newStatus == entity.AppointmentStatusCancelled {
			action = entity.AuditActionAppointmentCancel
		}
	}

	if err := u.apptRepo.Update(tx, appt); err != nil {
		u.log.Warnf("Failed to update appointment %d: %+v", appt.ID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &patientID, action, "appointment", fmt.Sprint(appt.ID), nil, converter.AppointmentToResponse(appt)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment updated by patient: id=%d, status=%s, slot=%s %s", appt.ID, appt.Status, appt.Date, appt.Time)
	return converter.AppointmentToResponse(appt), nil
}
