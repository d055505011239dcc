package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	patient := env.createPatient(t, "alice")

	resp, err := env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID,
		Date:     "2026-09-01",
		Time:     "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, doctor.ID, resp.DoctorID)
	assert.Equal(t, patient.ID, resp.PatientID)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
	assert.Equal(t, string(entity.AppointmentStatusBooked), resp.Status)
	assert.Equal(t, doctor.Name, resp.DoctorName)
	assert.NotZero(t, resp.ID)

	// Booking leaves an audit trail entry
	var audits int64
	require.NoError(t, env.db.Model(&entity.AuditLog{}).
		Where("action = ?", entity.AuditActionAppointmentBook).Count(&audits).Error)
	assert.EqualValues(t, 1, audits)
}

func TestBookAppointmentDoctorNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patient := env.createPatient(t, "alice")

	_, err := env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
		DoctorID: 999,
		Date:     "2026-09-01",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	// A patient account is not a bookable doctor either
	other := env.createPatient(t, "bob")
	_, err = env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
		DoctorID: other.ID,
		Date:     "2026-09-01",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	assert.EqualValues(t, 0, env.countAppointments(t))
}

func TestBookAppointmentSlotConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	alice := env.createPatient(t, "alice")
	bob := env.createPatient(t, "bob")

	req := &dto.BookAppointmentRequest{DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00"}

	_, err := env.patientUsecase.Book(ctx, alice.ID, req)
	require.NoError(t, err)

	_, err = env.patientUsecase.Book(ctx, bob.ID, req)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Same doctor at a different time is fine
	_, err = env.patientUsecase.Book(ctx, bob.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "11:00",
	})
	assert.NoError(t, err)

	assert.EqualValues(t, 2, env.countAppointments(t))
}

func TestBookAppointmentConcurrentSameSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")

	const workers = 8
	patients := make([]*entity.User, workers)
	for i := range patients {
		patients[i] = env.createPatient(t, fmt.Sprintf("patient%d", i))
	}

	req := &dto.BookAppointmentRequest{DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00"}

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.patientUsecase.Book(ctx, patients[i].ID, req)
		}(i)
	}
	wg.Wait()

	var booked, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %+v", err)
		}
	}

	assert.Equal(t, 1, booked)
	assert.Equal(t, workers-1, conflicts)
	assert.EqualValues(t, 1, env.countAppointments(t))
}

func TestRescheduleAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	patient := env.createPatient(t, "alice")

	appt, err := env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	resp, err := env.patientUsecase.Update(ctx, appt.ID, patient.ID, &dto.PatientUpdateAppointmentRequest{
		Date: "2026-09-02",
		Time: "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-02", resp.Date)
	assert.Equal(t, "11:00", resp.Time)
	assert.Equal(t, string(entity.AppointmentStatusBooked), resp.Status)
}

func TestRescheduleAppointmentToOwnSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	patient := env.createPatient(t, "alice")

	appt, err := env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	// Resubmitting the current slot must not conflict with itself
	resp, err := env.patientUsecase.Update(ctx, appt.ID, patient.ID, &dto.PatientUpdateAppointmentRequest{
		Date: "2026-09-01",
		Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", resp.Date)
	assert.Equal(t, "10:00", resp.Time)
}

func TestRescheduleAppointmentToOccupiedSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	alice := env.createPatient(t, "alice")
	bob := env.createPatient(t, "bob")

	_, err := env.patientUsecase.Book(ctx, alice.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	bobAppt, err := env.patientUsecase.Book(ctx, bob.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "11:00",
	})
	require.NoError(t, err)

	_, err = env.patientUsecase.Update(ctx, bobAppt.ID, bob.ID, &dto.PatientUpdateAppointmentRequest{
		Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Nothing applied: the original slot survives the rejected update
	var stored entity.Appointment
	require.NoError(t, env.db.First(&stored, bobAppt.ID).Error)
	assert.Equal(t, "11:00", stored.Time)
}

func TestCancelAppointment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	alice := env.createPatient(t, "alice")
	bob := env.createPatient(t, "bob")

	appt, err := env.patientUsecase.Book(ctx, alice.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	resp, err := env.patientUsecase.Update(ctx, appt.ID, alice.ID, &dto.PatientUpdateAppointmentRequest{
		Status: string(entity.AppointmentStatusCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), resp.Status)

	// Cancelled appointments still occupy the slot
	_, err = env.patientUsecase.Book(ctx, bob.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestPatientUpdateRejectsCompletedStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	patient := env.createPatient(t, "alice")

	appt, err := env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	_, err = env.patientUsecase.Update(ctx, appt.ID, patient.ID, &dto.PatientUpdateAppointmentRequest{
		Status: string(entity.AppointmentStatusCompleted),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = env.patientUsecase.Update(ctx, appt.ID, patient.ID, &dto.PatientUpdateAppointmentRequest{
		Status: "Rescheduled",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestPatientUpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	alice := env.createPatient(t, "alice")
	bob := env.createPatient(t, "bob")

	appt, err := env.patientUsecase.Book(ctx, alice.ID, &dto.BookAppointmentRequest{
		DoctorID: doctor.ID, Date: "2026-09-01", Time: "10:00",
	})
	require.NoError(t, err)

	_, err = env.patientUsecase.Update(ctx, appt.ID, bob.ID, &dto.PatientUpdateAppointmentRequest{
		Time: "11:00",
	})
	assert.ErrorIs(t, err, ErrNotAppointmentOwner)

	_, err = env.patientUsecase.Update(ctx, 999, alice.ID, &dto.PatientUpdateAppointmentRequest{
		Time: "11:00",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestPatientListMyAppointmentsOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	patient := env.createPatient(t, "alice")

	slots := []struct{ date, time string }{
		{"2026-09-02", "09:00"},
		{"2026-09-01", "14:00"},
		{"2026-09-01", "08:00"},
	}
	for _, s := range slots {
		_, err := env.patientUsecase.Book(ctx, patient.ID, &dto.BookAppointmentRequest{
			DoctorID: doctor.ID, Date: s.date, Time: s.time,
		})
		require.NoError(t, err)
	}

	list, err := env.patientUsecase.ListMyAppointments(ctx, patient.ID)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)

	assert.Equal(t, "2026-09-01", list.Appointments[0].Date)
	assert.Equal(t, "08:00", list.Appointments[0].Time)
	assert.Equal(t, "2026-09-01", list.Appointments[1].Date)
	assert.Equal(t, "14:00", list.Appointments[1].Time)
	assert.Equal(t, "2026-09-02", list.Appointments[2].Date)

	// Other patients see only their own bookings
	bob := env.createPatient(t, "bob")
	bobList, err := env.patientUsecase.ListMyAppointments(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, bobList.Total)
}
