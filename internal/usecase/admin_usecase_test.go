package usecase

import (
	"context"
	"strings"
	"testing"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminCreateDoctor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, entity.RoleAdmin, "admin")

	resp, err := env.adminUsecase.CreateDoctor(ctx, admin.ID, &dto.CreateDoctorRequest{
		Username:       "dr_house",
		Email:          "house@example.com",
		Password:       "secret123",
		Name:           "Gregory House",
		Specialization: "Diagnostics",
	})
	require.NoError(t, err)

	assert.Equal(t, "dr_house", resp.Username)
	assert.Equal(t, entity.RoleDoctor, resp.Role)
	assert.Equal(t, "Diagnostics", resp.Specialization)

	// Same username again is rejected before touching the database
	_, err = env.adminUsecase.CreateDoctor(ctx, admin.ID, &dto.CreateDoctorRequest{
		Username: "dr_house",
		Email:    "other@example.com",
		Password: "secret123",
		Name:     "Impostor",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Reused email is rejected too
	_, err = env.adminUsecase.CreateDoctor(ctx, admin.ID, &dto.CreateDoctorRequest{
		Username: "dr_house2",
		Email:    "house@example.com",
		Password: "secret123",
		Name:     "Impostor",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAdminListUsersByRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createDoctor(t, "dr_house")
	env.createDoctor(t, "dr_wilson")
	env.createPatient(t, "alice")

	doctors, err := env.adminUsecase.ListDoctors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, doctors.Total)
	for _, d := range doctors.Users {
		assert.Equal(t, entity.RoleDoctor, d.Role)
	}

	patients, err := env.adminUsecase.ListPatients(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, patients.Total)
	assert.Equal(t, "alice", patients.Users[0].Username)
}

func TestAdminGetSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doctor := env.createDoctor(t, "dr_house")
	alice := env.createPatient(t, "alice")
	bob := env.createPatient(t, "bob")

	a1 := bookFor(t, env, doctor.ID, alice.ID, "2026-09-01", "09:00")
	a2 := bookFor(t, env, doctor.ID, alice.ID, "2026-09-01", "10:00")
	bookFor(t, env, doctor.ID, bob.ID, "2026-09-01", "11:00")

	_, err := env.doctorUsecase.UpdateAppointment(ctx, a1.ID, doctor.ID, &dto.DoctorUpdateAppointmentRequest{
		Diagnosis:    "flu",
		Prescription: "rest",
	})
	require.NoError(t, err)

	_, err = env.patientUsecase.Update(ctx, a2.ID, alice.ID, &dto.PatientUpdateAppointmentRequest{
		Status: string(entity.AppointmentStatusCancelled),
	})
	require.NoError(t, err)

	summary, err := env.adminUsecase.GetSummary(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 1, summary.TotalDoctors)
	assert.EqualValues(t, 2, summary.TotalPatients)
	assert.EqualValues(t, 3, summary.TotalAppointments)
	assert.EqualValues(t, 1, summary.Booked)
	assert.EqualValues(t, 1, summary.Completed)
	assert.EqualValues(t, 1, summary.Cancelled)
	assert.Equal(t, summary.TotalAppointments, summary.Booked+summary.Completed+summary.Cancelled)
}

func TestAdminListAllAppointments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	house := env.createDoctor(t, "dr_house")
	wilson := env.createDoctor(t, "dr_wilson")
	alice := env.createPatient(t, "alice")

	bookFor(t, env, house.ID, alice.ID, "2026-09-02", "10:00")
	bookFor(t, env, wilson.ID, alice.ID, "2026-09-01", "10:00")

	list, err := env.adminUsecase.ListAllAppointments(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	// Sorted across all doctors, with both names resolved
	assert.Equal(t, "2026-09-01", list.Appointments[0].Date)
	assert.Equal(t, wilson.Name, list.Appointments[0].DoctorName)
	assert.Equal(t, alice.Name, list.Appointments[0].PatientName)
}

func TestAdminDepartments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.createUser(t, entity.RoleAdmin, "admin")

	resp, err := env.adminUsecase.CreateDepartment(ctx, admin.ID, &dto.CreateDepartmentRequest{
		Name:        "Cardiology",
		Description: "Heart and vascular care",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", resp.Name)
	assert.NotZero(t, resp.ID)

	list, err := env.adminUsecase.ListDepartments(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Cardiology", list.Departments[0].Name)
}

func TestAdminTriggerReport(t *testing.T) {
	env := newTestEnv(t)

	resp := env.adminUsecase.TriggerReport(context.Background())
	assert.True(t, strings.HasPrefix(resp.Filename, "summary-"))
	assert.True(t, strings.HasSuffix(resp.Filename, ".json"))
}
