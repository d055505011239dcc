package service

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hms-backend/internal/domain/entity"
	"hms-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/glebarez/sqlite"
)

func newReportTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Appointment{}))
	return db
}

func TestReportServiceWritesSummaryFile(t *testing.T) {
	db := newReportTestDB(t)
	dir := t.TempDir()

	require.NoError(t, db.Create(&entity.User{
		Username: "dr_house", Email: "house@example.com", Name: "Gregory House",
		PasswordHash: "x", Role: entity.RoleDoctor,
	}).Error)
	require.NoError(t, db.Create(&entity.User{
		Username: "alice", Email: "alice@example.com", Name: "Alice",
		PasswordHash: "x", Role: entity.RolePatient,
	}).Error)
	require.NoError(t, db.Create(&entity.Appointment{
		DoctorID: 1, PatientID: 2, Date: "2026-09-01", Time: "10:00",
		Status: entity.AppointmentStatusBooked,
	}).Error)
	require.NoError(t, db.Create(&entity.Appointment{
		DoctorID: 1, PatientID: 2, Date: "2026-09-01", Time: "11:00",
		Status: entity.AppointmentStatusCancelled,
	}).Error)

	svc := NewReportService(db, newTestLogger(), repository.NewUserRepository(), repository.NewAppointmentRepository(), dir)
	svc.delay = 0

	filename := svc.Trigger()
	assert.True(t, strings.HasPrefix(filename, "summary-"))
	assert.True(t, strings.HasSuffix(filename, ".json"))

	// Stop blocks until the background job has written the file
	svc.Stop()

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var payload reportPayload
	require.NoError(t, json.Unmarshal(data, &payload))

	assert.EqualValues(t, 1, payload.TotalDoctors)
	assert.EqualValues(t, 1, payload.TotalPatients)
	assert.EqualValues(t, 2, payload.TotalAppointments)
	assert.EqualValues(t, 1, payload.Booked)
	assert.EqualValues(t, 0, payload.Completed)
	assert.EqualValues(t, 1, payload.Cancelled)
	assert.False(t, payload.GeneratedAt.IsZero())
}

func TestReportServiceCreatesReportDir(t *testing.T) {
	db := newReportTestDB(t)
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	svc := NewReportService(db, newTestLogger(), repository.NewUserRepository(), repository.NewAppointmentRepository(), dir)
	svc.delay = 0

	filename := svc.Trigger()
	svc.Stop()

	_, err := os.Stat(filepath.Join(dir, filename))
	assert.NoError(t, err)
}
