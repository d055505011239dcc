package usecase

import (
	"fmt"
	"testing"

	"hms-backend/internal/domain/entity"
	"hms-backend/internal/repository"
	"hms-backend/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glebarez/sqlite"
)

// testEnv wires the usecases against an in-memory database the same way
// bootstrap wires them against Postgres.
type testEnv struct {
	db             *gorm.DB
	log            *logrus.Logger
	slotLock       *service.SlotLockService
	patientUsecase PatientAppointmentUsecase
	doctorUsecase  DoctorAppointmentUsecase
	adminUsecase   AdminUsecase
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Department{},
		&entity.User{},
		&entity.Appointment{},
		&entity.Treatment{},
		&entity.AuditLog{},
	))

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	userRepo := repository.NewUserRepository()
	apptRepo := repository.NewAppointmentRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	deptRepo := repository.NewDepartmentRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditRepo)
	slotLock := service.NewSlotLockService(log)
	t.Cleanup(slotLock.Stop)

	reportService := service.NewReportService(db, log, userRepo, apptRepo, t.TempDir())

	return &testEnv{
		db:             db,
		log:            log,
		slotLock:       slotLock,
		patientUsecase: NewPatientAppointmentUsecase(db, log, userRepo, apptRepo, slotLock, auditService),
		doctorUsecase:  NewDoctorAppointmentUsecase(db, log, apptRepo, treatmentRepo, auditService),
		adminUsecase:   NewAdminUsecase(db, log, userRepo, apptRepo, deptRepo, auditService, reportService),
	}
}

func (e *testEnv) createUser(t *testing.T, role, username string) *entity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createDoctor(t *testing.T, username string) *entity.User {
	return e.createUser(t, entity.RoleDoctor, username)
}

func (e *testEnv) createPatient(t *testing.T, username string) *entity.User {
	return e.createUser(t, entity.RolePatient, username)
}

func (e *testEnv) countAppointments(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(&entity.Appointment{}).Count(&count).Error)
	return count
}
