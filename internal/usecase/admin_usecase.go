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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDepartmentExists   = errors.New("department already exists")
	ErrDepartmentNotFound = errors.New("department not found")
)

type AdminUsecase interface {
	CreateDoctor(ctx context.Context, adminID uint, req *dto.CreateDoctorRequest) (*dto.UserResponse, error)
	ListDoctors(ctx context.Context) (*dto.UserListResponse, error)
	ListPatients(ctx context.Context) (*dto.UserListResponse, error)
	ListAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
	CreateDepartment(ctx context.Context, adminID uint, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	TriggerReport(ctx context.Context) *dto.ReportResponse
}

type adminUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	userRepo      repository.UserRepository
	apptRepo      repository.AppointmentRepository
	deptRepo      repository.DepartmentRepository
	auditService  service.AuditService
	reportService *service.ReportService
}

func NewAdminUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	apptRepo repository.AppointmentRepository,
	deptRepo repository.DepartmentRepository,
	auditService service.AuditService,
	reportService *service.ReportService,
) AdminUsecase {
	return &adminUsecase{
		db:            db,
		log:           log,
		userRepo:      userRepo,
		apptRepo:      apptRepo,
		deptRepo:      deptRepo,
		auditService:  auditService,
		reportService: reportService,
	}
}

// CreateDoctor provisions a doctor account. Only admins reach this path.
func (u *adminUsecase) CreateDoctor(ctx context.Context, adminID uint, req *dto.CreateDoctorRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.userRepo.FindByUsernameOrEmail(tx, req.Username, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check existing user: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.User{
		Username:       req.Username,
		Email:          req.Email,
		Name:           req.Name,
		PasswordHash:   string(hashedPassword),
		Role:           entity.RoleDoctor,
		Specialization: req.Specialization,
		DepartmentID:   req.DepartmentID,
	}

	if err := u.userRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "username") || isDuplicateKeyError(err, "email") {
			return nil, ErrUserAlreadyExists
		}
		if isForeignKeyError(err, "department") {
			return nil, ErrDepartmentNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDoctorCreate, "user", fmt.Sprint(doctor.ID), converter.UserToResponse(doctor)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(doctor), nil
}

func (u *adminUsecase) ListDoctors(ctx context.Context) (*dto.UserListResponse, error) {
	doctors, err := u.userRepo.FindByRole(u.db.WithContext(ctx), entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(doctors),
		Total: len(doctors),
	}, nil
}

func (u *adminUsecase) ListPatients(ctx context.Context) (*dto.UserListResponse, error) {
	patients, err := u.userRepo.FindByRole(u.db.WithContext(ctx), entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(patients),
		Total: len(patients),
	}, nil
}

func (u *adminUsecase) ListAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appts, err := u.apptRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appts),
		Total:        len(appts),
	}, nil
}

// GetSummary aggregates the dashboard counts inside one read transaction so
// the numbers are a consistent snapshot.
func (u *adminUsecase) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	var summary dto.SummaryResponse

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if summary.TotalDoctors, err = u.userRepo.CountByRole(tx, entity.RoleDoctor); err != nil {
			return err
		}
		if summary.TotalPatients, err = u.userRepo.CountByRole(tx, entity.RolePatient); err != nil {
			return err
		}
		if summary.TotalAppointments, err = u.apptRepo.Count(tx); err != nil {
			return err
		}
		if summary.Booked, err = u.apptRepo.CountByStatus(tx, entity.AppointmentStatusBooked); err != nil {
			return err
		}
		if summary.Completed, err = u.apptRepo.CountByStatus(tx, entity.AppointmentStatusCompleted); err != nil {
			return err
		}
		summary.Cancelled, err = u.apptRepo.CountByStatus(tx, entity.AppointmentStatusCancelled)
		return err
	})
	if err != nil {
		u.log.Warnf("Failed to build summary: %+v", err)
		return nil, err
	}

	return &summary, nil
}

func (u *adminUsecase) CreateDepartment(ctx context.Context, adminID uint, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	dept := &entity.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := u.deptRepo.Create(tx, dept); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrDepartmentExists
		}
		u.log.Warnf("Failed to create department: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &adminID, entity.AuditActionDepartmentCreate, "department", fmt.Sprint(dept.ID), converter.DepartmentToResponse(dept)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DepartmentToResponse(dept), nil
}

func (u *adminUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	depts, err := u.deptRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list departments: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{
		Departments: converter.DepartmentsToResponses(depts),
		Total:       len(depts),
	}, nil
}

// TriggerReport kicks off the detached report job; the caller only gets the
// target filename back.
func (u *adminUsecase) TriggerReport(ctx context.Context) *dto.ReportResponse {
	filename := u.reportService.Trigger()
	return &dto.ReportResponse{Filename: filename}
}
