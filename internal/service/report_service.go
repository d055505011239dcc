package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultReportDelay mimics the deliberately slow report generation of the
// legacy system; the job is fire-and-forget and never awaited by a request.
const defaultReportDelay = 5 * time.Second

// ReportService writes summary report files from a detached background job.
// Trigger returns immediately; no result is surfaced to the caller beyond
// the generated filename.
type ReportService struct {
	db        *gorm.DB
	log       *logrus.Logger
	userRepo  repository.UserRepository
	apptRepo  repository.AppointmentRepository
	reportDir string
	delay     time.Duration

	wg      sync.WaitGroup
	stopped atomic.Bool
}

func NewReportService(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	apptRepo repository.AppointmentRepository,
	reportDir string,
) *ReportService {
	return &ReportService{
		db:        db,
		log:       log,
		userRepo:  userRepo,
		apptRepo:  apptRepo,
		reportDir: reportDir,
		delay:     defaultReportDelay,
	}
}

// Stop waits for in-flight report jobs to finish.
// Safe to call multiple times.
func (s *ReportService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		s.wg.Wait()
		s.log.Info("ReportService stopped")
	}
}

// Trigger starts a background report job and returns the target filename.
func (s *ReportService) Trigger() string {
	filename := fmt.Sprintf("summary-%s.json", time.Now().UTC().Format("20060102-150405"))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		time.Sleep(s.delay)
		if err := s.generate(filename); err != nil {
			s.log.Errorf("Report job failed: %+v", err)
			return
		}
		s.log.Infof("Report written: %s", filename)
	}()

	return filename
}

type reportPayload struct {
	GeneratedAt       time.Time `json:"generated_at"`
	TotalDoctors      int64     `json:"total_doctors"`
	TotalPatients     int64     `json:"total_patients"`
	TotalAppointments int64     `json:"total_appointments"`
	Booked            int64     `json:"booked"`
	Completed         int64     `json:"completed"`
	Cancelled         int64     `json:"cancelled"`
}

func (s *ReportService) generate(filename string) error {
	var payload reportPayload
	payload.GeneratedAt = time.Now().UTC()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if payload.TotalDoctors, err = s.userRepo.CountByRole(tx, entity.RoleDoctor); err != nil {
			return err
		}
		if payload.TotalPatients, err = s.userRepo.CountByRole(tx, entity.RolePatient); err != nil {
			return err
		}
		if payload.TotalAppointments, err = s.apptRepo.Count(tx); err != nil {
			return err
		}
		if payload.Booked, err = s.apptRepo.CountByStatus(tx, entity.AppointmentStatusBooked); err != nil {
			return err
		}
		if payload.Completed, err = s.apptRepo.CountByStatus(tx, entity.AppointmentStatusCompleted); err != nil {
			return err
		}
		payload.Cancelled, err = s.apptRepo.CountByStatus(tx, entity.AppointmentStatusCancelled)
		return err
	})
	if err != nil {
		return fmt.Errorf("collect report data: %w", err)
	}

	if err := os.MkdirAll(s.reportDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(s.reportDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}

	return nil
}
