package attendance

import (
	"context"
	"database/sql"
	"math"
	"time"

	attendanceerrors "farmstaff/internal/attendance/errors"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"
	"farmstaff/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, p principal.Principal, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, p principal.Principal, req CheckOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, p principal.Principal, filter ListFilter) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, now: func() time.Time { return time.Now().UTC() }, logger: l}
}

func (s *service) CheckIn(ctx context.Context, p principal.Principal, req CheckInRequest) (AttendanceResponse, error) {
	if !p.CanActFor(req.StaffID) {
		return AttendanceResponse{}, apperror.ErrForbidden
	}
	staffUUID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStaffID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.StaffIsActive(ctx, req.StaffID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !active {
		return AttendanceResponse{}, attendanceerrors.ErrStaffNotFound
	}

	now := s.now()
	workDate := truncateToDay(now)

	open, err := qtx.FindOpenForUpdate(ctx, req.StaffID, workDate)
	if err != nil {
		s.logger.Error("check-in open lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if open != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	rec := &AttendanceRecord{
		ID:        uuid.New(),
		StaffID:   staffUUID,
		WorkDate:  workDate,
		CheckInAt: now,
		Status:    StatusPresent,
	}
	if err := qtx.Create(ctx, rec); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-in commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-in success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", req.StaffID),
		zap.Time("check_in_at", now),
	)
	return mapToResponse(*rec), nil
}

func (s *service) CheckOut(ctx context.Context, p principal.Principal, req CheckOutRequest) (AttendanceResponse, error) {
	if !p.CanActFor(req.StaffID) {
		return AttendanceResponse{}, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(req.StaffID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStaffID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := s.now()

	open, err := qtx.FindOpenForUpdate(ctx, req.StaffID, truncateToDay(now))
	if err != nil {
		s.logger.Error("check-out open lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if open == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoOpenCheckIn
	}

	hours := roundHours(now.Sub(open.CheckInAt).Hours())
	open.CheckOutAt = &now
	open.Hours = &hours
	open.Status = StatusCompleted

	if err := qtx.Update(ctx, open); err != nil {
		s.logger.Error("check-out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("check-out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("check-out success",
		zap.String("staff_id", req.StaffID),
		zap.Float64("hours", hours),
	)
	return mapToResponse(*open), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal, filter ListFilter) ([]AttendanceResponse, error) {
	var workDate *time.Time
	if filter.Date != "" {
		d, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFilter
		}
		workDate = &d
	}

	if !p.CanReadAll() {
		recs, err := s.repo.FindAllByStaff(ctx, p.ID, workDate)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(recs), nil
	}

	recs, err := s.repo.FindAll(ctx, filter.StaffID, workDate)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(recs), nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func mapToResponse(rec AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        rec.ID.String(),
		StaffID:   rec.StaffID.String(),
		WorkDate:  rec.WorkDate.Format("2006-01-02"),
		CheckInAt: rec.CheckInAt.Format(time.RFC3339),
		Hours:     rec.Hours,
		Status:    rec.Status,
	}
	if rec.Staff != nil {
		resp.StaffName = rec.Staff.FullName
	}
	if rec.CheckOutAt != nil {
		v := rec.CheckOutAt.Format(time.RFC3339)
		resp.CheckOutAt = &v
	}
	return resp
}

func mapToListResponse(recs []AttendanceRecord) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(recs))
	for i, rec := range recs {
		resp[i] = mapToResponse(rec)
	}
	return resp
}
