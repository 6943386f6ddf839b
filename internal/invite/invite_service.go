package invite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmstaff/internal/auth"
	"farmstaff/internal/events"
	inviteerrors "farmstaff/internal/invite/errors"
	"farmstaff/internal/messaging/kafka"
	"farmstaff/internal/notify"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"
	"farmstaff/internal/shared/contextutil"
	"farmstaff/internal/shared/counter"
	"farmstaff/internal/staff"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const inviteTTL = 72 * time.Hour

//go:generate mockgen -source=invite_service.go -destination=mock/invite_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreateInviteRequest) (InviteResponse, error)
	GetAll(ctx context.Context, p principal.Principal) ([]InviteResponse, error)
	Cancel(ctx context.Context, p principal.Principal, id string) (InviteResponse, error)
	Accept(ctx context.Context, req AcceptInviteRequest) (AcceptInviteResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	staffRepo staff.Repository
	authRepo  auth.Repository
	counters  counter.Repository
	outbox    kafka.OutboxRepository
	mailer    notify.Mailer
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	staffRepo staff.Repository,
	authRepo auth.Repository,
	counters counter.Repository,
	outboxRepo kafka.OutboxRepository,
	mailer notify.Mailer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("invite.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invite.service")
	}
	if mailer == nil {
		mailer = notify.NoopMailer{}
	}
	return &service{
		db:        db,
		repo:      repo,
		staffRepo: staffRepo,
		authRepo:  authRepo,
		counters:  counters,
		outbox:    outboxRepo,
		mailer:    mailer,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreateInviteRequest) (InviteResponse, error) {
	if !p.IsAdmin() {
		return InviteResponse{}, apperror.ErrForbidden
	}
	if !principal.ValidRole(req.Role) {
		return InviteResponse{}, inviteerrors.ErrInvalidRole
	}
	invitedBy, err := uuid.Parse(p.ID)
	if err != nil {
		return InviteResponse{}, apperror.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := s.now()

	pending, err := s.repo.HasPending(ctx, email, now)
	if err != nil {
		s.logger.Error("create invite pending check failed", zap.Error(err))
		return InviteResponse{}, err
	}
	if pending {
		return InviteResponse{}, inviteerrors.ErrDuplicatePendingInvite
	}

	token, err := newInviteToken()
	if err != nil {
		return InviteResponse{}, err
	}

	inv := &Invite{
		ID:        uuid.New(),
		Email:     email,
		Role:      req.Role,
		Token:     token,
		ExpiresAt: now.Add(inviteTTL),
		InvitedBy: invitedBy,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.Error("create invite persist failed", zap.Error(err))
		return InviteResponse{}, err
	}

	s.logger.Info("create invite success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("invite_id", inv.ID.String()),
		zap.String("role", inv.Role),
	)

	go func() {
		mailCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mailer.SendInvite(mailCtx, inv.Email, inv.Role, inv.Token, inv.ExpiresAt); err != nil {
			s.logger.Warn("invite mail failed", zap.String("invite_id", inv.ID.String()), zap.Error(err))
		}
	}()

	return s.mapToResponse(*inv), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal) ([]InviteResponse, error) {
	if !p.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	invites, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]InviteResponse, len(invites))
	for i, inv := range invites {
		resp[i] = s.mapToResponse(inv)
	}
	return resp, nil
}

func (s *service) Cancel(ctx context.Context, p principal.Principal, id string) (InviteResponse, error) {
	if !p.IsAdmin() {
		return InviteResponse{}, apperror.ErrForbidden
	}

	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InviteResponse{}, inviteerrors.ErrInviteNotFound
		}
		return InviteResponse{}, err
	}

	switch inv.ComputedStatus(s.now()) {
	case StatusAccepted:
		return InviteResponse{}, inviteerrors.ErrInviteUsed
	case StatusCancelled:
		return InviteResponse{}, inviteerrors.ErrInviteCancelled
	}

	now := s.now()
	inv.CancelledAt = &now
	if err := s.repo.Update(ctx, inv); err != nil {
		s.logger.Error("cancel invite persist failed", zap.String("invite_id", id), zap.Error(err))
		return InviteResponse{}, err
	}

	s.logger.Info("cancel invite success", zap.String("invite_id", id))
	return s.mapToResponse(*inv), nil
}

// Accept is the unauthenticated onboarding path. It burns the invite,
// creates the staff row plus its login, and emits staff.created, all in
// one transaction.
func (s *service) Accept(ctx context.Context, req AcceptInviteRequest) (AcceptInviteResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("accept invite begin tx failed", zap.Error(err))
		return AcceptInviteResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inv, err := qtx.FindByTokenForUpdate(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AcceptInviteResponse{}, inviteerrors.ErrInviteNotFound
		}
		return AcceptInviteResponse{}, err
	}

	switch inv.ComputedStatus(s.now()) {
	case StatusAccepted:
		return AcceptInviteResponse{}, inviteerrors.ErrInviteUsed
	case StatusCancelled:
		return AcceptInviteResponse{}, inviteerrors.ErrInviteCancelled
	case StatusExpired:
		return AcceptInviteResponse{}, inviteerrors.ErrInviteExpired
	}

	seq, err := s.counters.GetNextValue(ctx, "staff_number")
	if err != nil {
		return AcceptInviteResponse{}, err
	}

	member := &staff.Staff{
		ID:          uuid.New(),
		StaffNumber: fmt.Sprintf("STF-%06d", seq),
		FullName:    req.FullName,
		Email:       inv.Email,
		Phone:       req.Phone,
		Role:        inv.Role,
		IsActive:    true,
	}
	if err := s.staffRepo.WithTx(tx).Create(ctx, member); err != nil {
		s.logger.Error("accept invite staff create failed", zap.Error(err))
		return AcceptInviteResponse{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return AcceptInviteResponse{}, err
	}
	user := &auth.User{
		ID:           uuid.New(),
		StaffID:      member.ID,
		Email:        inv.Email,
		PasswordHash: hash,
	}
	if err := s.authRepo.WithTx(tx).Create(ctx, user); err != nil {
		s.logger.Error("accept invite user create failed", zap.Error(err))
		return AcceptInviteResponse{}, err
	}

	inv.IsUsed = true
	if err := qtx.Update(ctx, inv); err != nil {
		s.logger.Error("accept invite burn failed", zap.Error(err))
		return AcceptInviteResponse{}, err
	}

	if err := s.enqueueCreatedEvent(ctx, tx, member); err != nil {
		return AcceptInviteResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("accept invite commit failed", zap.Error(err))
		return AcceptInviteResponse{}, err
	}

	s.logger.Info("accept invite success",
		zap.String("invite_id", inv.ID.String()),
		zap.String("staff_id", member.ID.String()),
		zap.String("staff_number", member.StaffNumber),
	)

	return AcceptInviteResponse{
		StaffID:     member.ID.String(),
		StaffNumber: member.StaffNumber,
		Email:       member.Email,
		Role:        member.Role,
	}, nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, member *staff.Staff) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.StaffCreatedEvent{
		EventType:  "staff.created",
		StaffID:    member.ID.String(),
		Role:       member.Role,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "staff",
		AggregateID:   member.ID.String(),
		EventType:     "staff.created",
		Topic:         events.StaffCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) mapToResponse(inv Invite) InviteResponse {
	return InviteResponse{
		ID:        inv.ID.String(),
		Email:     inv.Email,
		Role:      inv.Role,
		ExpiresAt: inv.ExpiresAt.Format(time.RFC3339),
		Status:    inv.ComputedStatus(s.now()),
		InvitedBy: inv.InvitedBy.String(),
		CreatedAt: inv.CreatedAt.Format(time.RFC3339),
	}
}

func newInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
