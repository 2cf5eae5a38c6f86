package service

import (
	"context"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	appErrors "github.com/zeon-projects/beach-cleanup-api/pkg/errors"
)

const statsCountKey = "registrations:count"

type registrationRepository interface {
	Insert(ctx context.Context, reg *models.Registration) error
	Count(ctx context.Context) (int, error)
	HealthCheck(ctx context.Context) error
}

type registrationNotifier interface {
	NotifyRegistered(reg models.Registration)
}

// RegisterRequest is the JSON payload accepted by the write path. Only
// name and email are enforced here: the form performs the full field
// validation and the server trust boundary is deliberately looser, so a
// client bypassing the UI can still persist a partial record. Any
// client-supplied registrationDate is dropped at bind time.
type RegisterRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required"`
	Phone            string `json:"phone"`
	RollNo           string `json:"rollNo"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Year             string `json:"year"`
	Branch           string `json:"branch"`
}

// RegistrationService handles the registration write path and stats.
type RegistrationService struct {
	repo      registrationRepository
	notifier  registrationNotifier
	validator *validator.Validate
	logger    *zap.Logger
	cache     *redis.Client
	cacheTTL  time.Duration
	metrics   *MetricsService
	now       func() time.Time
}

// RegistrationServiceOptions carries optional collaborators.
type RegistrationServiceOptions struct {
	Cache    *redis.Client
	CacheTTL time.Duration
	Metrics  *MetricsService
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(repo registrationRepository, notif registrationNotifier, validate *validator.Validate, logger *zap.Logger, opts RegistrationServiceOptions) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RegistrationService{
		repo:      repo,
		notifier:  notif,
		validator: validate,
		logger:    logger,
		cache:     opts.Cache,
		cacheTTL:  ttl,
		metrics:   opts.Metrics,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register persists a new registration and queues the confirmation
// email. The email is fire-and-forget: once the insert succeeds the
// registration is successful regardless of delivery outcome.
func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.ObserveRegistration(false)
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}

	reg := &models.Registration{
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		RollNo:           req.RollNo,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Year:             req.Year,
		Branch:           req.Branch,
		RegistrationDate: s.now(),
	}

	start := time.Now()
	if err := s.repo.Insert(ctx, reg); err != nil {
		s.metrics.ObserveRegistration(false)
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}
	s.metrics.ObserveDBQuery("insert_registration", time.Since(start))
	s.metrics.ObserveRegistration(true)

	s.logger.Sugar().Infow("registration saved", "id", reg.ID, "email", reg.Email)
	s.invalidateCount(ctx)

	if s.notifier != nil {
		s.notifier.NotifyRegistered(*reg)
	}

	return reg, nil
}

// Count returns the total number of registrations, read through the
// Redis cache when one is configured. Cache failures fall back to a
// direct database count.
func (s *RegistrationService) Count(ctx context.Context) (int, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCountKey).Result(); err == nil {
			if total, convErr := strconv.Atoi(raw); convErr == nil {
				return total, nil
			}
		} else if err != redis.Nil {
			s.logger.Sugar().Debugw("stats cache read failed", "error", err)
		}
	}

	start := time.Now()
	total, err := s.repo.Count(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count registrations")
	}
	s.metrics.ObserveDBQuery("count_registrations", time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCountKey, strconv.Itoa(total), s.cacheTTL).Err(); err != nil {
			s.logger.Sugar().Debugw("stats cache write failed", "error", err)
		}
	}
	return total, nil
}

// Ready verifies that the persistence store is reachable.
func (s *RegistrationService) Ready(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, appErrors.ErrUnavailable.Message)
	}
	return nil
}

func (s *RegistrationService) invalidateCount(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCountKey).Err(); err != nil {
		s.logger.Sugar().Debugw("stats cache invalidation failed", "error", err)
	}
}
