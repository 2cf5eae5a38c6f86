package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	appErrors "github.com/zeon-projects/beach-cleanup-api/pkg/errors"
)

type mockRegistrationRepo struct {
	inserted  []models.Registration
	insertErr error
	count     int
	countErr  error
	healthErr error
}

func (m *mockRegistrationRepo) Insert(ctx context.Context, reg *models.Registration) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if reg.ID == "" {
		reg.ID = "generated"
	}
	m.inserted = append(m.inserted, *reg)
	return nil
}

func (m *mockRegistrationRepo) Count(ctx context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockRegistrationRepo) HealthCheck(ctx context.Context) error {
	return m.healthErr
}

type mockNotifier struct {
	notified []models.Registration
}

func (m *mockNotifier) NotifyRegistered(reg models.Registration) {
	m.notified = append(m.notified, reg)
}

func validRequest() RegisterRequest {
	return RegisterRequest{
		Name:             "Asha Patil",
		Email:            "asha@example.com",
		Phone:            "9876543210",
		RollNo:           "42",
		EmergencyContact: "Ravi Patil",
		EmergencyPhone:   "9123456780",
		Year:             models.YearSE,
		Branch:           "Comps A",
	}
}

func TestRegistrationServiceRegister(t *testing.T) {
	repo := &mockRegistrationRepo{}
	notif := &mockNotifier{}
	svc := NewRegistrationService(repo, notif, validator.New(), zap.NewNop(), RegistrationServiceOptions{})
	stamp := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	reg, err := svc.Register(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, stamp, reg.RegistrationDate)
	require.Len(t, repo.inserted, 1)
	require.Len(t, notif.notified, 1)
	assert.Equal(t, reg.ID, notif.notified[0].ID)
}

func TestRegistrationServiceRegisterMissingName(t *testing.T) {
	repo := &mockRegistrationRepo{}
	notif := &mockNotifier{}
	svc := NewRegistrationService(repo, notif, validator.New(), zap.NewNop(), RegistrationServiceOptions{})

	req := validRequest()
	req.Name = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
	assert.Empty(t, repo.inserted)
	assert.Empty(t, notif.notified)
}

func TestRegistrationServiceRegisterAcceptsPartialRecord(t *testing.T) {
	// Server-side checks are intentionally weaker than the form's:
	// only name and email are enforced.
	repo := &mockRegistrationRepo{}
	svc := NewRegistrationService(repo, &mockNotifier{}, validator.New(), zap.NewNop(), RegistrationServiceOptions{})

	reg, err := svc.Register(context.Background(), RegisterRequest{Name: "Asha", Email: "not-even-an-email"})
	require.NoError(t, err)
	assert.Empty(t, reg.Phone)
	assert.Empty(t, reg.Branch)
	require.Len(t, repo.inserted, 1)
}

func TestRegistrationServiceRegisterInsertFailure(t *testing.T) {
	repo := &mockRegistrationRepo{insertErr: errors.New("disk full")}
	notif := &mockNotifier{}
	svc := NewRegistrationService(repo, notif, validator.New(), zap.NewNop(), RegistrationServiceOptions{})

	_, err := svc.Register(context.Background(), validRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPersistence.Status, appErr.Status)
	assert.Empty(t, notif.notified)
}

func TestRegistrationServiceCount(t *testing.T) {
	repo := &mockRegistrationRepo{count: 12}
	svc := NewRegistrationService(repo, nil, validator.New(), zap.NewNop(), RegistrationServiceOptions{})

	total, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}

func TestRegistrationServiceReady(t *testing.T) {
	svc := NewRegistrationService(&mockRegistrationRepo{}, nil, validator.New(), zap.NewNop(), RegistrationServiceOptions{})
	require.NoError(t, svc.Ready(context.Background()))

	down := NewRegistrationService(&mockRegistrationRepo{healthErr: errors.New("refused")}, nil, validator.New(), zap.NewNop(), RegistrationServiceOptions{})
	err := down.Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnavailable.Status, appErrors.FromError(err).Status)
}
