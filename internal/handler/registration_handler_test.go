package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeon-projects/beach-cleanup-api/internal/models"
	"github.com/zeon-projects/beach-cleanup-api/internal/service"
	appErrors "github.com/zeon-projects/beach-cleanup-api/pkg/errors"
	"github.com/zeon-projects/beach-cleanup-api/pkg/response"
)

type registrationServiceMock struct {
	lastReq     service.RegisterRequest
	registerErr error
	count       int
	countErr    error
}

func (m *registrationServiceMock) Register(ctx context.Context, req service.RegisterRequest) (*models.Registration, error) {
	m.lastReq = req
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	if req.Name == "" || req.Email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "")
	}
	return &models.Registration{
		ID:               "reg-1",
		Name:             req.Name,
		Email:            req.Email,
		RegistrationDate: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}, nil
}

func (m *registrationServiceMock) Count(ctx context.Context) (int, error) {
	return m.count, m.countErr
}

func postRegister(t *testing.T, h *RegistrationHandler, payload string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/api/register", bytes.NewReader([]byte(payload)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	h.Register(c)
	return w
}

func TestRegistrationHandlerRegisterSuccess(t *testing.T) {
	svc := &registrationServiceMock{}
	h := NewRegistrationHandler(svc)

	w := postRegister(t, h, `{"name":"Asha Patil","email":"asha@example.com","phone":"9876543210","year":"SE","branch":"Comps A"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Registration successful", envelope.Message)
	assert.Equal(t, "reg-1", envelope.ID)
	assert.NotNil(t, envelope.Data)
}

func TestRegistrationHandlerIgnoresClientRegistrationDate(t *testing.T) {
	svc := &registrationServiceMock{}
	h := NewRegistrationHandler(svc)

	w := postRegister(t, h, `{"name":"Asha","email":"a@b.c","registrationDate":"1999-01-01T00:00:00Z"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var stored models.Registration
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, 2025, stored.RegistrationDate.Year())
}

func TestRegistrationHandlerMissingName(t *testing.T) {
	svc := &registrationServiceMock{}
	h := NewRegistrationHandler(svc)

	w := postRegister(t, h, `{"name":"","email":"x@y.com"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Name and email are required", envelope.Message)
}

func TestRegistrationHandlerMalformedJSON(t *testing.T) {
	h := NewRegistrationHandler(&registrationServiceMock{})

	w := postRegister(t, h, `{"name":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Invalid request body", envelope.Message)
}

func TestRegistrationHandlerPersistenceFailure(t *testing.T) {
	svc := &registrationServiceMock{registerErr: appErrors.Wrap(errors.New("disk full"), appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)}
	h := NewRegistrationHandler(svc)

	w := postRegister(t, h, `{"name":"Asha","email":"a@b.c"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Registration failed", envelope.Message)
	assert.Equal(t, "disk full", envelope.Error)
}

func TestRegistrationHandlerCount(t *testing.T) {
	svc := &registrationServiceMock{count: 5}
	h := NewRegistrationHandler(svc)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/api/registrations/count", nil)
	c.Request = req
	h.Count(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":5`)
}
