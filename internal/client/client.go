package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zeon-projects/beach-cleanup-api/internal/form"
	"github.com/zeon-projects/beach-cleanup-api/internal/models"
)

// Client talks to the registration endpoint on behalf of the form
// controller. It implements form.Registrar.
type Client struct {
	baseURL string
	http    *http.Client
}

type registerPayload struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	RollNo           string `json:"rollNo"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
	Year             string `json:"year"`
	Branch           string `json:"branch"`
}

type registerResponse struct {
	Message string              `json:"message"`
	ID      string              `json:"id"`
	Data    models.Registration `json:"data"`
	Error   string              `json:"error"`
}

// New constructs a Client for the given API base URL.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Register submits the form values and returns the stored record.
func (c *Client) Register(ctx context.Context, values form.Values) (*models.Registration, error) {
	payload := registerPayload{
		Name:             values.Name,
		Email:            values.Email,
		Phone:            values.Phone,
		RollNo:           values.RollNo,
		EmergencyContact: values.EmergencyContact,
		EmergencyPhone:   values.EmergencyPhone,
		Year:             values.Year,
		Branch:           values.Branch,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/register", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send registration: %w", err)
	}
	defer resp.Body.Close()

	var decoded registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("registration failed: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		message := decoded.Message
		if message == "" {
			message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("registration failed: %s", message)
	}

	stored := decoded.Data
	if stored.ID == "" {
		stored.ID = decoded.ID
	}
	return &stored, nil
}
