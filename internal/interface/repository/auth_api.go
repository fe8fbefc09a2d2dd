package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/apierr"
	"staffroster-web/pkg/logger"
)

// AuthAPIRepository handles login and permission calls to the roster service
type AuthAPIRepository struct {
	logger     logger.Logger
	baseURL    string
	httpClient *http.Client
}

// NewAuthAPIRepository creates a new auth repository
func NewAuthAPIRepository(baseURL string, timeout time.Duration, logger logger.Logger) repository.AuthRepository {
	return &AuthAPIRepository{
		logger:     logger,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	EmployeeID string `json:"employeeID"`
	Password   string `json:"password"`
}

// Login submits credentials; a failure body is the backend's literal error text
func (r *AuthAPIRepository) Login(ctx context.Context, employeeID, password string) error {
	jsonData, err := json.Marshal(loginRequest{EmployeeID: employeeID, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/login", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "login", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("Login rejected", "employeeID", employeeID, "status", resp.StatusCode)
		return &apierr.StatusError{Op: "login", StatusCode: resp.StatusCode, Body: string(body)}
	}

	r.logger.Info("Login accepted", "employeeID", employeeID)
	return nil
}

// Permission looks up the role of an employee
func (r *AuthAPIRepository) Permission(ctx context.Context, employeeID string) (entity.Permission, error) {
	reqURL := fmt.Sprintf("%s/api/permission?employeeID=%s", r.baseURL, url.QueryEscape(employeeID))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create permission request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", &apierr.TransportError{Op: "permission lookup", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &apierr.StatusError{Op: "permission lookup", StatusCode: resp.StatusCode}
	}

	var response struct {
		Permission entity.Permission `json:"permission"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode permission response: %w", err)
	}

	return response.Permission, nil
}
