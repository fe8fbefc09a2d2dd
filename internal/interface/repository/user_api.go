package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/apierr"
	"staffroster-web/pkg/logger"
)

// UserAPIRepository handles employee-account calls to the roster service
type UserAPIRepository struct {
	logger     logger.Logger
	baseURL    string
	httpClient *http.Client
}

// NewUserAPIRepository creates a new user repository
func NewUserAPIRepository(baseURL string, timeout time.Duration, logger logger.Logger) repository.UserRepository {
	return &UserAPIRepository{
		logger:     logger,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// List fetches the full employee directory
func (r *UserAPIRepository) List(ctx context.Context) ([]entity.UserAccount, error) {
	reqURL := fmt.Sprintf("%s/api/users", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create users request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &apierr.TransportError{Op: "fetch users", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apierr.StatusError{Op: "fetch users", StatusCode: resp.StatusCode, Body: "Failed to fetch users"}
	}

	var users []entity.UserAccount
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode user list: %w", err)
	}

	r.logger.Debug("Fetched user list", "count", len(users))
	return users, nil
}

// Update sends the full account as a PUT keyed by employee ID
func (r *UserAPIRepository) Update(ctx context.Context, user *entity.UserAccount) error {
	jsonData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/users/%s", r.baseURL, url.PathEscape(user.EmployeeID))
	req, err := http.NewRequestWithContext(ctx, "PUT", reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create user update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "update user", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.StatusError{Op: "update user", StatusCode: resp.StatusCode, Body: "Failed to update user"}
	}

	r.logger.Info("User updated", "employeeID", user.EmployeeID)
	return nil
}

// Create posts a new account
func (r *UserAPIRepository) Create(ctx context.Context, user *entity.UserAccount) error {
	jsonData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/users", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create user add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "add user", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.StatusError{Op: "add user", StatusCode: resp.StatusCode, Body: "Failed to add user"}
	}

	r.logger.Info("User added", "employeeID", user.EmployeeID)
	return nil
}
