package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/apierr"
	"staffroster-web/pkg/logger"
)

// RosterAPIRepository handles duty-record calls to the roster service
type RosterAPIRepository struct {
	logger     logger.Logger
	baseURL    string
	httpClient *http.Client
}

// NewRosterAPIRepository creates a new roster repository
func NewRosterAPIRepository(baseURL string, timeout time.Duration, logger logger.Logger) repository.RosterRepository {
	return &RosterAPIRepository{
		logger:     logger,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// List fetches the routine list, scoped and filtered by the query parameters.
// Empty query fields are left off the request entirely.
func (r *RosterAPIRepository) List(ctx context.Context, employeeID string, query entity.ListQuery) ([]entity.DutyRecord, error) {
	params := url.Values{}
	params.Set("employeeID", employeeID)
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.SortBy != "" {
		params.Set("sortBy", string(query.SortBy))
	}
	if query.Order != "" {
		params.Set("order", string(query.Order))
	}

	reqURL := fmt.Sprintf("%s/api/routine?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create routine request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &apierr.TransportError{Op: "fetch routine", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apierr.StatusError{Op: "fetch routine", StatusCode: resp.StatusCode, Body: "Failed to fetch routine data"}
	}

	var records []entity.DutyRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode routine list: %w", err)
	}

	r.logger.Debug("Fetched routine list", "employeeID", employeeID, "count", len(records))
	return records, nil
}

// Update sends the full record as a PUT keyed by JobID
func (r *RosterAPIRepository) Update(ctx context.Context, employeeID string, record *entity.DutyRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal routine: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/routine/%s?employeeID=%s", r.baseURL, url.PathEscape(record.JobID), url.QueryEscape(employeeID))
	req, err := http.NewRequestWithContext(ctx, "PUT", reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "save routine", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.StatusError{Op: "save routine", StatusCode: resp.StatusCode, Body: "Failed to save routine."}
	}

	r.logger.Info("Routine updated", "jobID", record.JobID, "employeeID", employeeID)
	return nil
}

// Delete removes a record by JobID
func (r *RosterAPIRepository) Delete(ctx context.Context, employeeID, jobID string) error {
	reqURL := fmt.Sprintf("%s/api/routine/%s?employeeID=%s", r.baseURL, url.PathEscape(jobID), url.QueryEscape(employeeID))
	req, err := http.NewRequestWithContext(ctx, "DELETE", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "delete routine", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.StatusError{Op: "delete routine", StatusCode: resp.StatusCode, Body: "Failed to delete routine."}
	}

	var result entity.APIResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode delete response: %w", err)
	}
	if !result.Success {
		return &apierr.AppError{Op: "delete routine", Message: result.Message}
	}

	r.logger.Info("Routine deleted", "jobID", jobID, "employeeID", employeeID)
	return nil
}

// Create posts a single new record through the import endpoint
func (r *RosterAPIRepository) Create(ctx context.Context, employeeID string, record *entity.DutyRecord) error {
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal routine: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/routine/import?employeeID=%s", r.baseURL, url.QueryEscape(employeeID))
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create add request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "add routine", Err: err}
	}
	defer resp.Body.Close()

	var result entity.APIResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode add response: %w", err)
	}
	if !result.Success {
		return &apierr.AppError{Op: "add routine", Message: result.Message}
	}

	r.logger.Info("Routine added", "employeeID", employeeID, "sn", record.SN)
	return nil
}

// ImportExcel uploads a spreadsheet as multipart form data under field "file"
func (r *RosterAPIRepository) ImportExcel(ctx context.Context, employeeID, filename string, file []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(file); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	reqURL := fmt.Sprintf("%s/api/routine/import/excel?employeeID=%s", r.baseURL, url.QueryEscape(employeeID))
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create import request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return &apierr.TransportError{Op: "import excel", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apierr.StatusError{Op: "import excel", StatusCode: resp.StatusCode}
	}

	var result entity.APIResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode import response: %w", err)
	}
	if !result.Success {
		return &apierr.AppError{Op: "import excel", Message: result.Message}
	}

	r.logger.Info("Excel imported", "employeeID", employeeID, "filename", filename, "bytes", len(file))
	return nil
}

// ExportExcel downloads the routine spreadsheet as raw bytes
func (r *RosterAPIRepository) ExportExcel(ctx context.Context, employeeID string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/api/routine/export?employeeID=%s", r.baseURL, url.QueryEscape(employeeID))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create export request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, &apierr.TransportError{Op: "export routine", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apierr.StatusError{Op: "export routine", StatusCode: resp.StatusCode, Body: "Failed to export routine."}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read export body: %w", err)
	}

	r.logger.Info("Routine exported", "employeeID", employeeID, "bytes", len(data))
	return data, nil
}
