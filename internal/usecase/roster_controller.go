package usecase

import (
	"context"
	"errors"
	"fmt"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/apierr"
	"staffroster-web/pkg/logger"
)

// ErrAdminOnly is returned when a staff session attempts an admin mutation
var ErrAdminOnly = errors.New("admin permission required")

// RosterController owns the duty-record list view state for one session:
// the fetched collection, the search/sort parameters, client-side
// pagination and the single-row inline edit draft. All mutations go to the
// remote roster service; add, delete and import re-fetch the whole list on
// success while save patches the edited row in place.
type RosterController struct {
	rosterRepo repository.RosterRepository
	logger     logger.Logger

	employeeID string
	isAdmin    bool

	routines   []entity.DutyRecord
	loading    bool
	errMsg     string
	successMsg string

	query    entity.ListQuery
	page     int
	pageSize int

	editIdx int
	draft   *entity.DutyRecord

	showAddModal bool
	addDraft     entity.DutyRecord

	validateImport func(file []byte) error
}

// NewRosterController creates a roster controller scoped to one employee.
// The initial sort matches the table default: date ascending.
func NewRosterController(rosterRepo repository.RosterRepository, employeeID string, isAdmin bool, pageSize int, logger logger.Logger) *RosterController {
	if pageSize < 1 {
		pageSize = 10
	}
	return &RosterController{
		rosterRepo: rosterRepo,
		logger:     logger,
		employeeID: employeeID,
		isAdmin:    isAdmin,
		query:      entity.ListQuery{SortBy: entity.FieldDate, Order: entity.OrderAsc},
		page:       1,
		pageSize:   pageSize,
		editIdx:    -1,
	}
}

// SetImportValidator installs a local pre-upload check for Excel imports
func (c *RosterController) SetImportValidator(fn func(file []byte) error) {
	c.validateImport = fn
}

// Load fetches the routine list with the current query and replaces the
// in-memory collection. Invoked on mount and on every query change.
func (c *RosterController) Load(ctx context.Context) error {
	c.loading = true
	c.errMsg = ""
	defer func() { c.loading = false }()

	records, err := c.rosterRepo.List(ctx, c.employeeID, c.query)
	if err != nil {
		c.errMsg = displayError(err, "Failed to load data.")
		c.logger.Error("Failed to load routines", "employeeID", c.employeeID, "error", err)
		return err
	}

	c.routines = records
	c.clampPage()
	return nil
}

// refetchAll reloads the full, unfiltered list after a mutation.
// The search and sort parameters are deliberately left off, matching how
// every post-mutation refresh behaves.
func (c *RosterController) refetchAll(ctx context.Context) {
	c.loading = true
	defer func() { c.loading = false }()

	records, err := c.rosterRepo.List(ctx, c.employeeID, entity.ListQuery{})
	if err != nil {
		c.errMsg = displayError(err, "Failed to load data.")
		c.logger.Error("Refetch after mutation failed", "employeeID", c.employeeID, "error", err)
		return
	}
	c.routines = records
	c.clampPage()
}

// SetSearch updates the search text and re-fetches; every change triggers a
// new request rather than a local re-filter
func (c *RosterController) SetSearch(ctx context.Context, search string) error {
	c.query.Search = search
	return c.Load(ctx)
}

// ToggleSort sets the sort column and re-fetches. Clicking the column that
// is already sorted ascending flips it to descending; anything else lands
// on ascending.
func (c *RosterController) ToggleSort(ctx context.Context, field entity.RoutineField) error {
	if !field.Valid() {
		return fmt.Errorf("unknown sort field %q", field)
	}
	if c.query.SortBy == field && c.query.Order == entity.OrderAsc {
		c.query.Order = entity.OrderDesc
	} else {
		c.query.Order = entity.OrderAsc
	}
	c.query.SortBy = field
	return c.Load(ctx)
}

// BeginEdit copies the row at the given index into the draft. Entering edit
// on a new row discards any unsaved draft on another.
func (c *RosterController) BeginEdit(idx int) {
	if idx < 0 || idx >= len(c.routines) {
		return
	}
	record := c.routines[idx]
	c.editIdx = idx
	c.draft = &record
	c.successMsg = ""
}

// CancelEdit discards the draft; calling it twice is a no-op the second time
func (c *RosterController) CancelEdit() {
	c.editIdx = -1
	c.draft = nil
	c.successMsg = ""
}

// UpdateDraftField mutates the draft locally. SN and JobID stay fixed.
func (c *RosterController) UpdateDraftField(field entity.RoutineField, value string) {
	if c.draft == nil {
		return
	}
	c.draft.Set(field, value)
}

// SaveEdit sends the full draft as an update keyed by JobID. On success the
// edited row is patched in place with no re-fetch; on failure the edit
// state stays intact so the operator can retry.
func (c *RosterController) SaveEdit(ctx context.Context) error {
	if c.draft == nil || c.editIdx < 0 {
		return nil
	}
	c.errMsg = ""
	c.successMsg = ""

	if err := c.rosterRepo.Update(ctx, c.employeeID, c.draft); err != nil {
		c.errMsg = displayError(err, "Failed to save changes.")
		c.logger.Error("Failed to save routine", "jobID", c.draft.JobID, "error", err)
		return err
	}

	if c.editIdx < len(c.routines) {
		c.routines[c.editIdx] = *c.draft
	}
	c.editIdx = -1
	c.draft = nil
	c.successMsg = "Routine saved successfully."
	return nil
}

// UpdateAddField mutates the creation form draft. SN is assignable here,
// unlike in the edit draft: it only becomes immutable once the record exists.
func (c *RosterController) UpdateAddField(field entity.RoutineField, value string) {
	if field == entity.FieldSN {
		c.addDraft.SN = value
		return
	}
	c.addDraft.Set(field, value)
}

// OpenAddModal shows the creation form (admin only in the rendered UI)
func (c *RosterController) OpenAddModal() { c.showAddModal = true }

// CloseAddModal hides the creation form without clearing its inputs
func (c *RosterController) CloseAddModal() { c.showAddModal = false }

// AddRecord posts the creation draft as a new record. Success closes the
// form, clears its inputs and re-fetches the entire list.
func (c *RosterController) AddRecord(ctx context.Context) error {
	if !c.isAdmin {
		return ErrAdminOnly
	}
	c.errMsg = ""

	record := c.addDraft
	if err := c.rosterRepo.Create(ctx, c.employeeID, &record); err != nil {
		c.errMsg = displayError(err, "Failed to add routine.")
		c.logger.Error("Failed to add routine", "error", err)
		return err
	}

	c.showAddModal = false
	c.addDraft = entity.DutyRecord{}
	c.successMsg = "Routine added successfully."
	c.refetchAll(ctx)
	return nil
}

// DeleteRecord removes a record by JobID. The caller must have taken the
// operator through an explicit confirmation first; an unconfirmed call is a
// no-op. Success re-fetches the entire list.
func (c *RosterController) DeleteRecord(ctx context.Context, jobID string, confirmed bool) error {
	if !c.isAdmin {
		return ErrAdminOnly
	}
	if !confirmed {
		return nil
	}
	c.errMsg = ""

	if err := c.rosterRepo.Delete(ctx, c.employeeID, jobID); err != nil {
		switch {
		case apierr.IsNotFound(err):
			c.errMsg = "Delete endpoint not found. Please check backend implementation."
		default:
			c.errMsg = displayError(err, "Failed to delete routine.")
		}
		c.logger.Error("Failed to delete routine", "jobID", jobID, "error", err)
		return err
	}

	c.successMsg = "Routine deleted successfully."
	c.refetchAll(ctx)
	return nil
}

// ImportExcel uploads a spreadsheet through the bulk import endpoint.
// When a local validator is installed the file is checked before any bytes
// leave the machine. Success re-fetches the entire list.
func (c *RosterController) ImportExcel(ctx context.Context, filename string, file []byte) error {
	if !c.isAdmin {
		return ErrAdminOnly
	}
	c.errMsg = ""

	if c.validateImport != nil {
		if err := c.validateImport(file); err != nil {
			c.errMsg = err.Error()
			return err
		}
	}

	if err := c.rosterRepo.ImportExcel(ctx, c.employeeID, filename, file); err != nil {
		switch {
		case apierr.IsNotFound(err):
			c.errMsg = "Import endpoint not found. Please check backend implementation."
		case apierr.StatusCode(err) != 0:
			c.errMsg = "Failed to import routine. (Check if Excel time columns are in HH:mm:ss format)"
		default:
			c.errMsg = displayError(err, "Failed to import routine. If importing time columns, make sure they are in HH:mm:ss format.")
		}
		c.logger.Error("Failed to import excel", "filename", filename, "error", err)
		return err
	}

	c.successMsg = "Excel imported successfully."
	c.refetchAll(ctx)
	return nil
}

// ExportExcel downloads the routine spreadsheet; the list state is untouched
func (c *RosterController) ExportExcel(ctx context.Context) ([]byte, error) {
	data, err := c.rosterRepo.ExportExcel(ctx, c.employeeID)
	if err != nil {
		c.errMsg = displayError(err, "Failed to export routine.")
		c.logger.Error("Failed to export routine", "error", err)
		return nil, err
	}
	return data, nil
}

// SetPage moves to the given page, clamped to the valid range
func (c *RosterController) SetPage(page int) {
	c.page = page
	c.clampPage()
}

func (c *RosterController) clampPage() {
	if c.page < 1 {
		c.page = 1
	}
	if total := c.TotalPages(); c.page > total {
		c.page = total
	}
}

// TotalPages is always at least 1, even over an empty collection
func (c *RosterController) TotalPages() int {
	total := (len(c.routines) + c.pageSize - 1) / c.pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// Displayed returns the slice of the collection shown on the current page
func (c *RosterController) Displayed() []entity.DutyRecord {
	start := (c.page - 1) * c.pageSize
	if start >= len(c.routines) {
		return nil
	}
	end := start + c.pageSize
	if end > len(c.routines) {
		end = len(c.routines)
	}
	return c.routines[start:end]
}

// State reports which of the four mutually exclusive render states applies
func (c *RosterController) State() RenderState {
	switch {
	case c.loading:
		return StateLoading
	case c.errMsg != "":
		return StateError
	case len(c.routines) == 0:
		return StateEmpty
	default:
		return StateTable
	}
}

// Accessors for the view layer.

func (c *RosterController) Routines() []entity.DutyRecord { return c.routines }
func (c *RosterController) EmployeeID() string            { return c.employeeID }
func (c *RosterController) IsAdmin() bool                 { return c.isAdmin }
func (c *RosterController) Error() string                 { return c.errMsg }
func (c *RosterController) Success() string               { return c.successMsg }
func (c *RosterController) Query() entity.ListQuery       { return c.query }
func (c *RosterController) Page() int                     { return c.page }
func (c *RosterController) PageSize() int                 { return c.pageSize }
func (c *RosterController) EditIndex() int                { return c.editIdx }
func (c *RosterController) Draft() *entity.DutyRecord     { return c.draft }
func (c *RosterController) ShowAddModal() bool            { return c.showAddModal }
func (c *RosterController) AddDraft() entity.DutyRecord   { return c.addDraft }
