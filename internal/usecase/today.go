package usecase

import (
	"context"
	"strings"
	"time"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/logger"
)

// TodayView is the read-only home page: it fetches the session user's full
// record list, keeps only the rows dated today (local calendar date), and
// paginates the filtered subset client-side. No mutations.
type TodayView struct {
	rosterRepo repository.RosterRepository
	logger     logger.Logger
	now        func() time.Time

	employeeID string

	routines []entity.DutyRecord
	loading  bool
	errMsg   string

	page     int
	pageSize int
}

// NewTodayView creates the home-page controller for one employee
func NewTodayView(rosterRepo repository.RosterRepository, employeeID string, pageSize int, logger logger.Logger) *TodayView {
	if pageSize < 1 {
		pageSize = 10
	}
	return &TodayView{
		rosterRepo: rosterRepo,
		logger:     logger,
		now:        time.Now,
		employeeID: employeeID,
		page:       1,
		pageSize:   pageSize,
	}
}

// Today returns the local calendar date as YYYY-MM-DD
func (v *TodayView) Today() string {
	return v.now().Format("2006-01-02")
}

// Load fetches the full list and filters locally to records whose date
// starts with today's date string
func (v *TodayView) Load(ctx context.Context) error {
	v.loading = true
	v.errMsg = ""
	defer func() { v.loading = false }()

	records, err := v.rosterRepo.List(ctx, v.employeeID, entity.ListQuery{})
	if err != nil {
		v.errMsg = displayError(err, "Failed to load data.")
		v.logger.Error("Failed to load today's routines", "employeeID", v.employeeID, "error", err)
		return err
	}

	today := v.Today()
	filtered := make([]entity.DutyRecord, 0, len(records))
	for _, r := range records {
		if r.Date != "" && strings.HasPrefix(r.Date, today) {
			filtered = append(filtered, r)
		}
	}

	v.routines = filtered
	v.clampPage()
	return nil
}

// SetPage moves to the given page, clamped to the valid range
func (v *TodayView) SetPage(page int) {
	v.page = page
	v.clampPage()
}

func (v *TodayView) clampPage() {
	if v.page < 1 {
		v.page = 1
	}
	if total := v.TotalPages(); v.page > total {
		v.page = total
	}
}

// TotalPages is always at least 1
func (v *TodayView) TotalPages() int {
	total := (len(v.routines) + v.pageSize - 1) / v.pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// Displayed returns the rows shown on the current page
func (v *TodayView) Displayed() []entity.DutyRecord {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.routines) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.routines) {
		end = len(v.routines)
	}
	return v.routines[start:end]
}

// State reports the current render state
func (v *TodayView) State() RenderState {
	switch {
	case v.loading:
		return StateLoading
	case v.errMsg != "":
		return StateError
	case len(v.routines) == 0:
		return StateEmpty
	default:
		return StateTable
	}
}

func (v *TodayView) Routines() []entity.DutyRecord { return v.routines }
func (v *TodayView) Error() string                 { return v.errMsg }
func (v *TodayView) Page() int                     { return v.page }
