package usecase

import (
	"context"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/internal/domain/repository"
	"staffroster-web/pkg/logger"
)

// UserDirectory owns the employee-account list view state. Same inline-edit
// and pagination pattern as the roster controller over a simpler field set:
// no search, no sort, no delete, no import/export. Unlike roster save, both
// mutations re-fetch the directory on success.
type UserDirectory struct {
	userRepo repository.UserRepository
	logger   logger.Logger

	users      []entity.UserAccount
	loading    bool
	errMsg     string
	successMsg string

	page     int
	pageSize int

	editIdx int
	draft   *entity.UserAccount

	showAddModal bool
	addDraft     entity.UserAccount
}

// NewUserDirectory creates the directory controller; permission gating to
// admins happens in the web layer before one of these is ever constructed
func NewUserDirectory(userRepo repository.UserRepository, pageSize int, logger logger.Logger) *UserDirectory {
	if pageSize < 1 {
		pageSize = 10
	}
	return &UserDirectory{
		userRepo: userRepo,
		logger:   logger,
		page:     1,
		pageSize: pageSize,
		editIdx:  -1,
		addDraft: entity.UserAccount{Permission: entity.PermissionStaff},
	}
}

// Load fetches the full directory and replaces the in-memory collection
func (d *UserDirectory) Load(ctx context.Context) error {
	d.loading = true
	d.errMsg = ""
	defer func() { d.loading = false }()

	users, err := d.userRepo.List(ctx)
	if err != nil {
		d.errMsg = displayError(err, "Failed to load users.")
		d.logger.Error("Failed to load users", "error", err)
		return err
	}

	d.users = users
	d.clampPage()
	return nil
}

// BeginEdit copies the account at the given index into the draft
func (d *UserDirectory) BeginEdit(idx int) {
	if idx < 0 || idx >= len(d.users) {
		return
	}
	user := d.users[idx]
	d.editIdx = idx
	d.draft = &user
	d.successMsg = ""
}

// CancelEdit discards the draft
func (d *UserDirectory) CancelEdit() {
	d.editIdx = -1
	d.draft = nil
}

// UpdateDraft mutates the draft locally; the employee ID is the record key
// and stays fixed
func (d *UserDirectory) UpdateDraft(name, password string, permission entity.Permission) {
	if d.draft == nil {
		return
	}
	d.draft.Name = name
	d.draft.Password = password
	d.draft.Permission = permission
}

// SaveEdit sends the full draft as an update keyed by employee ID. Success
// clears the edit state and re-fetches the directory.
func (d *UserDirectory) SaveEdit(ctx context.Context) error {
	if d.draft == nil || d.editIdx < 0 {
		return nil
	}
	d.errMsg = ""

	if err := d.userRepo.Update(ctx, d.draft); err != nil {
		d.errMsg = displayError(err, "Failed to update user.")
		d.logger.Error("Failed to update user", "employeeID", d.draft.EmployeeID, "error", err)
		return err
	}

	d.successMsg = "User updated successfully."
	d.editIdx = -1
	d.draft = nil
	return d.Load(ctx)
}

// UpdateAddDraft mutates the creation form
func (d *UserDirectory) UpdateAddDraft(employeeID, name, password string, permission entity.Permission) {
	d.addDraft = entity.UserAccount{
		EmployeeID: employeeID,
		Name:       name,
		Password:   password,
		Permission: permission,
	}
}

// OpenAddModal shows the creation form
func (d *UserDirectory) OpenAddModal() { d.showAddModal = true }

// CloseAddModal hides the creation form
func (d *UserDirectory) CloseAddModal() { d.showAddModal = false }

// AddUser posts the creation draft as a new account. Success resets the
// form, closes the modal and re-fetches the directory.
func (d *UserDirectory) AddUser(ctx context.Context) error {
	d.errMsg = ""

	user := d.addDraft
	if err := d.userRepo.Create(ctx, &user); err != nil {
		d.errMsg = displayError(err, "Failed to add user.")
		d.logger.Error("Failed to add user", "employeeID", user.EmployeeID, "error", err)
		return err
	}

	d.successMsg = "User added successfully."
	d.addDraft = entity.UserAccount{Permission: entity.PermissionStaff}
	d.showAddModal = false
	return d.Load(ctx)
}

// SetPage moves to the given page, clamped to the valid range
func (d *UserDirectory) SetPage(page int) {
	d.page = page
	d.clampPage()
}

func (d *UserDirectory) clampPage() {
	if d.page < 1 {
		d.page = 1
	}
	if total := d.TotalPages(); d.page > total {
		d.page = total
	}
}

// TotalPages is always at least 1
func (d *UserDirectory) TotalPages() int {
	total := (len(d.users) + d.pageSize - 1) / d.pageSize
	if total < 1 {
		total = 1
	}
	return total
}

// Displayed returns the accounts shown on the current page
func (d *UserDirectory) Displayed() []entity.UserAccount {
	start := (d.page - 1) * d.pageSize
	if start >= len(d.users) {
		return nil
	}
	end := start + d.pageSize
	if end > len(d.users) {
		end = len(d.users)
	}
	return d.users[start:end]
}

// State reports the current render state
func (d *UserDirectory) State() RenderState {
	switch {
	case d.loading:
		return StateLoading
	case d.errMsg != "":
		return StateError
	case len(d.users) == 0:
		return StateEmpty
	default:
		return StateTable
	}
}

func (d *UserDirectory) Users() []entity.UserAccount  { return d.users }
func (d *UserDirectory) Error() string                { return d.errMsg }
func (d *UserDirectory) Success() string              { return d.successMsg }
func (d *UserDirectory) Page() int                    { return d.page }
func (d *UserDirectory) EditIndex() int               { return d.editIdx }
func (d *UserDirectory) Draft() *entity.UserAccount   { return d.draft }
func (d *UserDirectory) ShowAddModal() bool           { return d.showAddModal }
func (d *UserDirectory) AddDraft() entity.UserAccount { return d.addDraft }
