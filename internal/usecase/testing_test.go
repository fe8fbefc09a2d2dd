package usecase

import (
	"context"
	"errors"
	"fmt"

	"staffroster-web/internal/domain/entity"
	"staffroster-web/pkg/logger"
)

// nopLogger keeps test output quiet
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Error(string, ...interface{})        {}
func (nopLogger) Fatal(string, ...interface{})        {}
func (l nopLogger) With(...interface{}) logger.Logger { return l }

// fakeRosterRepo is an in-memory stand-in for the remote roster service
type fakeRosterRepo struct {
	records []entity.DutyRecord

	listQueries []entity.ListQuery
	listErr     error

	updated   []entity.DutyRecord
	updateErr error

	deleted   []string
	deleteErr error

	created   []entity.DutyRecord
	createErr error

	imported  [][]byte
	importErr error

	exportData []byte
	exportErr  error
}

func (f *fakeRosterRepo) List(_ context.Context, _ string, query entity.ListQuery) ([]entity.DutyRecord, error) {
	f.listQueries = append(f.listQueries, query)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.DutyRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRosterRepo) Update(_ context.Context, _ string, record *entity.DutyRecord) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *record)
	for i := range f.records {
		if f.records[i].JobID == record.JobID {
			f.records[i] = *record
		}
	}
	return nil
}

func (f *fakeRosterRepo) Delete(_ context.Context, _ string, jobID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, jobID)
	kept := f.records[:0]
	for _, r := range f.records {
		if r.JobID != jobID {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func (f *fakeRosterRepo) Create(_ context.Context, _ string, record *entity.DutyRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	created := *record
	created.JobID = fmt.Sprintf("job-%d", len(f.records)+1)
	f.created = append(f.created, created)
	f.records = append(f.records, created)
	return nil
}

func (f *fakeRosterRepo) ImportExcel(_ context.Context, _, _ string, file []byte) error {
	if f.importErr != nil {
		return f.importErr
	}
	f.imported = append(f.imported, file)
	return nil
}

func (f *fakeRosterRepo) ExportExcel(context.Context, string) ([]byte, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportData, nil
}

// fakeUserRepo is an in-memory stand-in for the user endpoints
type fakeUserRepo struct {
	users []entity.UserAccount

	listCalls int
	listErr   error

	updated   []entity.UserAccount
	updateErr error

	created   []entity.UserAccount
	createErr error
}

func (f *fakeUserRepo) List(context.Context) ([]entity.UserAccount, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.UserAccount, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.UserAccount) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, *user)
	for i := range f.users {
		if f.users[i].EmployeeID == user.EmployeeID {
			f.users[i] = *user
		}
	}
	return nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.UserAccount) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *user)
	f.users = append(f.users, *user)
	return nil
}

// fakeAuthRepo scripts login and permission outcomes
type fakeAuthRepo struct {
	loginErr error
	perm     entity.Permission
	permErr  error
}

func (f *fakeAuthRepo) Login(_ context.Context, employeeID, password string) error {
	return f.loginErr
}

func (f *fakeAuthRepo) Permission(context.Context, string) (entity.Permission, error) {
	if f.permErr != nil {
		return "", f.permErr
	}
	return f.perm, nil
}

var errBoom = errors.New("boom")

func sampleRoutines(n int) []entity.DutyRecord {
	out := make([]entity.DutyRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.DutyRecord{
			JobID:      fmt.Sprintf("job-%d", i+1),
			Date:       "2024-07-01",
			SN:         fmt.Sprintf("SN%03d", i+1),
			Flight:     fmt.Sprintf("WW%d", 100+i),
			From:       "HKG",
			To:         "NRT",
			STA:        "08:30:00",
			EmployeeID: "E001",
			Supervisor: "S001",
		})
	}
	return out
}
