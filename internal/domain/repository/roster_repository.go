package repository

import (
	"context"

	"staffroster-web/internal/domain/entity"
)

// RosterRepository defines the interface for duty-record operations
// against the remote roster service
type RosterRepository interface {
	List(ctx context.Context, employeeID string, query entity.ListQuery) ([]entity.DutyRecord, error)
	Update(ctx context.Context, employeeID string, record *entity.DutyRecord) error
	Delete(ctx context.Context, employeeID, jobID string) error
	Create(ctx context.Context, employeeID string, record *entity.DutyRecord) error
	ImportExcel(ctx context.Context, employeeID, filename string, file []byte) error
	ExportExcel(ctx context.Context, employeeID string) ([]byte, error)
}
