// internal/domain/entity/query.go
package entity

// SortOrder is the direction of a server-side sort
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListQuery carries the search and sort parameters of a routine list fetch.
// Empty fields are omitted from the request entirely.
type ListQuery struct {
	Search string
	SortBy RoutineField
	Order  SortOrder
}

// APIResult is the {success,message} envelope returned by mutation endpoints
type APIResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
