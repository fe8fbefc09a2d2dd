// internal/domain/entity/user_account.go
package entity

// Permission is the role assigned to an employee account
type Permission string

const (
	PermissionAdmin Permission = "Admin"
	PermissionStaff Permission = "Staff"
)

// UserAccount represents one employee login record.
// Password travels in clear text because the remote API defines it that way;
// a known weakness of the backend contract, not something this client can fix.
type UserAccount struct {
	EmployeeID string     `json:"employeeID"`
	Name       string     `json:"name"`
	Password   string     `json:"password"`
	Permission Permission `json:"permission"`
}

// IsAdmin reports whether the account carries the Admin role
func (u *UserAccount) IsAdmin() bool {
	return u.Permission == PermissionAdmin
}
