package models

type UserRole string

const (
	UserRoleAdmin   UserRole = "administrator"
	UserRoleManager UserRole = "manager"
	UserRoleUser    UserRole = "user"
	UserRoleViewer  UserRole = "viewer"
)

func (r UserRole) CanApprove(level ApprovalLevel) bool {
	switch level {
	case ApprovalLevelManager:
		return r == UserRoleManager || r == UserRoleAdmin
	case ApprovalLevelAdmin:
		return r == UserRoleAdmin
	}
	return false
}
