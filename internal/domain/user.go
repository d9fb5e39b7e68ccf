package domain

import "time"

// Role enumerates the closed set of application roles.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleTeamLead     Role = "TEAM_LEAD"
	RoleEmployee     Role = "EMPLOYEE"
	RoleSaleEmployee Role = "SALE_EMPLOYEE"
	RoleSaleManager  Role = "SALE_MANAGER"
)

// SubRole enumerates sales sub-roles; only SALE_EMPLOYEE carries one.
type SubRole string

const (
	SubRoleFronter SubRole = "Fronter"
	SubRoleCloser  SubRole = "Closer"
)

// User is an authenticated back-office identity.
type User struct {
	ID             string
	UserName       string
	PasswordHash   string
	Role           Role
	DepartmentID   string
	DepartmentName DepartmentName
	SubRole        SubRole
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
