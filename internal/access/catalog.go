// Package access holds the role catalog and the authorization guard that
// decides which operations a caller may perform and on which slice of data.
package access

import (
	"strings"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

var roles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleTeamLead,
	domain.RoleEmployee,
	domain.RoleSaleEmployee,
	domain.RoleSaleManager,
}

var subRoles = []domain.SubRole{
	domain.SubRoleFronter,
	domain.SubRoleCloser,
}

var departments = []domain.DepartmentName{
	domain.DepartmentAdmin,
	domain.DepartmentSales,
	domain.DepartmentWriter,
	domain.DepartmentWordPress,
	domain.DepartmentSMM,
}

// Roles returns the valid roles.
func Roles() []domain.Role {
	return append([]domain.Role(nil), roles...)
}

// SubRoles returns the valid sales sub-roles.
func SubRoles() []domain.SubRole {
	return append([]domain.SubRole(nil), subRoles...)
}

// Departments returns the valid department names.
func Departments() []domain.DepartmentName {
	return append([]domain.DepartmentName(nil), departments...)
}

// RoutableDepartments lists the departments that accept routed tickets.
func RoutableDepartments() []domain.DepartmentName {
	return []domain.DepartmentName{
		domain.DepartmentWriter,
		domain.DepartmentWordPress,
		domain.DepartmentSMM,
	}
}

// IsRoutable reports whether tickets may be sent to dept.
func IsRoutable(dept domain.DepartmentName) bool {
	for _, d := range RoutableDepartments() {
		if d == dept {
			return true
		}
	}
	return false
}

// IsSubRoleRequired is true only for SALE_EMPLOYEE.
func IsSubRoleRequired(role domain.Role) bool {
	return role == domain.RoleSaleEmployee
}

// ParseRole accepts only an exact role name.
func ParseRole(value string) (domain.Role, error) {
	value = strings.TrimSpace(value)
	for _, role := range roles {
		if string(role) == value {
			return role, nil
		}
	}
	return "", apperrors.NewValidationError("unknown role", map[string]any{"role": value})
}

// ParseSubRole accepts only an exact sub-role name.
func ParseSubRole(value string) (domain.SubRole, error) {
	value = strings.TrimSpace(value)
	for _, sub := range subRoles {
		if string(sub) == value {
			return sub, nil
		}
	}
	return "", apperrors.NewValidationError("unknown sub_role", map[string]any{"sub_role": value})
}

// ParseDepartment accepts only an exact department name.
func ParseDepartment(value string) (domain.DepartmentName, error) {
	value = strings.TrimSpace(value)
	for _, dept := range departments {
		if string(dept) == value {
			return dept, nil
		}
	}
	return "", apperrors.NewValidationError("unknown department", map[string]any{"department": value})
}

// Assignment is a validated role/department/sub-role combination.
type Assignment struct {
	Role       domain.Role
	Department domain.DepartmentName
	SubRole    domain.SubRole
}

// ValidateAssignment checks a role, department and sub-role combination.
// A sub-role is always checked when given, then dropped for roles that do not take one.
func ValidateAssignment(role, department, subRole string) (Assignment, error) {
	r, err := ParseRole(role)
	if err != nil {
		return Assignment{}, err
	}
	d, err := ParseDepartment(department)
	if err != nil {
		return Assignment{}, err
	}
	out := Assignment{Role: r, Department: d}
	if strings.TrimSpace(subRole) == "" {
		if IsSubRoleRequired(r) {
			return Assignment{}, apperrors.NewValidationError("sub_role is required for SALE_EMPLOYEE", map[string]any{"role": r})
		}
		return out, nil
	}
	sub, err := ParseSubRole(subRole)
	if err != nil {
		return Assignment{}, err
	}
	if IsSubRoleRequired(r) {
		out.SubRole = sub
	}
	return out, nil
}
