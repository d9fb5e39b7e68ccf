package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	apperrors "github.com/ShabiGardezi/crm-hunfa/pkg/util/errorutil"
)

func TestParseRoleIsExact(t *testing.T) {
	role, err := ParseRole(" TEAM_LEAD ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeamLead, role)

	_, err = ParseRole("team_lead")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = ParseRole("SUPERUSER")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestParseDepartmentRejectsUnknown(t *testing.T) {
	_, err := ParseDepartment("Marketing")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	dept, err := ParseDepartment("WordPress")
	require.NoError(t, err)
	assert.Equal(t, domain.DepartmentWordPress, dept)
}

func TestClosedSetsAreCopies(t *testing.T) {
	list := Roles()
	list[0] = "HACKED"
	assert.Equal(t, domain.RoleAdmin, Roles()[0])
	assert.Len(t, Departments(), 5)
	assert.Len(t, SubRoles(), 2)
}

func TestIsSubRoleRequired(t *testing.T) {
	for _, role := range Roles() {
		assert.Equal(t, role == domain.RoleSaleEmployee, IsSubRoleRequired(role), role)
	}
}

func TestValidateAssignment(t *testing.T) {
	t.Run("sale employee without sub role", func(t *testing.T) {
		_, err := ValidateAssignment("SALE_EMPLOYEE", "Sales", "")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("sale employee with closer", func(t *testing.T) {
		a, err := ValidateAssignment("SALE_EMPLOYEE", "Sales", "Closer")
		require.NoError(t, err)
		assert.Equal(t, domain.SubRoleCloser, a.SubRole)
	})

	t.Run("sale employee with unknown sub role", func(t *testing.T) {
		_, err := ValidateAssignment("SALE_EMPLOYEE", "Sales", "Setter")
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("employee sub role is dropped", func(t *testing.T) {
		a, err := ValidateAssignment("EMPLOYEE", "Writer", "Fronter")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployee, a.Role)
		assert.Equal(t, domain.DepartmentWriter, a.Department)
		assert.Empty(t, a.SubRole)
	})

	t.Run("employee with unknown sub role", func(t *testing.T) {
		_, err := ValidateAssignment("EMPLOYEE", "Writer", "Bogus")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	})

	t.Run("team lead without sub role", func(t *testing.T) {
		a, err := ValidateAssignment("TEAM_LEAD", "SMM", "  ")
		require.NoError(t, err)
		assert.Empty(t, a.SubRole)
	})
}

func TestRoutableDepartments(t *testing.T) {
	assert.ElementsMatch(t, []domain.DepartmentName{
		domain.DepartmentWriter, domain.DepartmentWordPress, domain.DepartmentSMM,
	}, RoutableDepartments())
	assert.False(t, IsRoutable(domain.DepartmentSales))
	assert.False(t, IsRoutable(domain.DepartmentAdmin))
}
