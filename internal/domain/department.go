package domain

import "time"

// DepartmentName is the routing bucket a user belongs to or a ticket is sent to.
type DepartmentName string

const (
	DepartmentAdmin     DepartmentName = "Admin"
	DepartmentSales     DepartmentName = "Sales"
	DepartmentWriter    DepartmentName = "Writer"
	DepartmentWordPress DepartmentName = "WordPress"
	DepartmentSMM       DepartmentName = "SMM"
)

// Department is the persisted department row.
type Department struct {
	ID        string
	Name      DepartmentName
	CreatedAt time.Time
	UpdatedAt time.Time
}
