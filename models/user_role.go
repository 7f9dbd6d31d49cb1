package models

import "github.com/pkg/errors"

type UserRole string

const (
	AdminRole          UserRole = "ADMIN"
	ProjectManagerRole UserRole = "PROJECTMANAGER"
	FinanceRole        UserRole = "FINANCE"
	EmployeeRole       UserRole = "EMPLOYEES"
)

var AllRoles = []UserRole{AdminRole, ProjectManagerRole, FinanceRole, EmployeeRole}

var roleHumanName = map[UserRole]string{
	AdminRole:          "Administrator",
	ProjectManagerRole: "Project manager",
	FinanceRole:        "Finance",
	EmployeeRole:       "Employee",
}

func ParseUserRole(value string) (UserRole, error) {
	role := UserRole(value)
	if !role.IsValid() {
		return "", errors.Errorf("unknown role: %q", value)
	}
	return role, nil
}

func (r UserRole) IsValid() bool {
	switch r {
	case AdminRole, ProjectManagerRole, FinanceRole, EmployeeRole:
		return true
	}
	return false
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

// IsFinance reports whether the role may approve and pay money flows.
func (r UserRole) IsFinance() bool {
	switch r {
	case AdminRole, FinanceRole:
		return true
	case ProjectManagerRole, EmployeeRole:
		return false
	}
	return false
}

// IsManager reports whether the role may review project work.
func (r UserRole) IsManager() bool {
	switch r {
	case AdminRole, ProjectManagerRole:
		return true
	case FinanceRole, EmployeeRole:
		return false
	}
	return false
}

const SystemUser = "System"
