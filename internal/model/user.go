package model

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// AllRoles lists every role. Adding a role means updating ParseUserRole and the
// switch in middleware.RoleMiddleware.
var AllRoles = []UserRole{Student, Teacher, Admin}

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case Student:
		return Student, nil
	case Teacher:
		return Teacher, nil
	case Admin:
		return Admin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r UserRole) Valid() bool {
	_, err := ParseUserRole(string(r))
	return err == nil
}

// swagger:model User
type User struct {
	BaseModel
	Username     string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password     string     `gorm:"size:100;not null" json:"-"`
	Role         UserRole   `gorm:"size:20;index;not null;default:'student'" json:"role"`
	FullName     string     `gorm:"size:150;not null" json:"full_name"`
	Email        *string    `gorm:"size:150;uniqueIndex" json:"email,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	MatricNumber *string    `gorm:"size:50;uniqueIndex" json:"matric_number,omitempty"`
	ClassLevel   string     `gorm:"size:20;index" json:"class_level,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (User) TableName() string {
	return "users"
}
