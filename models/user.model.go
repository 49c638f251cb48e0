package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values carried in the JWT and checked by the role middleware
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleParent  = "PARENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string     `json:"profile_image" gorm:"default:''"`
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Mobile              string     `json:"mobile" gorm:"default:''"`
	Role                string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, PARENT, ADMIN
	Password            string     `json:"-" gorm:"not null"`
	StudentCode         string     `json:"student_code" gorm:"index"` // immutable join code, students only
	IsEmailVerified     bool       `json:"is_email_verified" gorm:"default:false"`
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `json:"is_blocked" gorm:"default:false"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}
