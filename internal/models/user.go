package models

import (
	"time"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleStudent        UserRole = "student"
	RoleTeacher        UserRole = "teacher"
	RoleInstituteOwner UserRole = "institute_owner"
	RoleSecretary      UserRole = "secretary"
	RoleConsultant     UserRole = "consultant"
	RoleAdmin          UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleInstituteOwner, RoleSecretary, RoleConsultant, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role can author banks and quizzes.
func (r UserRole) IsStaff() bool {
	return r == RoleTeacher || r == RoleInstituteOwner || r == RoleAdmin
}

// Class is owned by the surrounding administration system; the engine only reads it.
type Class struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TeacherID string    `json:"teacher_id" gorm:"not null;index;size:255"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	CreatedAt time.Time `json:"created_at"`
}

func (Class) TableName() string {
	return "classes"
}

type ClassEnrollment struct {
	ClassID   uint   `json:"class_id" gorm:"primaryKey"`
	StudentID string `json:"student_id" gorm:"primaryKey;size:255"`
}

func (ClassEnrollment) TableName() string {
	return "class_enrollments"
}
