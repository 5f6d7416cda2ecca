package models

import "time"

// User roles, mirrored in the role column
const (
    RoleStudent = "student"
    RoleTeacher = "teacher"
    RoleOther   = "other"
)

// User represents a registered account: a student, a teacher or another adult
type User struct {
    ID            string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Email         string     `gorm:"type:varchar(60);unique;not null" json:"email"`
    Password      string     `gorm:"type:varchar(255);not null" json:"-"`
    Surname       string     `gorm:"type:varchar(30);not null" json:"surname"`
    Name          string     `gorm:"type:varchar(30);not null" json:"name"`
    Patronymic    string     `gorm:"type:varchar(30)" json:"patronymic"`
    Role          string     `gorm:"type:varchar(10);not null;default:'student'" json:"role"`
    Blocked       bool       `gorm:"not null;default:false" json:"blocked"`
    IsStaff       bool       `gorm:"not null;default:false;column:is_staff" json:"is_staff"`
    LastConnected *time.Time `gorm:"column:last_connected" json:"last_connected"`
    Profile       *Profile   `gorm:"foreignKey:UserID" json:"profile"`
}

// FullName returns "Surname Name Patronymic" with a trailing space trimmed when
// there is no patronymic
func (u *User) FullName() string {
    if u.Patronymic == "" {
        return u.Surname + " " + u.Name
    }
    return u.Surname + " " + u.Name + " " + u.Patronymic
}

// IsStudent reports whether the account belongs to a student
func (u *User) IsStudent() bool {
    return u.Role == RoleStudent
}
