package models

import "time"

// Profile holds the extended account data filled in after registration
type Profile struct {
    ID                string     `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    UserID            string     `gorm:"type:uuid;not null;unique;column:user_id" json:"user_id"`
    DateOfBirth       *time.Time `gorm:"type:date;column:date_of_birth" json:"date_of_birth"`
    School            string     `gorm:"type:varchar(255)" json:"school"`
    FromCurrentSchool bool       `gorm:"not null;default:true;column:from_current_school" json:"from_current_school"`
    YearOfStudy       *int       `gorm:"type:smallint;column:year_of_study" json:"year_of_study"`
    PhoneNumber       string     `gorm:"type:varchar(20);column:phone_number" json:"phone_number"`
}
