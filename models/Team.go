package models

// Team represents a team registered on an event. The supervisor is either a
// linked User with denormalized contact fields snapshotted at assignment time,
// or free-text contact fields when no matching account exists
type Team struct {
    ID      string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EventID string `gorm:"type:uuid;not null;column:event_id" json:"event_id"`
    Name    string `gorm:"type:varchar(100);not null" json:"name"`

    // Populated only when the event type is class_team
    SchoolClass string `gorm:"type:varchar(10);column:school_class" json:"school_class"`

    SupervisorID    *string `gorm:"type:uuid;column:supervisor_id" json:"supervisor_id"`
    SupervisorFIO   string  `gorm:"type:varchar(255);column:supervisor_fio" json:"supervisor_fio"`
    SupervisorEmail string  `gorm:"type:varchar(60);column:supervisor_email" json:"supervisor_email"`
    SupervisorPhone string  `gorm:"type:varchar(20);column:supervisor_phone" json:"supervisor_phone"`

    Event        *Event         `gorm:"foreignKey:EventID" json:"-"`
    Supervisor   *User          `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
    Participants []*Participant `gorm:"foreignKey:TeamID" json:"participants,omitempty"`
}
