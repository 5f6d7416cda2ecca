package models

// Participant is the event-membership record for one person: either a student
// applying individually (no team) or a member of a Team. The user reference is
// optional for events that do not require an account; fio keeps the free-text
// name in that case. At most one Participant row exists per (event, user)
type Participant struct {
    ID      string  `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EventID string  `gorm:"type:uuid;not null;column:event_id;uniqueIndex:idx_participants_event_user" json:"event_id"`
    UserID  *string `gorm:"type:uuid;column:user_id;uniqueIndex:idx_participants_event_user" json:"user_id"`
    FIO     string  `gorm:"type:varchar(255);column:fio" json:"fio"`
    TeamID  *string `gorm:"type:uuid;column:team_id" json:"team_id"`

    SupervisorID    *string `gorm:"type:uuid;column:supervisor_id" json:"supervisor_id"`
    SupervisorFIO   string  `gorm:"type:varchar(255);column:supervisor_fio" json:"supervisor_fio"`
    SupervisorEmail string  `gorm:"type:varchar(60);column:supervisor_email" json:"supervisor_email"`
    SupervisorPhone string  `gorm:"type:varchar(20);column:supervisor_phone" json:"supervisor_phone"`

    Event      *Event `gorm:"foreignKey:EventID" json:"-"`
    User       *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
    Team       *Team  `gorm:"foreignKey:TeamID" json:"-"`
    Supervisor *User  `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
}

// DisplayName returns the linked account's full name when present, the
// free-text fio otherwise
func (p *Participant) DisplayName() string {
    if p.User != nil {
        return p.User.FullName()
    }
    return p.FIO
}
