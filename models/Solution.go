package models

// Solution is the single mutable submission slot of a participant (individual
// events) or a team (team events). It is created lazily on first submission
// and always looked up by (event, participant) or (event, team), never by id
type Solution struct {
    ID            string  `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EventID       string  `gorm:"type:uuid;not null;column:event_id" json:"event_id"`
    ParticipantID *string `gorm:"type:uuid;column:participant_id" json:"participant_id"`
    TeamID        *string `gorm:"type:uuid;column:team_id" json:"team_id"`
    Subject       string  `gorm:"type:varchar(255);not null" json:"subject"`
    Topic         string  `gorm:"type:varchar(255);not null" json:"topic"`
    Theses        string  `gorm:"type:varchar(5120)" json:"theses"`
    URL           string  `gorm:"type:varchar(255);column:url" json:"url"`

    Event       *Event       `gorm:"foreignKey:EventID" json:"-"`
    Participant *Participant `gorm:"foreignKey:ParticipantID" json:"-"`
    Team        *Team        `gorm:"foreignKey:TeamID" json:"-"`
}
