package models

import "time"

// Registration modes, governing the roster shape of an event
const (
    EventTypeIndividual              = "individual"
    EventTypeIndividualAndCollective = "individual_and_collective"
    EventTypeTeam                    = "team"
    EventTypeClassTeam               = "class_team"
)

// Event statuses. Only StatusRegistrationOpen accepts new registrations and
// roster edits; solutions stay editable while the event is ongoing
const (
    EventStatusPending   = "pending"
    EventStatusOpen      = "open"
    EventStatusOngoing   = "ongoing"
    EventStatusCompleted = "completed"
    EventStatusCancelled = "cancelled"
    EventStatusPostponed = "postponed"
)

// Event stages
const (
    EventStageSchool        = "school"
    EventStageDistrict      = "district"
    EventStageCity          = "city"
    EventStageRegional      = "regional"
    EventStageNational      = "national"
    EventStageInternational = "international"
)

// Event represents a competition or olympiad that users register for
type Event struct {
    ID          string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    Name        string `gorm:"type:varchar(100);unique;not null" json:"name"`
    Slug        string `gorm:"type:varchar(100);unique;not null" json:"slug"`
    Description string `gorm:"type:text" json:"description"`
    Type        string `gorm:"type:varchar(50);not null" json:"type"`
    Status      string `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
    Stage       string `gorm:"type:varchar(50);not null;default:'school'" json:"stage"`

    MinTeamSize int `gorm:"type:integer;default:1;column:min_team_size" json:"min_team_size"`
    MaxTeamSize int `gorm:"type:integer;default:1;column:max_team_size" json:"max_team_size"`

    RegistrationStart *time.Time `gorm:"type:date;column:registration_start" json:"registration_start"`
    RegistrationEnd   *time.Time `gorm:"type:date;column:registration_end" json:"registration_end"`
    EventStart        *time.Time `gorm:"type:date;column:event_start" json:"event_start"`

    NeedsAccount bool `gorm:"not null;default:true;column:needs_account" json:"needs_account"`
    Published    bool `gorm:"not null;default:false" json:"published"`
    Archived     bool `gorm:"not null;default:false" json:"archived"`

    Teams        []*Team        `gorm:"foreignKey:EventID" json:"teams,omitempty"`
    Participants []*Participant `gorm:"foreignKey:EventID" json:"participants,omitempty"`
}

// IsTeamBased reports whether the event's roster is made of teams rather than
// standalone participants
func (e *Event) IsTeamBased() bool {
    return e.Type != EventTypeIndividual
}

// RegistrationIsOpen reports whether new registrations and roster edits are
// accepted. Archived events are read-only regardless of status
func (e *Event) RegistrationIsOpen() bool {
    return e.Status == EventStatusOpen && !e.Archived
}

// SolutionsAreEditable reports whether solution submissions are accepted
func (e *Event) SolutionsAreEditable() bool {
    return (e.Status == EventStatusOpen || e.Status == EventStatusOngoing) && !e.Archived
}
