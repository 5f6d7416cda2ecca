package models

// Task is the event-wide assignment text, at most one per event and read-only
// to participants
type Task struct {
    ID      string `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
    EventID string `gorm:"type:uuid;not null;unique;column:event_id" json:"event_id"`
    Text    string `gorm:"type:text" json:"text"`

    Event *Event `gorm:"foreignKey:EventID" json:"-"`
}
