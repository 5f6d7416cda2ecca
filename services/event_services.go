package services

import (
	"fmt"
	"strings"

	"api/database"
	"api/models"

	"gorm.io/gorm"
)

// GetPublishedEvents returns all published events, including archived ones
func GetPublishedEvents() ([]models.Event, error) {
	var events []models.Event
	if err := database.DB.Where("published = true").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// GetPublishedNotArchivedEvents returns the events shown on the main listing
func GetPublishedNotArchivedEvents() ([]models.Event, error) {
	var events []models.Event
	if err := database.DB.Where("published = true AND archived = false").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// GetEventBySlug returns a published event by its URL slug
func GetEventBySlug(slug string) (*models.Event, error) {
	var event models.Event
	if err := database.DB.Where("slug = ?", slug).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// TeamNameExistsInEvent reports whether a team with exactly this name is
// already registered on the event. The match is case-sensitive
func TeamNameExistsInEvent(eventID, name string) bool {
	var count int64
	database.DB.Model(&models.Team{}).
		Where("event_id = ? AND name = ?", eventID, name).
		Count(&count)
	return count > 0
}

// TeamNameTakenByOther is the edit-time variant of TeamNameExistsInEvent: the
// team's own current row is excluded so renaming a team to its current name
// is not an error
func TeamNameTakenByOther(eventID, name, teamID string) bool {
	var count int64
	database.DB.Model(&models.Team{}).
		Where("event_id = ? AND name = ? AND id <> ?", eventID, name, teamID).
		Count(&count)
	return count > 0
}

// IsUserParticipantOfEvent reports whether a Participant row exists for the
// (event, user) pair
func IsUserParticipantOfEvent(eventID, userID string) bool {
	var count int64
	database.DB.Model(&models.Participant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count)
	return count > 0
}

// GetEventParticipant returns the Participant row for the (event, user) pair,
// nil when the user is not registered
func GetEventParticipant(eventID, userID string) *models.Participant {
	var participant models.Participant
	err := database.DB.Preload("User.Profile").Preload("Supervisor").
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participant).Error
	if err != nil {
		return nil
	}
	return &participant
}

// GetTeamByID returns a team with its members preloaded
func GetTeamByID(teamID string) (*models.Team, error) {
	var team models.Team
	err := database.DB.Preload("Participants.User.Profile").Preload("Supervisor").
		First(&team, "id = ?", teamID).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// GetParticipantByID returns a participant row by id
func GetParticipantByID(participantID string) (*models.Participant, error) {
	var participant models.Participant
	err := database.DB.Preload("User.Profile").Preload("Supervisor").
		First(&participant, "id = ?", participantID).Error
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// GetEventTeams returns all teams of an event with members preloaded
func GetEventTeams(eventID string) ([]models.Team, error) {
	var teams []models.Team
	err := database.DB.Preload("Participants.User.Profile").Preload("Supervisor.Profile").
		Where("event_id = ?", eventID).Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}
	return teams, nil
}

// GetEventParticipants returns all participants of an event
func GetEventParticipants(eventID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := database.DB.Preload("User.Profile").Preload("Supervisor.Profile").
		Where("event_id = ?", eventID).Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	return participants, nil
}

// GetTeamsWithSupervisor returns the teams of an event supervised by a user.
// Used to scope the edit-target selection for staff actors
func GetTeamsWithSupervisor(eventID, supervisorID string) ([]models.Team, error) {
	var teams []models.Team
	err := database.DB.Preload("Participants.User").
		Where("event_id = ? AND supervisor_id = ?", eventID, supervisorID).
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supervised teams: %w", err)
	}
	return teams, nil
}

// GetParticipantsWithSupervisor returns the standalone participants of an
// event supervised by a user
func GetParticipantsWithSupervisor(eventID, supervisorID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := database.DB.Preload("User.Profile").
		Where("event_id = ? AND supervisor_id = ?", eventID, supervisorID).
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supervised participants: %w", err)
	}
	return participants, nil
}

// GetEventsWhereUserParticipates returns the events the user is registered on
func GetEventsWhereUserParticipates(userID string) ([]models.Event, error) {
	var events []models.Event
	err := database.DB.Raw(`
        SELECT DISTINCT e.*
        FROM events e
        JOIN participants p ON e.id = p.event_id
        WHERE p.user_id = ?
    `, userID).Scan(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// GetEventsWhereUserSupervises returns the events where the user is the
// supervisor-of-record of a team or of a standalone participant
func GetEventsWhereUserSupervises(userID string) ([]models.Event, error) {
	var events []models.Event
	err := database.DB.Raw(`
        SELECT DISTINCT e.*
        FROM events e
        LEFT JOIN teams t ON e.id = t.event_id
        LEFT JOIN participants p ON e.id = p.event_id
        WHERE t.supervisor_id = ? OR p.supervisor_id = ?
    `, userID, userID).Scan(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// GetUserDiplomas returns the diplomas visible to a user: those of events
// where the user participates, supervises a team or supervises a participant
func GetUserDiplomas(userID string) ([]models.EventDiplomas, error) {
	var diplomas []models.EventDiplomas
	err := database.DB.Raw(`
        SELECT DISTINCT d.*
        FROM event_diplomas d
        WHERE d.event_id IN (
            SELECT event_id FROM participants WHERE user_id = ? OR supervisor_id = ?
            UNION
            SELECT event_id FROM teams WHERE supervisor_id = ?
        )
    `, userID, userID, userID).Scan(&diplomas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch diplomas: %w", err)
	}
	return diplomas, nil
}

// GetEventTask returns the event's task, nil when none was published
func GetEventTask(eventID string) *models.Task {
	var task models.Task
	if err := database.DB.Where("event_id = ?", eventID).First(&task).Error; err != nil {
		return nil
	}
	return &task
}

// GetTeamSolution returns the team's solution for an event, nil when the team
// has not submitted yet
func GetTeamSolution(eventID, teamID string) *models.Solution {
	var solution models.Solution
	err := database.DB.Where("event_id = ? AND team_id = ?", eventID, teamID).
		First(&solution).Error
	if err != nil {
		return nil
	}
	return &solution
}

// GetParticipantSolution returns the participant's solution for an event, nil
// when nothing was submitted yet
func GetParticipantSolution(eventID, participantID string) *models.Solution {
	var solution models.Solution
	err := database.DB.Where("event_id = ? AND participant_id = ?", eventID, participantID).
		First(&solution).Error
	if err != nil {
		return nil
	}
	return &solution
}

// TeamParticipantsFIOString concatenates the member names of a team for
// reporting. Members must be preloaded with their users
func TeamParticipantsFIOString(participants []models.Participant) string {
	names := make([]string, 0, len(participants))
	for i := range participants {
		names = append(names, participants[i].DisplayName())
	}
	return strings.Join(names, ", ")
}

// TeamParticipantsEmailString concatenates the member emails of a team.
// Free-text members without an account contribute nothing
func TeamParticipantsEmailString(participants []models.Participant) string {
	emails := make([]string, 0, len(participants))
	for i := range participants {
		if participants[i].User != nil {
			emails = append(emails, participants[i].User.Email)
		}
	}
	return strings.Join(emails, " ")
}

// TeamParticipantsPhoneString concatenates the member phone numbers of a team
func TeamParticipantsPhoneString(participants []models.Participant) string {
	phones := make([]string, 0, len(participants))
	for i := range participants {
		if participants[i].User != nil && participants[i].User.Profile != nil {
			phones = append(phones, participants[i].User.Profile.PhoneNumber)
		}
	}
	return strings.Join(phones, " ")
}

// IsNotFound reports whether err is the gorm record-not-found error
func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
