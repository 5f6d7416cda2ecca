package services

import (
	"fmt"

	"api/database"
	"api/models"
)

// SolutionFields is the editable content of a submission slot
type SolutionFields struct {
	Subject string `json:"subject" binding:"required"`
	Topic   string `json:"topic" binding:"required"`
	Theses  string `json:"theses"`
	URL     string `json:"url"`
}

// SubmitParticipantSolution creates the participant's solution on first
// submission and updates it in place afterwards. The row is always looked up
// by (event, participant), never by solution id
func SubmitParticipantSolution(event *models.Event, participant *models.Participant, fields SolutionFields) (*models.Solution, error) {
	solution := GetParticipantSolution(event.ID, participant.ID)
	if solution == nil {
		solution = &models.Solution{
			EventID:       event.ID,
			ParticipantID: &participant.ID,
		}
	}
	return saveSolution(solution, fields)
}

// SubmitTeamSolution creates the team's solution on first submission and
// updates it in place afterwards, looked up by (event, team)
func SubmitTeamSolution(event *models.Event, team *models.Team, fields SolutionFields) (*models.Solution, error) {
	solution := GetTeamSolution(event.ID, team.ID)
	if solution == nil {
		solution = &models.Solution{
			EventID: event.ID,
			TeamID:  &team.ID,
		}
	}
	return saveSolution(solution, fields)
}

func saveSolution(solution *models.Solution, fields SolutionFields) (*models.Solution, error) {
	solution.Subject = fields.Subject
	solution.Topic = fields.Topic
	solution.Theses = fields.Theses
	solution.URL = fields.URL

	if err := database.DB.Save(solution).Error; err != nil {
		return nil, fmt.Errorf("failed to save solution: %w", err)
	}
	return solution, nil
}
