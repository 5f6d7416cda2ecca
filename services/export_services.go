package services

import (
	"bytes"
	"fmt"

	"api/models"

	"github.com/xuri/excelize/v2"
)

// ExportEventToExcel builds the roster report of an event as an Excel
// workbook: one row per participant in individual mode, one row per team
// otherwise
func ExportEventToExcel(event *models.Event) (*bytes.Buffer, error) {
	if !event.IsTeamBased() {
		participants, err := GetEventParticipants(event.ID)
		if err != nil {
			return nil, err
		}
		return buildIndividualWorkbook(event, participants)
	}

	teams, err := GetEventTeams(event.ID)
	if err != nil {
		return nil, err
	}
	return buildTeamWorkbook(event, teams)
}

func buildIndividualWorkbook(event *models.Event, participants []models.Participant) (*bytes.Buffer, error) {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(0)
	if err := xlsx.SetSheetName(sheet, event.Name); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	sheet = event.Name

	headers := []string{
		"Student name", "Student school", "Student email", "Student phone",
		"Supervisor name", "Supervisor email", "Supervisor phone", "Solution URL",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(sheet, cell, header)
	}

	for row, participant := range participants {
		values := []string{
			participant.DisplayName(),
			"", "", "",
			participant.SupervisorFIO,
			participant.SupervisorEmail,
			participant.SupervisorPhone,
			"",
		}
		if participant.User != nil {
			values[2] = participant.User.Email
			if participant.User.Profile != nil {
				values[1] = participant.User.Profile.School
				values[3] = participant.User.Profile.PhoneNumber
			}
		}
		if solution := GetParticipantSolution(event.ID, participant.ID); solution != nil {
			values[7] = solution.URL
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			xlsx.SetCellValue(sheet, cell, value)
		}
	}

	return xlsx.WriteToBuffer()
}

func buildTeamWorkbook(event *models.Event, teams []models.Team) (*bytes.Buffer, error) {
	xlsx := excelize.NewFile()
	defer xlsx.Close()

	sheet := xlsx.GetSheetName(0)
	if err := xlsx.SetSheetName(sheet, event.Name); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	sheet = event.Name

	headers := []string{
		"Team name", "School class", "Member names", "Member emails", "Member phones",
		"Supervisor name", "Supervisor email", "Supervisor phone", "Solution URL",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		xlsx.SetCellValue(sheet, cell, header)
	}

	for row, team := range teams {
		members := make([]models.Participant, 0, len(team.Participants))
		for _, member := range team.Participants {
			members = append(members, *member)
		}

		values := []string{
			team.Name,
			team.SchoolClass,
			TeamParticipantsFIOString(members),
			TeamParticipantsEmailString(members),
			TeamParticipantsPhoneString(members),
			team.SupervisorFIO,
			team.SupervisorEmail,
			team.SupervisorPhone,
			"",
		}
		if solution := GetTeamSolution(event.ID, team.ID); solution != nil {
			values[8] = solution.URL
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			xlsx.SetCellValue(sheet, cell, value)
		}
	}

	return xlsx.WriteToBuffer()
}
