package services

import (
	"testing"

	"api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildIndividualWorkbookHeaders(t *testing.T) {
	event := &models.Event{Name: "Spring Olympiad", Type: models.EventTypeIndividual}

	buffer, err := buildIndividualWorkbook(event, nil)
	require.NoError(t, err)

	xlsx, err := excelize.OpenReader(buffer)
	require.NoError(t, err)
	defer xlsx.Close()

	assert.Equal(t, "Spring Olympiad", xlsx.GetSheetName(0))
	first, err := xlsx.GetCellValue("Spring Olympiad", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Student name", first)
}

func TestBuildTeamWorkbookHeaders(t *testing.T) {
	event := &models.Event{Name: "Robotics Cup", Type: models.EventTypeTeam}

	buffer, err := buildTeamWorkbook(event, nil)
	require.NoError(t, err)

	xlsx, err := excelize.OpenReader(buffer)
	require.NoError(t, err)
	defer xlsx.Close()

	assert.Equal(t, "Robotics Cup", xlsx.GetSheetName(0))
	first, err := xlsx.GetCellValue("Robotics Cup", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Team name", first)
}
