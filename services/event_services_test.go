package services

import (
	"testing"

	"api/models"

	"github.com/stretchr/testify/assert"
)

func TestTeamParticipantsFIOString(t *testing.T) {
	participants := []models.Participant{
		{User: &models.User{Surname: "Иванов", Name: "Иван", Patronymic: "Иванович"}},
		{FIO: "Неизвестный Участник"},
	}

	assert.Equal(t, "Иванов Иван Иванович, Неизвестный Участник", TeamParticipantsFIOString(participants))
	assert.Equal(t, "", TeamParticipantsFIOString(nil))
}

func TestTeamParticipantsEmailString(t *testing.T) {
	participants := []models.Participant{
		{User: &models.User{Email: "ivanov@school.test"}},
		{FIO: "Неизвестный Участник"},
		{User: &models.User{Email: "smirnova@school.test"}},
	}

	assert.Equal(t, "ivanov@school.test smirnova@school.test", TeamParticipantsEmailString(participants))
}

func TestTeamParticipantsPhoneString(t *testing.T) {
	participants := []models.Participant{
		{User: &models.User{Profile: &models.Profile{PhoneNumber: "+79001112233"}}},
		{User: &models.User{}},
		{FIO: "Неизвестный Участник"},
	}

	assert.Equal(t, "+79001112233", TeamParticipantsPhoneString(participants))
}
