package services

import (
	"testing"

	"api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResolver resolves full names against a fixed directory of accounts
func fakeResolver(users ...*models.User) ResolveFunc {
	return func(fio string) *models.User {
		parsed, ok := ParseFullName(fio)
		if !ok {
			return nil
		}
		for _, user := range users {
			if user.Surname != parsed.Surname || user.Name != parsed.Name {
				continue
			}
			if parsed.Patronymic != "" && user.Patronymic != parsed.Patronymic {
				continue
			}
			return user
		}
		return nil
	}
}

func student(surname, name, email string) *models.User {
	return &models.User{
		ID:      "student-" + email,
		Surname: surname,
		Name:    name,
		Role:    models.RoleStudent,
		Email:   email,
	}
}

func teacher(surname, name, email string) *models.User {
	return &models.User{
		ID:      "teacher-" + email,
		Surname: surname,
		Name:    name,
		Role:    models.RoleTeacher,
		Email:   email,
		Profile: &models.Profile{PhoneNumber: "+79001234567"},
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	assert.False(t, errs.HasErrors())

	errs.Add("team_name", ErrMsgRequired)
	errs.Add("team_name", ErrMsgTeamNameTaken)
	assert.Equal(t, ErrMsgRequired, errs["team_name"], "first message wins")

	other := FieldErrors{"team_name": ErrMsgTeamNameTaken, "school_class": ErrMsgRequired}
	errs.Merge(other)
	assert.Equal(t, ErrMsgRequired, errs["team_name"])
	assert.Equal(t, ErrMsgRequired, errs["school_class"])
	assert.True(t, errs.HasErrors())
}

func TestResolveSupervisor(t *testing.T) {
	resolve := fakeResolver(
		teacher("Петрова", "Мария", "petrova@school.test"),
		student("Сидоров", "Олег", "sidorov@school.test"),
	)

	t.Run("blank name is required", func(t *testing.T) {
		_, errs := ResolveSupervisor(resolve, "  ", "", "")
		assert.Equal(t, ErrMsgRequired, errs["supervisor_fio"])
	})

	t.Run("matching account is linked and contacts snapshotted", func(t *testing.T) {
		identity, errs := ResolveSupervisor(resolve, "Петрова Мария", "ignored@example.com", "ignored")
		require.False(t, errs.HasErrors())
		require.NotNil(t, identity.User)
		assert.Equal(t, "Петрова Мария", identity.FIO)
		assert.Equal(t, "petrova@school.test", identity.Email)
		assert.Equal(t, "+79001234567", identity.Phone)
	})

	t.Run("student account cannot supervise", func(t *testing.T) {
		_, errs := ResolveSupervisor(resolve, "Сидоров Олег", "", "")
		assert.Equal(t, ErrMsgSupervisorIsStudent, errs["supervisor_fio"])
	})

	t.Run("unmatched name requires both contacts", func(t *testing.T) {
		_, errs := ResolveSupervisor(resolve, "Кузнецов Павел", "", "")
		assert.Equal(t, ErrMsgSupervisorContacts, errs["supervisor_fio"])
		assert.Equal(t, ErrMsgRequired, errs["supervisor_email"])
		assert.Equal(t, ErrMsgRequired, errs["supervisor_phone"])
	})

	t.Run("unmatched name with one contact missing", func(t *testing.T) {
		_, errs := ResolveSupervisor(resolve, "Кузнецов Павел", "pk@example.com", "")
		assert.Equal(t, ErrMsgSupervisorContacts, errs["supervisor_fio"])
		assert.Equal(t, ErrMsgRequired, errs["supervisor_phone"])
		assert.NotContains(t, errs, "supervisor_email")
	})

	t.Run("invalid free-text contacts are rejected", func(t *testing.T) {
		_, errs := ResolveSupervisor(resolve, "Кузнецов Павел", "not-an-email", "not-a-phone")
		assert.Equal(t, ErrMsgInvalidEmail, errs["supervisor_email"])
		assert.Equal(t, ErrMsgInvalidPhone, errs["supervisor_phone"])
	})

	t.Run("valid free-text supervisor has no linked account", func(t *testing.T) {
		identity, errs := ResolveSupervisor(resolve, "Кузнецов Павел", "pk@example.com", "+79005554433")
		require.False(t, errs.HasErrors())
		assert.Nil(t, identity.User)
		assert.Equal(t, "Кузнецов Павел", identity.FIO)
		assert.Equal(t, "pk@example.com", identity.Email)
		assert.Equal(t, "+79005554433", identity.Phone)
	})
}

func TestBuildRosterSlots(t *testing.T) {
	resolve := fakeResolver(
		student("Иванов", "Иван", "ivanov@school.test"),
		student("Смирнова", "Анна", "smirnova@school.test"),
		teacher("Петрова", "Мария", "petrova@school.test"),
	)
	event := &models.Event{
		Type:         models.EventTypeTeam,
		MinTeamSize:  2,
		MaxTeamSize:  4,
		NeedsAccount: true,
	}

	t.Run("required slots must be filled", func(t *testing.T) {
		_, errs := BuildRosterSlots(resolve, event, []string{"Иванов Иван"})
		assert.Equal(t, ErrMsgRequired, errs["participant_2"])
		assert.NotContains(t, errs, "participant_3")
		assert.NotContains(t, errs, "participant_4")
	})

	t.Run("blank optional slots are skipped", func(t *testing.T) {
		slots, errs := BuildRosterSlots(resolve, event, []string{"Иванов Иван", "Смирнова Анна", "", ""})
		require.False(t, errs.HasErrors())
		require.Len(t, slots, 2)
		assert.Equal(t, 1, slots[0].Index)
		assert.Equal(t, 2, slots[1].Index)
		assert.NotNil(t, slots[0].User)
		assert.NotNil(t, slots[1].User)
	})

	t.Run("names beyond the maximum are ignored", func(t *testing.T) {
		slots, errs := BuildRosterSlots(resolve, event, []string{
			"Иванов Иван", "Смирнова Анна", "", "", "Лишний Участник",
		})
		require.False(t, errs.HasErrors())
		assert.Len(t, slots, 2)
	})

	t.Run("non-student account cannot be a member", func(t *testing.T) {
		_, errs := BuildRosterSlots(resolve, event, []string{"Иванов Иван", "Петрова Мария"})
		assert.Equal(t, ErrMsgParticipantNotStudent, errs["participant_2"])
	})

	t.Run("unmatched name is an error when accounts are required", func(t *testing.T) {
		_, errs := BuildRosterSlots(resolve, event, []string{"Иванов Иван", "Неизвестный Участник"})
		assert.Equal(t, ErrMsgNoAccountForName, errs["participant_2"])
	})

	t.Run("unmatched name becomes a free-text member otherwise", func(t *testing.T) {
		open := &models.Event{
			Type:         models.EventTypeTeam,
			MinTeamSize:  2,
			MaxTeamSize:  4,
			NeedsAccount: false,
		}
		slots, errs := BuildRosterSlots(resolve, open, []string{"Иванов Иван", "Неизвестный Участник"})
		require.False(t, errs.HasErrors())
		require.Len(t, slots, 2)
		assert.Nil(t, slots[1].User)
		assert.Equal(t, "Неизвестный Участник", slots[1].FIO)
	})
}

func TestRegisterGate(t *testing.T) {
	open := &models.Event{Slug: "spring-olympiad", Status: models.EventStatusOpen}
	closed := &models.Event{Slug: "spring-olympiad", Status: models.EventStatusCompleted}
	archived := &models.Event{Slug: "spring-olympiad", Status: models.EventStatusOpen, Archived: true}

	t.Run("open event accepts new registrations", func(t *testing.T) {
		decision := RegisterGate(open, false)
		assert.True(t, decision.Allow)
		assert.Empty(t, decision.RedirectTo)
	})

	t.Run("registered actor is routed to the edit flow", func(t *testing.T) {
		decision := RegisterGate(open, true)
		assert.False(t, decision.Allow)
		assert.Equal(t, "/events/spring-olympiad/registration", decision.RedirectTo)
	})

	t.Run("closed event denies without redirect", func(t *testing.T) {
		decision := RegisterGate(closed, false)
		assert.False(t, decision.Allow)
		assert.Empty(t, decision.RedirectTo)
	})

	t.Run("archived event denies even when open", func(t *testing.T) {
		decision := RegisterGate(archived, false)
		assert.False(t, decision.Allow)
	})
}

func TestEditGate(t *testing.T) {
	open := &models.Event{Slug: "spring-olympiad", Status: models.EventStatusOpen}
	closed := &models.Event{Slug: "spring-olympiad", Status: models.EventStatusOngoing}

	t.Run("unregistered actor is routed to the register flow", func(t *testing.T) {
		decision := EditGate(open, false)
		assert.False(t, decision.Allow)
		assert.Equal(t, "/events/spring-olympiad/register", decision.RedirectTo)
	})

	t.Run("registered actor may edit while open", func(t *testing.T) {
		decision := EditGate(open, true)
		assert.True(t, decision.Allow)
	})

	t.Run("closed event is read-only", func(t *testing.T) {
		decision := EditGate(closed, true)
		assert.False(t, decision.Allow)
		assert.Empty(t, decision.RedirectTo)
	})
}

func TestBuildRosterSlotsRejectsDuplicateMembers(t *testing.T) {
	resolve := fakeResolver(
		student("Иванов", "Иван", "ivanov@school.test"),
		student("Смирнова", "Анна", "smirnova@school.test"),
	)

	t.Run("same account in two slots", func(t *testing.T) {
		event := &models.Event{
			Type:         models.EventTypeTeam,
			MinTeamSize:  2,
			MaxTeamSize:  4,
			NeedsAccount: true,
		}
		_, errs := BuildRosterSlots(resolve, event, []string{"Иванов Иван", "Иванов Иван"})
		assert.Equal(t, ErrMsgDuplicateMember, errs["participant_2"])
		assert.NotContains(t, errs, "participant_1")
	})

	t.Run("same free-text name in two slots", func(t *testing.T) {
		event := &models.Event{
			Type:         models.EventTypeTeam,
			MinTeamSize:  2,
			MaxTeamSize:  4,
			NeedsAccount: false,
		}
		_, errs := BuildRosterSlots(resolve, event, []string{"Новый Участник", "новый  участник"})
		assert.Equal(t, ErrMsgDuplicateMember, errs["participant_2"], "spacing and case do not make a new person")
	})

	t.Run("distinct members pass", func(t *testing.T) {
		event := &models.Event{
			Type:         models.EventTypeTeam,
			MinTeamSize:  2,
			MaxTeamSize:  4,
			NeedsAccount: true,
		}
		slots, errs := BuildRosterSlots(resolve, event, []string{"Иванов Иван", "Смирнова Анна"})
		require.False(t, errs.HasErrors())
		assert.Len(t, slots, 2)
	})
}

func TestPlanTeamMembersRebuildIsStable(t *testing.T) {
	resolve := fakeResolver(
		student("Иванов", "Иван", "ivanov@school.test"),
		student("Смирнова", "Анна", "smirnova@school.test"),
	)
	event := &models.Event{
		ID:           "event-1",
		Type:         models.EventTypeTeam,
		MinTeamSize:  2,
		MaxTeamSize:  4,
		NeedsAccount: false,
	}
	team := &models.Team{ID: "team-1", EventID: event.ID}
	names := []string{"Иванов Иван", "Смирнова Анна", "Новый Участник"}

	first, errs := BuildRosterSlots(resolve, event, names)
	require.False(t, errs.HasErrors())
	second, errs := BuildRosterSlots(resolve, event, names)
	require.False(t, errs.HasErrors())

	// Disband and rebuild from the same names yields the same member set
	assert.Equal(t, planTeamMembers(event, team, first), planTeamMembers(event, team, second))

	members := planTeamMembers(event, team, first)
	require.Len(t, members, 3)
	assert.Equal(t, "Иванов Иван", members[0].FIO, "linked member keeps the account's stored name")
	require.NotNil(t, members[0].UserID)
	assert.Nil(t, members[2].UserID)
	assert.Equal(t, "Новый Участник", members[2].FIO)
	for _, member := range members {
		assert.Equal(t, event.ID, member.EventID)
		require.NotNil(t, member.TeamID)
		assert.Equal(t, team.ID, *member.TeamID)
	}
}

func TestRegisterIndividualAlreadyRegistered(t *testing.T) {
	target := student("Иванов", "Иван", "ivanov@school.test")
	staff := &models.User{ID: "staff-1", Surname: "Петрова", Name: "Мария", Role: models.RoleTeacher, IsStaff: true}
	service := &RegistrationService{
		resolve: fakeResolver(target, teacher("Петрова", "Мария", "petrova@school.test")),
		isRegistered: func(eventID, userID string) bool {
			return userID == target.ID
		},
	}
	event := &models.Event{ID: "event-1", Type: models.EventTypeIndividual, Status: models.EventStatusOpen}

	fieldErrors, err := service.Register(event, staff, RegistrationForm{
		ParticipantFIO:  "Иванов Иван",
		SupervisorFIO:   "Петрова Мария",
		SupervisorEmail: "petrova@school.test",
		SupervisorPhone: "+79001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, ErrMsgAlreadyRegistered, fieldErrors["participant_fio"])
}

func TestEditTeamNameChecksExcludeOwnRow(t *testing.T) {
	resolve := fakeResolver(
		student("Иванов", "Иван", "ivanov@school.test"),
		student("Смирнова", "Анна", "smirnova@school.test"),
	)
	var checkedName, excludedTeam string
	service := &RegistrationService{
		resolve: resolve,
		nameTakenBy: func(eventID, name, teamID string) bool {
			checkedName, excludedTeam = name, teamID
			return false
		},
	}
	event := &models.Event{
		ID:          "event-1",
		Type:        models.EventTypeTeam,
		Status:      models.EventStatusOpen,
		MinTeamSize: 2,
		MaxTeamSize: 4,
	}
	team := &models.Team{ID: "team-1", EventID: event.ID, Name: "Орлы"}

	// The supervisor is left blank so validation stops before any writes
	fieldErrors, err := service.EditTeam(event, team, RegistrationForm{
		TeamName: "Орлы",
		Members:  []string{"Иванов Иван", "Смирнова Анна"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Орлы", checkedName)
	assert.Equal(t, team.ID, excludedTeam, "the team's own row is excluded so self-rename passes")
	assert.NotContains(t, fieldErrors, "team_name")
	assert.Equal(t, ErrMsgRequired, fieldErrors["supervisor_fio"])
}

func TestRegisterTeamDuplicateMembersRejected(t *testing.T) {
	resolve := fakeResolver(
		student("Иванов", "Иван", "ivanov@school.test"),
		teacher("Петрова", "Мария", "petrova@school.test"),
	)
	service := &RegistrationService{
		resolve:    resolve,
		nameExists: func(eventID, name string) bool { return false },
	}
	event := &models.Event{
		ID:           "event-1",
		Type:         models.EventTypeTeam,
		Status:       models.EventStatusOpen,
		MinTeamSize:  2,
		MaxTeamSize:  4,
		NeedsAccount: true,
	}
	actor := student("Иванов", "Иван", "ivanov@school.test")

	fieldErrors, err := service.Register(event, actor, RegistrationForm{
		TeamName:      "Орлы",
		SupervisorFIO: "Петрова Мария",
		Members:       []string{"Иванов Иван", "Иванов Иван"},
	})
	require.NoError(t, err)
	assert.Equal(t, ErrMsgDuplicateMember, fieldErrors["participant_2"])
}
