package services

import (
	"fmt"
	"regexp"
	"strings"

	"api/database"
	"api/metrics"
	"api/models"

	"gorm.io/gorm"
)

// Validation messages keyed into FieldErrors
const (
	ErrMsgRequired              = "This field is required"
	ErrMsgTeamNameTaken         = "A team with this name is already registered on this event"
	ErrMsgNoAccountForName      = "No account matches this full name"
	ErrMsgParticipantNotStudent = "This account does not belong to a student"
	ErrMsgDuplicateMember       = "This person is already listed in another slot"
	ErrMsgAlreadyRegistered     = "This student is already registered on this event"
	ErrMsgSupervisorIsStudent   = "A student account cannot be a supervisor"
	ErrMsgSupervisorContacts    = "Email and phone number are required when the supervisor has no account"
	ErrMsgInvalidPhone          = "Phone number must be in the format +XXXXXXXXXXX"
	ErrMsgInvalidEmail          = "Invalid email address"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// FieldErrors collects per-field validation messages. An empty map means the
// submission is valid; no entities are written while it is non-empty
type FieldErrors map[string]string

func (e FieldErrors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e FieldErrors) Merge(other FieldErrors) {
	for field, message := range other {
		e.Add(field, message)
	}
}

func (e FieldErrors) HasErrors() bool {
	return len(e) > 0
}

// ResolveFunc turns a free-text full name into a registered user, nil when no
// account matches. The production resolver is GetUserByFullName
type ResolveFunc func(fio string) *models.User

// SupervisorIdentity is the resolved supervisor of a team or participant:
// either a linked account with contact fields snapshotted from its profile,
// or free-text contact fields when no account matches
type SupervisorIdentity struct {
	User  *models.User
	FIO   string
	Email string
	Phone string
}

// RosterSlot is one ordered member slot of a submitted team roster. Slots
// 1..min are required, the rest may stay blank. User is nil for a free-text
// member on events that do not require an account
type RosterSlot struct {
	Index    int
	FIO      string
	Required bool
	User     *models.User
}

// RegistrationForm is the submitted payload of a registration or edit. Team
// fields are ignored in individual mode; ParticipantFIO is only honored when
// a non-student actor registers someone else
type RegistrationForm struct {
	TeamName        string   `json:"team_name"`
	SchoolClass     string   `json:"school_class"`
	SupervisorFIO   string   `json:"supervisor_fio"`
	SupervisorEmail string   `json:"supervisor_email"`
	SupervisorPhone string   `json:"supervisor_phone"`
	Members         []string `json:"members"`
	ParticipantFIO  string   `json:"participant_fio"`
}

// GateDecision is the typed outcome of the registration entry checks: either
// the mutation may proceed, or the caller is redirected to the right flow
type GateDecision struct {
	Allow      bool
	RedirectTo string
}

// RegisterGate decides whether a registration submission may proceed. An
// already-registered actor is routed to the edit flow instead of erroring
func RegisterGate(event *models.Event, alreadyRegistered bool) GateDecision {
	if alreadyRegistered {
		return GateDecision{RedirectTo: fmt.Sprintf("/events/%s/registration", event.Slug)}
	}
	if !event.RegistrationIsOpen() {
		return GateDecision{}
	}
	return GateDecision{Allow: true}
}

// EditGate decides whether a roster edit may proceed. An actor without a
// registration is routed to the register flow; a closed event renders
// read-only and accepts no mutation
func EditGate(event *models.Event, alreadyRegistered bool) GateDecision {
	if !alreadyRegistered {
		return GateDecision{RedirectTo: fmt.Sprintf("/events/%s/register", event.Slug)}
	}
	if !event.RegistrationIsOpen() {
		return GateDecision{}
	}
	return GateDecision{Allow: true}
}

// ResolveSupervisor resolves the supervisor identity of a submission. A name
// matching a non-student account wins and its contact fields are snapshotted
// from the account; otherwise both free-text email and phone are required
func ResolveSupervisor(resolve ResolveFunc, fio, email, phone string) (SupervisorIdentity, FieldErrors) {
	fieldErrors := FieldErrors{}

	fio = strings.TrimSpace(fio)
	if fio == "" {
		fieldErrors.Add("supervisor_fio", ErrMsgRequired)
		return SupervisorIdentity{}, fieldErrors
	}

	if user := resolve(fio); user != nil {
		if user.IsStudent() {
			fieldErrors.Add("supervisor_fio", ErrMsgSupervisorIsStudent)
			return SupervisorIdentity{}, fieldErrors
		}
		identity := SupervisorIdentity{
			User:  user,
			FIO:   user.FullName(),
			Email: user.Email,
		}
		if user.Profile != nil {
			identity.Phone = user.Profile.PhoneNumber
		}
		return identity, fieldErrors
	}

	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" || phone == "" {
		fieldErrors.Add("supervisor_fio", ErrMsgSupervisorContacts)
		if email == "" {
			fieldErrors.Add("supervisor_email", ErrMsgRequired)
		}
		if phone == "" {
			fieldErrors.Add("supervisor_phone", ErrMsgRequired)
		}
		return SupervisorIdentity{}, fieldErrors
	}
	if !emailPattern.MatchString(email) {
		fieldErrors.Add("supervisor_email", ErrMsgInvalidEmail)
	}
	if !phonePattern.MatchString(phone) {
		fieldErrors.Add("supervisor_phone", ErrMsgInvalidPhone)
	}
	if fieldErrors.HasErrors() {
		return SupervisorIdentity{}, fieldErrors
	}

	return SupervisorIdentity{FIO: fio, Email: email, Phone: phone}, fieldErrors
}

// BuildRosterSlots validates and resolves the submitted member names against
// the event's roster shape. Slots 1..MinTeamSize must be filled; a blank
// optional slot is skipped. A resolved name must belong to a student; an
// unresolved name is an error when the event requires accounts and a
// free-text member otherwise. Naming the same person in two slots is an
// error on the second slot, so one (event, user) pair never yields two
// member rows
func BuildRosterSlots(resolve ResolveFunc, event *models.Event, members []string) ([]RosterSlot, FieldErrors) {
	fieldErrors := FieldErrors{}
	slots := make([]RosterSlot, 0, event.MaxTeamSize)
	seenUsers := make(map[string]bool)
	seenNames := make(map[string]bool)

	for i := 1; i <= event.MaxTeamSize; i++ {
		field := fmt.Sprintf("participant_%d", i)
		required := i <= event.MinTeamSize

		var fio string
		if i-1 < len(members) {
			fio = strings.TrimSpace(members[i-1])
		}

		if fio == "" {
			if required {
				fieldErrors.Add(field, ErrMsgRequired)
			}
			continue
		}

		user := resolve(fio)
		if user != nil && !user.IsStudent() {
			fieldErrors.Add(field, ErrMsgParticipantNotStudent)
			continue
		}
		if user == nil && event.NeedsAccount {
			fieldErrors.Add(field, ErrMsgNoAccountForName)
			continue
		}

		if user != nil {
			if seenUsers[user.ID] {
				fieldErrors.Add(field, ErrMsgDuplicateMember)
				continue
			}
			seenUsers[user.ID] = true
		} else {
			nameKey := strings.ToLower(strings.Join(strings.Fields(fio), " "))
			if seenNames[nameKey] {
				fieldErrors.Add(field, ErrMsgDuplicateMember)
				continue
			}
			seenNames[nameKey] = true
		}

		slots = append(slots, RosterSlot{
			Index:    i,
			FIO:      fio,
			Required: required,
			User:     user,
		})
	}

	return slots, fieldErrors
}

// RegistrationService is the event-type-aware engine behind the registration
// and edit endpoints. All entity writes of one call happen in one
// transaction. The name resolver and the existence checks are injectable so
// the validation paths run without a database
type RegistrationService struct {
	db           *gorm.DB
	resolve      ResolveFunc
	nameExists   func(eventID, name string) bool
	nameTakenBy  func(eventID, name, teamID string) bool
	isRegistered func(eventID, userID string) bool
}

// NewRegistrationService wires the engine to the shared database handle and
// the account-backed name resolver
func NewRegistrationService() *RegistrationService {
	return &RegistrationService{
		db:           database.DB,
		resolve:      GetUserByFullName,
		nameExists:   TeamNameExistsInEvent,
		nameTakenBy:  TeamNameTakenByOther,
		isRegistered: IsUserParticipantOfEvent,
	}
}

// Register creates the registration of actor (or of the student named in the
// form, for non-student actors) on the event. Validation failures are
// returned as FieldErrors and write nothing; err reports persistence failures
func (s *RegistrationService) Register(event *models.Event, actor *models.User, form RegistrationForm) (FieldErrors, error) {
	switch event.Type {
	case models.EventTypeIndividual:
		return s.registerIndividual(event, actor, form)
	case models.EventTypeTeam, models.EventTypeClassTeam, models.EventTypeIndividualAndCollective:
		return s.registerTeam(event, form)
	default:
		return nil, fmt.Errorf("unknown registration mode %q", event.Type)
	}
}

func (s *RegistrationService) registerIndividual(event *models.Event, actor *models.User, form RegistrationForm) (FieldErrors, error) {
	fieldErrors := FieldErrors{}

	supervisor, supErrors := ResolveSupervisor(s.resolve, form.SupervisorFIO, form.SupervisorEmail, form.SupervisorPhone)
	fieldErrors.Merge(supErrors)

	// A non-student actor registers the named student instead of themselves
	target := actor
	freeTextFIO := ""
	if !actor.IsStudent() {
		fio := strings.TrimSpace(form.ParticipantFIO)
		if fio == "" {
			fieldErrors.Add("participant_fio", ErrMsgRequired)
		} else {
			target = s.resolve(fio)
			if target != nil && !target.IsStudent() {
				fieldErrors.Add("participant_fio", ErrMsgParticipantNotStudent)
			} else if target == nil {
				if event.NeedsAccount {
					fieldErrors.Add("participant_fio", ErrMsgNoAccountForName)
				} else {
					freeTextFIO = fio
				}
			}
		}
	}

	if target != nil && s.isRegistered(event.ID, target.ID) {
		fieldErrors.Add("participant_fio", ErrMsgAlreadyRegistered)
	}

	if fieldErrors.HasErrors() {
		return fieldErrors, nil
	}

	participant := models.Participant{
		EventID:         event.ID,
		SupervisorFIO:   supervisor.FIO,
		SupervisorEmail: supervisor.Email,
		SupervisorPhone: supervisor.Phone,
	}
	if supervisor.User != nil {
		participant.SupervisorID = &supervisor.User.ID
	}
	if target != nil {
		participant.UserID = &target.ID
		participant.FIO = target.FullName()
	} else {
		participant.FIO = freeTextFIO
	}

	if err := s.db.Create(&participant).Error; err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(event.Type).Inc()
	return nil, nil
}

func (s *RegistrationService) registerTeam(event *models.Event, form RegistrationForm) (FieldErrors, error) {
	fieldErrors := FieldErrors{}

	teamName := strings.TrimSpace(form.TeamName)
	if teamName == "" {
		fieldErrors.Add("team_name", ErrMsgRequired)
	} else if s.nameExists(event.ID, teamName) {
		fieldErrors.Add("team_name", ErrMsgTeamNameTaken)
	}

	schoolClass := strings.TrimSpace(form.SchoolClass)
	if event.Type == models.EventTypeClassTeam && schoolClass == "" {
		fieldErrors.Add("school_class", ErrMsgRequired)
	}

	supervisor, supErrors := ResolveSupervisor(s.resolve, form.SupervisorFIO, form.SupervisorEmail, form.SupervisorPhone)
	fieldErrors.Merge(supErrors)

	slots, slotErrors := BuildRosterSlots(s.resolve, event, form.Members)
	fieldErrors.Merge(slotErrors)

	if fieldErrors.HasErrors() {
		return fieldErrors, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		team := models.Team{
			EventID:         event.ID,
			Name:            teamName,
			SupervisorFIO:   supervisor.FIO,
			SupervisorEmail: supervisor.Email,
			SupervisorPhone: supervisor.Phone,
		}
		if event.Type == models.EventTypeClassTeam {
			team.SchoolClass = schoolClass
		}
		if supervisor.User != nil {
			team.SupervisorID = &supervisor.User.ID
		}
		if err := tx.Create(&team).Error; err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		return createTeamParticipants(tx, event, &team, slots)
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(event.Type).Inc()
	return nil, nil
}

// EditIndividual overwrites the participant's supervisor identity from the
// submitted form. The student's own identity is not editable
func (s *RegistrationService) EditIndividual(event *models.Event, participant *models.Participant, form RegistrationForm) (FieldErrors, error) {
	supervisor, fieldErrors := ResolveSupervisor(s.resolve, form.SupervisorFIO, form.SupervisorEmail, form.SupervisorPhone)
	if fieldErrors.HasErrors() {
		return fieldErrors, nil
	}

	participant.SupervisorFIO = supervisor.FIO
	participant.SupervisorEmail = supervisor.Email
	participant.SupervisorPhone = supervisor.Phone
	participant.SupervisorID = nil
	if supervisor.User != nil {
		participant.SupervisorID = &supervisor.User.ID
	}

	if err := s.db.Save(participant).Error; err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}
	return nil, nil
}

// EditTeam applies a full roster edit: the team's name, school class and
// supervisor are updated in place, then the current member rows are disbanded
// and rebuilt from the submitted roster with the same per-slot rules as
// registration. The whole edit is atomic
func (s *RegistrationService) EditTeam(event *models.Event, team *models.Team, form RegistrationForm) (FieldErrors, error) {
	fieldErrors := FieldErrors{}

	teamName := strings.TrimSpace(form.TeamName)
	if teamName == "" {
		fieldErrors.Add("team_name", ErrMsgRequired)
	} else if s.nameTakenBy(event.ID, teamName, team.ID) {
		fieldErrors.Add("team_name", ErrMsgTeamNameTaken)
	}

	schoolClass := strings.TrimSpace(form.SchoolClass)
	if event.Type == models.EventTypeClassTeam && schoolClass == "" {
		fieldErrors.Add("school_class", ErrMsgRequired)
	}

	supervisor, supErrors := ResolveSupervisor(s.resolve, form.SupervisorFIO, form.SupervisorEmail, form.SupervisorPhone)
	fieldErrors.Merge(supErrors)

	slots, slotErrors := BuildRosterSlots(s.resolve, event, form.Members)
	fieldErrors.Merge(slotErrors)

	if fieldErrors.HasErrors() {
		return fieldErrors, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		team.Name = teamName
		if event.Type == models.EventTypeClassTeam {
			team.SchoolClass = schoolClass
		}
		team.SupervisorFIO = supervisor.FIO
		team.SupervisorEmail = supervisor.Email
		team.SupervisorPhone = supervisor.Phone
		team.SupervisorID = nil
		if supervisor.User != nil {
			team.SupervisorID = &supervisor.User.ID
		}
		if err := tx.Omit("Participants", "Supervisor", "Event").Save(team).Error; err != nil {
			return fmt.Errorf("failed to update team: %w", err)
		}

		// Disband and rebuild: a team edit is a full roster replace, not a diff
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.Participant{}).Error; err != nil {
			return fmt.Errorf("failed to disband team roster: %w", err)
		}

		return createTeamParticipants(tx, event, team, slots)
	})
	if err != nil {
		return nil, err
	}

	metrics.RosterRebuildsTotal.WithLabelValues(event.Type).Inc()
	return nil, nil
}

// planTeamMembers derives the member rows of a roster from its validated
// slots. Rebuilding from the same names yields the same member set
func planTeamMembers(event *models.Event, team *models.Team, slots []RosterSlot) []models.Participant {
	members := make([]models.Participant, 0, len(slots))
	for _, slot := range slots {
		participant := models.Participant{
			EventID: event.ID,
			TeamID:  &team.ID,
			FIO:     slot.FIO,
		}
		if slot.User != nil {
			participant.UserID = &slot.User.ID
			participant.FIO = slot.User.FullName()
		}
		members = append(members, participant)
	}
	return members
}

func createTeamParticipants(tx *gorm.DB, event *models.Event, team *models.Team, slots []RosterSlot) error {
	for i, participant := range planTeamMembers(event, team, slots) {
		if err := tx.Create(&participant).Error; err != nil {
			return fmt.Errorf("failed to create participant for slot %d: %w", slots[i].Index, err)
		}
	}
	return nil
}
