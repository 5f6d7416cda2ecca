package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"api/config"
	"api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSender records deliveries and fails the addresses listed in failFirst
// exactly once
type stubSender struct {
	mu        sync.Mutex
	sent      []string
	failFirst map[string]bool
}

func (s *stubSender) SendDiplomaEmail(to, eventName, diplomaURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failFirst[to] {
		delete(s.failFirst, to)
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func (s *stubSender) sentTo() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func TestCollectTargetEmails(t *testing.T) {
	supervisor := "petrova@school.test"
	participants := []models.Participant{
		{
			User:            &models.User{Email: "ivanov@school.test"},
			SupervisorEmail: supervisor,
		},
		{
			// Free-text member without an account contributes no address
			FIO:             "Неизвестный Участник",
			SupervisorEmail: supervisor,
		},
		{
			User:            &models.User{Email: "smirnova@school.test"},
			SupervisorEmail: "",
		},
	}
	teams := []models.Team{
		{SupervisorEmail: supervisor},
		{SupervisorEmail: "kuznetsov@example.com"},
	}

	emails := CollectTargetEmails(participants, teams)

	assert.ElementsMatch(t, []string{
		"ivanov@school.test",
		"smirnova@school.test",
		supervisor,
		"kuznetsov@example.com",
	}, emails)
}

func TestCollectTargetEmailsEmptyRoster(t *testing.T) {
	assert.Empty(t, CollectTargetEmails(nil, nil))
}

func TestDispatcherDeliversToAllTargets(t *testing.T) {
	sender := &stubSender{}
	dispatcher := NewNotificationDispatcher(sender, config.NotificationConfig{
		RetryDelay: 10 * time.Millisecond,
		QueueSize:  4,
	})

	dispatcher.Enqueue(DiplomaNotification{
		Emails:     []string{"a@example.com", "b@example.com"},
		EventName:  "Spring Olympiad",
		DiplomaURL: "https://files.example.com/diplomas.zip",
	})

	require.Eventually(t, func() bool {
		return len(sender.sentTo()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, sender.sentTo())
}

func TestDispatcherRetriesFailedAddressesOnce(t *testing.T) {
	sender := &stubSender{failFirst: map[string]bool{"b@example.com": true}}
	dispatcher := NewNotificationDispatcher(sender, config.NotificationConfig{
		RetryDelay: 10 * time.Millisecond,
		QueueSize:  4,
	})

	dispatcher.Enqueue(DiplomaNotification{
		Emails:     []string{"a@example.com", "b@example.com"},
		EventName:  "Spring Olympiad",
		DiplomaURL: "https://files.example.com/diplomas.zip",
	})

	// The failed address is redelivered after the retry delay
	require.Eventually(t, func() bool {
		return len(sender.sentTo()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"a@example.com", "b@example.com"}, sender.sentTo())
}
