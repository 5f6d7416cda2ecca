package services

import (
	"fmt"
	"log"
	"time"

	"api/config"
	"api/metrics"
	"api/models"
)

// DiplomaNotification is one queued fan-out: every address receives the event
// name and the diploma bundle URL
type DiplomaNotification struct {
	Emails     []string
	EventName  string
	DiplomaURL string
	attempts   int
}

// DiplomaSender delivers one diploma notification email. Implemented by
// EmailService; stubbed in tests
type DiplomaSender interface {
	SendDiplomaEmail(to, eventName, diplomaURL string) error
}

// NotificationDispatcher delivers diploma notifications asynchronously,
// at-least-once, with a single redelivery attempt after RetryDelay. Enqueue
// never blocks the triggering request; exhausted notifications are dropped
type NotificationDispatcher struct {
	sender DiplomaSender
	queue  chan DiplomaNotification
	cfg    config.NotificationConfig
}

// NewNotificationDispatcher starts the delivery worker
func NewNotificationDispatcher(sender DiplomaSender, cfg config.NotificationConfig) *NotificationDispatcher {
	d := &NotificationDispatcher{
		sender: sender,
		queue:  make(chan DiplomaNotification, cfg.QueueSize),
		cfg:    cfg,
	}
	go d.run()
	return d
}

// Enqueue hands a notification to the worker. When the queue is full the
// notification is dropped rather than blocking the request
func (d *NotificationDispatcher) Enqueue(notification DiplomaNotification) {
	select {
	case d.queue <- notification:
	default:
		log.Printf("Notification queue full, dropping fan-out for event %s", notification.EventName)
	}
}

func (d *NotificationDispatcher) run() {
	for notification := range d.queue {
		d.deliver(notification)
	}
}

func (d *NotificationDispatcher) deliver(notification DiplomaNotification) {
	var failed []string
	for _, email := range notification.Emails {
		if err := d.sender.SendDiplomaEmail(email, notification.EventName, notification.DiplomaURL); err != nil {
			log.Printf("Failed to send diploma notification to %s: %v", email, err)
			failed = append(failed, email)
			continue
		}
		metrics.NotificationEmailsTotal.WithLabelValues("sent").Inc()
	}

	if len(failed) == 0 {
		return
	}
	if notification.attempts >= 1 {
		// Retry budget exhausted, the remaining addresses are dropped
		metrics.NotificationEmailsTotal.WithLabelValues("dropped").Add(float64(len(failed)))
		return
	}

	retry := DiplomaNotification{
		Emails:     failed,
		EventName:  notification.EventName,
		DiplomaURL: notification.DiplomaURL,
		attempts:   notification.attempts + 1,
	}
	go func() {
		time.Sleep(d.cfg.RetryDelay)
		d.Enqueue(retry)
	}()
}

// CollectTargetEmails deduplicates the notification targets of an event's
// roster: member account emails plus supervisor emails, linked or free-text.
// Free-text members without an account contribute no address
func CollectTargetEmails(participants []models.Participant, teams []models.Team) []string {
	seen := make(map[string]bool)
	emails := make([]string, 0, len(participants)+len(teams))

	add := func(email string) {
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		emails = append(emails, email)
	}

	for i := range participants {
		if participants[i].User != nil {
			add(participants[i].User.Email)
		}
		add(participants[i].SupervisorEmail)
	}
	for i := range teams {
		add(teams[i].SupervisorEmail)
	}

	return emails
}

// CollectNotificationTargets loads the event's roster and returns the
// deduplicated set of addresses to notify
func CollectNotificationTargets(event *models.Event) ([]string, error) {
	participants, err := GetEventParticipants(event.ID)
	if err != nil {
		return nil, err
	}
	teams, err := GetEventTeams(event.ID)
	if err != nil {
		return nil, err
	}
	return CollectTargetEmails(participants, teams), nil
}

// NotifyAboutDiplomas fans out the diploma-publication email for an event.
// A redis cooldown key suppresses duplicate fan-out for the same diploma;
// duplicates past the window are an accepted, non-harmful failure mode
func NotifyAboutDiplomas(dispatcher *NotificationDispatcher, event *models.Event, diplomaURL string) error {
	cooldownKey := fmt.Sprintf("events:event:%s:diplomas.sent", event.ID)
	if !IsCooldownEnded(cooldownKey) {
		return nil
	}

	emails, err := CollectNotificationTargets(event)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return nil
	}

	SetKeyWithTimeout(cooldownKey, config.DefaultNotificationConfig.DiplomaCooldown)
	dispatcher.Enqueue(DiplomaNotification{
		Emails:     emails,
		EventName:  event.Name,
		DiplomaURL: diplomaURL,
	})
	return nil
}
