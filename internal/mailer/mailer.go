package mailer

import (
	"fmt"
	"log"

	"github.com/eventhub/eventhub/internal/models"
)

const (
	RouteRSVPConfirmation  = "mail.rsvp_confirmation"
	RouteAccountActivation = "mail.account_activation"
)

// Message is the payload handed to the outbound mail queue. Delivery is
// someone else's problem; the web path never waits on it.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Enqueuer hands a message to the transport. The RabbitMQ publisher satisfies
// it in production; tests substitute a recorder.
type Enqueuer interface {
	Publish(routingKey string, payload any) error
}

type Mailer struct {
	queue       Enqueuer
	frontendURL string
	fromAddr    string
}

func New(queue Enqueuer, frontendURL, fromAddr string) *Mailer {
	return &Mailer{queue: queue, frontendURL: frontendURL, fromAddr: fromAddr}
}

// SendRSVPConfirmation enqueues the confirmation link for a fresh RSVP.
// Errors are logged and swallowed; a failed send never fails the RSVP.
func (m *Mailer) SendRSVPConfirmation(user *models.User, event *models.Event, token string) {
	confirmURL := fmt.Sprintf("%srsvp/confirm/%s/", m.frontendURL, token)
	msg := Message{
		To:      user.Email,
		From:    m.fromAddr,
		Subject: fmt.Sprintf("Confirm your RSVP: %s", event.Name),
		Body: fmt.Sprintf(
			"Hi %s,\n\nPlease confirm your RSVP for '%s' by clicking the link below:\n%s\n\nIf you did not request this, ignore this email.",
			user.Username, event.Name, confirmURL,
		),
	}
	m.enqueue(RouteRSVPConfirmation, msg)
}

// SendAccountActivation enqueues the activation link for a new account.
func (m *Mailer) SendAccountActivation(user *models.User, token string) {
	activationURL := fmt.Sprintf("%suser/activate/%d/%s/", m.frontendURL, user.ID, token)
	msg := Message{
		To:      user.Email,
		From:    m.fromAddr,
		Subject: "Activate your account",
		Body: fmt.Sprintf(
			"Hi %s,\n\nPlease activate your account by clicking the link below:\n%s\n\nThank you!",
			user.Username, activationURL,
		),
	}
	m.enqueue(RouteAccountActivation, msg)
}

func (m *Mailer) enqueue(route string, msg Message) {
	if m.queue == nil {
		return
	}
	if err := m.queue.Publish(route, msg); err != nil {
		log.Printf("[Mailer] failed to enqueue %s to %s: %v", route, msg.To, err)
	}
}
