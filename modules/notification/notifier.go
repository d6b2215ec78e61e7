// Package notification formats and delivers assignment emails. Delivery is
// a logging stub standing in for a real transport; callers must treat a
// failed or skipped send as non-fatal to the surrounding mutation.
package notification

import (
	"fmt"
	"log"

	"github.com/example/task-manager/domain/task"
	"github.com/example/task-manager/domain/user"
)

// EmailNotification is a formatted assignment email.
type EmailNotification struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	TaskID  string `json:"task_id"`
	UserID  string `json:"user_id"`
}

// Notifier "sends" assignment emails by logging them.
type Notifier struct {
	enabled   bool
	fromEmail string
}

// NewNotifier creates a Notifier. When enabled is false every send is
// skipped and reported as not sent.
func NewNotifier(enabled bool, fromEmail string) *Notifier {
	return &Notifier{enabled: enabled, fromEmail: fromEmail}
}

// SendAssignmentEmail notifies the assignee that a task was assigned to
// them. Returns true if the notification was sent.
func (n *Notifier) SendAssignmentEmail(t *task.Task, assignee *user.User) bool {
	if !n.enabled {
		log.Println("[notification] Email notifications are disabled")
		return false
	}

	msg := formatAssignmentEmail(t, assignee)

	// A real implementation would hand msg to an SMTP or provider transport.
	log.Printf("[notification] Sending email from %s to %s: %s", n.fromEmail, msg.ToEmail, msg.Subject)
	return true
}

func formatAssignmentEmail(t *task.Task, assignee *user.User) EmailNotification {
	description := "No description"
	if t.Description != nil && *t.Description != "" {
		description = *t.Description
	}
	return EmailNotification{
		ToEmail: assignee.Email,
		Subject: fmt.Sprintf("Task Assigned: %s", t.Title),
		Body:    fmt.Sprintf("You have been assigned a new task: %s\n\nDescription: %s", t.Title, description),
		TaskID:  t.ID,
		UserID:  assignee.ID,
	}
}
