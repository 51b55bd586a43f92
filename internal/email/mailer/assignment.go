// internal/email/mailer/assignment.go
package mailer

import (
	"fmt"

	"github.com/dangerclosesec/crm/internal/email"
)

// AssignmentTemplateData contains data for the assignment notification template
type AssignmentTemplateData struct {
	FirstName    string
	AssignerName string
	KindLabel    string
	Count        int
	Links        []string
	Notes        string
}

// SendAssignmentNotification tells a user that records were assigned to them
func SendAssignmentNotification(s *email.Service, to, fromName string, data AssignmentTemplateData) error {
	subject := fmt.Sprintf("A %s was assigned to you", data.KindLabel)
	if data.Count > 1 {
		subject = fmt.Sprintf("%d %s records were assigned to you", data.Count, data.KindLabel)
	}

	emailData := email.EmailData{
		To:           to,
		FromName:     fromName,
		Subject:      subject,
		TemplateName: "assignment_notification",
		TemplateData: data,
	}

	return s.SendEmail(emailData)
}
