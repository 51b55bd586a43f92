package email_test

import (
	"testing"

	"github.com/dangerclosesec/crm/internal/config"
	"github.com/dangerclosesec/crm/internal/email"
	"github.com/dangerclosesec/crm/internal/email/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentTemplateRenders(t *testing.T) {
	svc, err := email.NewEmailService(&config.Config{}, email.ProviderNone)
	require.NoError(t, err)

	html, text, err := svc.Render("assignment_notification", mailer.AssignmentTemplateData{
		FirstName:    "Sam",
		AssignerName: "Ada Manager",
		KindLabel:    "Lead",
		Count:        2,
		Links:        []string{"http://crm.local/leads/1", "http://crm.local/leads/2"},
		Notes:        "<b>call today</b>",
	})
	require.NoError(t, err)

	assert.Contains(t, text, "Ada Manager assigned 2 Lead records to you.")
	assert.Contains(t, text, "http://crm.local/leads/2")
	assert.Contains(t, html, "&lt;b&gt;call today&lt;/b&gt;")
	assert.NotContains(t, text, "&lt;")
}

func TestNoneProviderDropsMessages(t *testing.T) {
	svc, err := email.NewEmailService(&config.Config{}, email.ProviderNone)
	require.NoError(t, err)

	err = mailer.SendAssignmentNotification(svc, "rep@example.com", "CRM", mailer.AssignmentTemplateData{
		FirstName: "Sam",
		KindLabel: "Opportunity",
		Count:     1,
	})
	assert.NoError(t, err)
}

func TestUnknownProvider(t *testing.T) {
	_, err := email.NewEmailService(&config.Config{}, email.Provider("pigeon"))
	assert.Error(t, err)
}
