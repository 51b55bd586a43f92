package model_test

import (
	"testing"

	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLeadApplyAssignment(t *testing.T) {
	target := uuid.New()

	lead := &model.Lead{Status: model.LeadStatusContacted}
	lead.ApplyAssignment(policy.PlanAssignment(lead.AssignedTo, target))
	assert.Equal(t, target, *lead.AssignedTo)
	assert.Equal(t, model.LeadStatusNew, lead.Status)

	prev := uuid.New()
	lead = &model.Lead{Status: model.LeadStatusQualified, AssignedTo: &prev}
	lead.ApplyAssignment(policy.PlanAssignment(lead.AssignedTo, target))
	assert.Equal(t, target, *lead.AssignedTo)
	assert.Equal(t, model.LeadStatusQualified, lead.Status)
}

func TestOpportunityAssignmentKeepsStage(t *testing.T) {
	opp := &model.Opportunity{Stage: model.StageProposal}
	opp.ApplyAssignment(policy.PlanAssignment(nil, uuid.New()))
	assert.Equal(t, model.StageProposal, opp.Stage)
	assert.NotNil(t, opp.AssignedTo)
}

func TestAppointmentOwner(t *testing.T) {
	creator, attendee := uuid.New(), uuid.New()

	appt := &model.Appointment{Base: model.Base{CreatedBy: creator}, AttendeeID: &attendee, AttendeeType: model.AttendeeUser}
	assert.Equal(t, attendee, *appt.OwnerID())

	appt.AttendeeType = "contact"
	assert.Equal(t, creator, *appt.OwnerID())

	appt = &model.Appointment{Base: model.Base{CreatedBy: creator}, AttendeeType: model.AttendeeUser}
	assert.Equal(t, creator, *appt.OwnerID())
}

func TestCreatorOwnedKinds(t *testing.T) {
	creator := uuid.New()
	base := model.Base{ID: uuid.New(), CreatedBy: creator}
	for _, rec := range []model.Record{
		&model.Contact{Base: base},
		&model.Company{Base: base},
		&model.Quotation{Base: base},
		&model.SalesOrder{Base: base},
		&model.Task{Base: base},
		&model.Activity{Base: base},
	} {
		assert.Equal(t, creator, *rec.OwnerID(), string(rec.Kind()))
		assert.Equal(t, "created_by", rec.OwnerColumn())
		assert.Equal(t, base.ID, rec.RecordID())
	}
}

func TestAssignmentActivityLocked(t *testing.T) {
	assert.True(t, (&model.Activity{Type: model.ActivityAssignment}).Locked())
	assert.False(t, (&model.Activity{Type: model.ActivityCall}).Locked())
}

func TestUserPrincipalFailsClosed(t *testing.T) {
	team := uuid.New()
	u := &model.User{ID: uuid.New(), Role: "regional_director", TeamID: &team}
	p := u.Principal()
	assert.Equal(t, policy.RoleSalesExecutive, p.Role)
	assert.Equal(t, team, *p.TeamID)

	original := team
	*u.TeamID = uuid.New()
	assert.Equal(t, original, *p.TeamID, "principal must not alias the user row")
}
