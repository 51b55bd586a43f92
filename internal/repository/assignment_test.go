package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dangerclosesec/crm/internal/domain"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignedLead() *model.Lead {
	assignee := uuid.New()
	return &model.Lead{
		Base:       model.Base{ID: uuid.New()},
		FirstName:  "Ada",
		Status:     model.LeadStatusNew,
		AssignedTo: &assignee,
	}
}

func assignmentNote(lead *model.Lead) *model.Activity {
	id := lead.ID
	return &model.Activity{
		Base:      model.Base{CreatedBy: uuid.New()},
		Type:      model.ActivityAssignment,
		Title:     "Lead assigned",
		RelatedTo: model.KindLead,
		RelatedID: &id,
	}
}

func TestAssignmentCommitsRecordAndActivityTogether(t *testing.T) {
	db, mock := newMockDB(t)
	store := repository.NewAssignmentStore(db)
	lead := assignedLead()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leads" SET "assigned_to"=\$1,"status"=\$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "activities"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	err := store.WithinTransaction(context.Background(), func(tx repository.AssignmentTxIface) error {
		if err := tx.SaveAssignment(context.Background(), lead); err != nil {
			return err
		}
		return tx.AppendActivity(context.Background(), assignmentNote(lead))
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRollsBackWhenActivityFails(t *testing.T) {
	db, mock := newMockDB(t)
	store := repository.NewAssignmentStore(db)
	lead := assignedLead()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leads" SET "assigned_to"=\$1,"status"=\$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "activities"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.WithinTransaction(context.Background(), func(tx repository.AssignmentTxIface) error {
		if err := tx.SaveAssignment(context.Background(), lead); err != nil {
			return err
		}
		return tx.AppendActivity(context.Background(), assignmentNote(lead))
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to append activity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAssignmentOfVanishedRecordIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := repository.NewAssignmentStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leads" SET "assigned_to"=\$1,"status"=\$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.WithinTransaction(context.Background(), func(tx repository.AssignmentTxIface) error {
		return tx.SaveAssignment(context.Background(), assignedLead())
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFieldEditRollsBackWithFailedAssignment(t *testing.T) {
	db, mock := newMockDB(t)
	store := repository.NewAssignmentStore(db)
	lead := assignedLead()
	lead.Notes = "edited"
	ghost := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leads" SET .*"notes"=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := store.WithinTransaction(context.Background(), func(tx repository.AssignmentTxIface) error {
		if err := tx.UpdateFields(context.Background(), lead); err != nil {
			return err
		}
		_, err := tx.FindUser(context.Background(), ghost)
		return err
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAssignableRejectsOtherKinds(t *testing.T) {
	_, err := repository.NewAssignable(model.KindContact)
	assert.ErrorIs(t, err, domain.ErrNotAssignable)
}
