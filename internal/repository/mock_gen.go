// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./team.go -destination=../mocks/mock_team_repository.go -package=mocks TeamRepositoryIface
//go:generate mockgen -source=./access_audit_log.go -destination=../mocks/mock_access_audit_log_repository.go -package=mocks AccessAuditLogRepositoryIface
//go:generate mockgen -source=./assignment.go -destination=../mocks/mock_assignment_store.go -package=mocks AssignmentStoreIface AssignmentTxIface
//go:generate mockgen -source=./record.go -destination=../mocks/mock_record_repository.go -package=mocks RecordRepositoryIface ReferenceSourceIface
