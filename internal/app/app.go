// internal/app/app.go
package app

import (
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/crm/internal/auth"
	"github.com/dangerclosesec/crm/internal/config"
	"github.com/dangerclosesec/crm/internal/email"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/dangerclosesec/crm/internal/service"
	"gorm.io/gorm"
)

// App holds the services shared by the API server and the admin CLI.
type App struct {
	Config       *config.Config
	TokenManager *auth.TokenManager

	Users          *service.UserService
	Teams          *service.TeamService
	Visibility     *service.VisibilityService
	Assignments    *service.AssignmentService
	AccessAudit    *service.AccessAuditService
	Reconciliation *service.TeamReconciliationService

	Leads         *service.RecordService[model.Lead, *model.Lead]
	Contacts      *service.RecordService[model.Contact, *model.Contact]
	Companies     *service.RecordService[model.Company, *model.Company]
	Opportunities *service.RecordService[model.Opportunity, *model.Opportunity]
	Quotations    *service.RecordService[model.Quotation, *model.Quotation]
	SalesOrders   *service.RecordService[model.SalesOrder, *model.SalesOrder]
	Tasks         *service.RecordService[model.Task, *model.Task]
	Activities    *service.RecordService[model.Activity, *model.Activity]
	Appointments  *service.RecordService[model.Appointment, *model.Appointment]
}

// New wires repositories and services over db.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*App, error) {
	emailService, err := email.NewEmailService(cfg, email.Provider(cfg.Email.Provider))
	if err != nil {
		return nil, fmt.Errorf("initializing email service: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	auditRepo := repository.NewAccessAuditLogRepository(db)
	leadRepo := repository.NewRecordRepository[model.Lead, *model.Lead](db)
	opportunityRepo := repository.NewRecordRepository[model.Opportunity, *model.Opportunity](db)

	a := &App{
		Config:       cfg,
		TokenManager: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod),
	}

	a.AccessAudit = service.NewAccessAuditService(auditRepo)
	a.Teams = service.NewTeamService(userRepo, teamRepo, a.AccessAudit, logger)
	a.Users = service.NewUserService(userRepo, teamRepo, auth.NewPasswordHasherWithConfig(cfg.Password), a.TokenManager, a.AccessAudit, logger)
	a.Visibility = service.NewVisibilityService(a.Teams, leadRepo, opportunityRepo)
	a.Assignments = service.NewAssignmentService(repository.NewAssignmentStore(db), emailService, a.AccessAudit, logger, cfg)

	a.Reconciliation = service.NewTeamReconciliationService(teamRepo, cfg.Reconcile.Interval, logger)
	a.Reconciliation.SetBatchSize(cfg.Reconcile.BatchSize)

	a.Leads = service.NewRecordService[model.Lead, *model.Lead](leadRepo, userRepo, a.Visibility, a.Assignments, a.AccessAudit, logger)
	a.Opportunities = service.NewRecordService[model.Opportunity, *model.Opportunity](opportunityRepo, userRepo, a.Visibility, a.Assignments, a.AccessAudit, logger)
	a.Contacts = newRecordService[model.Contact](db, userRepo, a, logger)
	a.Companies = newRecordService[model.Company](db, userRepo, a, logger)
	a.Quotations = newRecordService[model.Quotation](db, userRepo, a, logger)
	a.SalesOrders = newRecordService[model.SalesOrder](db, userRepo, a, logger)
	a.Tasks = newRecordService[model.Task](db, userRepo, a, logger)
	a.Activities = newRecordService[model.Activity](db, userRepo, a, logger)
	a.Appointments = newRecordService[model.Appointment](db, userRepo, a, logger)

	return a, nil
}

func newRecordService[T any, PT model.RecordPtr[T]](db *gorm.DB, users repository.UserRepositoryIface, a *App, logger *slog.Logger) *service.RecordService[T, PT] {
	return service.NewRecordService[T, PT](repository.NewRecordRepository[T, PT](db), users, a.Visibility, a.Assignments, a.AccessAudit, logger)
}
