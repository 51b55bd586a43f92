// cmd/reconcile/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dangerclosesec/crm/internal/config"
	"github.com/dangerclosesec/crm/internal/database"
	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/dangerclosesec/crm/internal/service"

	"gorm.io/gorm/logger"
)

func main() {
	// Command line flags
	var (
		batchSize = flag.Int("batch-size", 100, "Number of records to process in a batch")
		dryRun    = flag.Bool("dry-run", false, "Print what would be done without making changes")
		timeout   = flag.Duration("timeout", 30*time.Minute, "Maximum time to run reconciliation")
		kind      = flag.String("kind", "all", "Record kind to reconcile: all, lead, opportunity")
	)
	flag.Parse()

	// Initialize logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slogger := slog.New(logHandler)
	slog.SetDefault(slogger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(cfg, logger.Warn)
	if err != nil {
		slogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Interval doesn't matter for a one-time run
	reconciliationService := service.NewTeamReconciliationService(
		repository.NewTeamRepository(db),
		0,
		slogger,
	)

	// Configure the reconciliation service
	reconciliationService.SetBatchSize(*batchSize)
	reconciliationService.SetDryRun(*dryRun)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var reconcileErr error

	switch *kind {
	case "all":
		slogger.Info("reconciling all kinds")
		_, reconcileErr = reconciliationService.ReconcileAll(ctx)
	case string(model.KindLead), string(model.KindOpportunity):
		slogger.Info("reconciling one kind", "kind", *kind)
		var n int
		n, reconcileErr = reconciliationService.ReconcileKind(ctx, model.ResourceKind(*kind))
		slogger.Info("drifted records found", "kind", *kind, "count", n)
	default:
		slogger.Error("unknown record kind", "kind", *kind)
		os.Exit(1)
	}

	if reconcileErr != nil {
		slogger.Error("reconciliation failed", "error", reconcileErr)
		os.Exit(1)
	}

	slogger.Info("reconciliation completed successfully", "dry_run", *dryRun)
}
