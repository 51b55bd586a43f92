// internal/service/team_reconciliation.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/repository"
	"github.com/google/uuid"
)

// ReconcileKinds are the record kinds carrying a reporting team next to
// their assignee.
var ReconcileKinds = []model.ResourceKind{model.KindLead, model.KindOpportunity}

// TeamReconciliationService periodically rewrites the reporting team_id of
// assigned leads and opportunities to their assignee's current team.
// Assignments themselves are never changed.
type TeamReconciliationService struct {
	teams        repository.TeamRepositoryIface
	syncInterval time.Duration
	batchSize    int
	dryRun       bool // If true, don't make changes, just log
	logger       *slog.Logger
	stopChan     chan struct{}
	stoppedChan  chan struct{}
}

// NewTeamReconciliationService creates a new reconciliation service
func NewTeamReconciliationService(
	teams repository.TeamRepositoryIface,
	syncInterval time.Duration,
	logger *slog.Logger,
) *TeamReconciliationService {
	if syncInterval == 0 {
		syncInterval = 30 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamReconciliationService{
		teams:        teams,
		syncInterval: syncInterval,
		batchSize:    100,
		dryRun:       false,
		logger:       logger,
		stopChan:     make(chan struct{}),
		stoppedChan:  make(chan struct{}),
	}
}

// Start begins the periodic reconciliation process
func (s *TeamReconciliationService) Start() {
	go func() {
		ticker := time.NewTicker(s.syncInterval)
		defer ticker.Stop()
		defer close(s.stoppedChan)

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := s.ReconcileAll(ctx); err != nil {
					s.logger.Error("team reconciliation failed", "error", err)
				}
				cancel()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop halts the reconciliation process
func (s *TeamReconciliationService) Stop() {
	close(s.stopChan)
	<-s.stoppedChan
}

// SetBatchSize sets the number of records to process in a batch
func (s *TeamReconciliationService) SetBatchSize(size int) {
	if size > 0 {
		s.batchSize = size
	}
}

// SetDryRun sets whether to actually make changes or just log what would be done
func (s *TeamReconciliationService) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// ReconcileAll repairs every reconcilable kind and returns the number of
// drifted records found per kind.
func (s *TeamReconciliationService) ReconcileAll(ctx context.Context) (map[model.ResourceKind]int, error) {
	s.logger.Info("starting team reconciliation", "dry_run", s.dryRun)

	counts := make(map[model.ResourceKind]int, len(ReconcileKinds))
	for _, kind := range ReconcileKinds {
		n, err := s.ReconcileKind(ctx, kind)
		counts[kind] = n
		if err != nil {
			return counts, fmt.Errorf("reconciling %s: %w", kind, err)
		}
	}

	s.logger.Info("completed team reconciliation", "counts", counts)
	return counts, nil
}

// ReconcileKind pages through drifted records of one kind by id. In dry run
// the records are only logged.
func (s *TeamReconciliationService) ReconcileKind(ctx context.Context, kind model.ResourceKind) (int, error) {
	var (
		after uuid.UUID
		found int
	)

	for {
		batch, err := s.teams.FindTeamDrift(ctx, kind, after, s.batchSize)
		if err != nil {
			return found, err
		}
		if len(batch) == 0 {
			break
		}

		s.logger.Info("processing drift batch", "kind", kind, "size", len(batch))
		repaired := 0
		for _, d := range batch {
			found++
			after = d.RecordID

			if s.dryRun {
				s.logger.Info("would rewrite team (dry run)",
					"kind", kind,
					"record_id", d.RecordID.String(),
					"from_team", d.RecordTeamID,
					"to_team", d.AssigneeTeam,
				)
				continue
			}

			if err := s.teams.SetRecordTeam(ctx, kind, d.RecordID, d.AssigneeTeam); err != nil {
				s.logger.Error("failed to rewrite team",
					"kind", kind,
					"record_id", d.RecordID.String(),
					"error", err,
				)
				// Continue with other records
				continue
			}
			repaired++
		}
		if s.dryRun {
			recordReconciled(kind, true, len(batch))
		} else {
			recordReconciled(kind, false, repaired)
		}

		if len(batch) < s.batchSize {
			break
		}

		// Check if context is done between batches
		select {
		case <-ctx.Done():
			return found, ctx.Err()
		default:
		}
	}

	return found, nil
}
