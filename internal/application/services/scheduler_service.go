package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/internal/domain/ports"
	"github.com/mlodash/backend/pkg/constants"
)

// SchedulerService runs SCHEDULE-trigger workflows on their cron expressions.
// Each due workflow is evaluated once per client so conditions like
// "client.status == 'PROCESSING'" select the affected records.
type SchedulerService struct {
	workflows ports.WorkflowRepository
	clients   ports.ClientRepository
	executor  *WorkflowExecutor

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	stopped  bool // Prevents double-close of stopChan
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(workflows ports.WorkflowRepository, clients ports.ClientRepository, executor *WorkflowExecutor) *SchedulerService {
	return &SchedulerService{
		workflows: workflows,
		clients:   clients,
		executor:  executor,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scheduler background loop
func (s *SchedulerService) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	log.Println("⏰ Scheduler service starting...")

	ticker := time.NewTicker(time.Duration(constants.ScheduleCheckInterval) * time.Second)
	defer ticker.Stop()

	// Run immediately on start
	s.runDueWorkflows()

	for {
		select {
		case <-ticker.C:
			s.runDueWorkflows()
		case <-s.stopChan:
			log.Println("⏰ Scheduler service stopping...")
			s.wg.Wait() // Wait for running jobs to complete
			log.Println("⏰ Scheduler service stopped")
			return
		}
	}
}

// Stop gracefully stops the scheduler
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	if !s.running || s.stopped {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.stopped = true
	s.mu.Unlock()

	close(s.stopChan)
}

// runDueWorkflows finds and executes all due scheduled workflows
func (s *SchedulerService) runDueWorkflows() {
	ctx := context.Background()

	workflows, err := s.workflows.FindScheduled(ctx)
	if err != nil {
		log.Printf("⚠️ Scheduler: failed to load scheduled workflows: %v", err)
		return
	}

	now := time.Now().UTC()
	for _, workflow := range workflows {
		if workflow.Status != constants.WorkflowStatusActive || workflow.Schedule == "" {
			continue
		}

		due, err := s.isDue(workflow, now)
		if err != nil {
			log.Printf("⚠️ Scheduler: workflow %s has invalid schedule %q: %v", workflow.Name, workflow.Schedule, err)
			continue
		}
		if !due {
			continue
		}

		s.wg.Add(1)
		go func(workflow *models.Workflow) {
			defer s.wg.Done()
			s.runWorkflow(ctx, workflow, now)
		}(workflow)
	}
}

// isDue reports whether the workflow's cron schedule has fired since its last
// run (or since creation for a never-run workflow).
func (s *SchedulerService) isDue(workflow *models.Workflow, now time.Time) (bool, error) {
	schedule, err := cron.ParseStandard(workflow.Schedule)
	if err != nil {
		return false, err
	}

	base := workflow.CreatedDate
	if workflow.LastRunAt != nil {
		base = *workflow.LastRunAt
	}
	next := schedule.Next(base.UTC())
	return !next.After(now), nil
}

// runWorkflow evaluates one due workflow against every client, executing it
// where the trigger condition matches.
func (s *SchedulerService) runWorkflow(ctx context.Context, workflow *models.Workflow, firedAt time.Time) {
	if err := s.workflows.UpdateLastRun(ctx, workflow.ID, firedAt); err != nil {
		log.Printf("⚠️ Scheduler: failed to record last run for workflow %s: %v", workflow.Name, err)
	}

	clientIDs, err := s.clients.FindAllIDs(ctx)
	if err != nil {
		log.Printf("⚠️ Scheduler: failed to list clients for workflow %s: %v", workflow.Name, err)
		return
	}

	executed := 0
	for _, clientID := range clientIDs {
		execCtx := &models.ExecutionContext{
			ClientID:    clientID,
			TriggerType: constants.TriggerSchedule,
			TriggerData: map[string]interface{}{
				"workflowId":  workflow.ID,
				"scheduledAt": firedAt.Format(time.RFC3339),
			},
		}

		matched, err := s.executor.MatchesCondition(ctx, workflow, execCtx)
		if err != nil {
			log.Printf("⚠️ Scheduler: condition failed for workflow %s, client %s: %v", workflow.Name, clientID, err)
			continue
		}
		if !matched {
			continue
		}

		s.executor.ExecuteWorkflow(ctx, workflow, execCtx)
		executed++
	}

	log.Printf("⏰ Scheduler: workflow %s executed for %d client(s)", workflow.Name, executed)
}
