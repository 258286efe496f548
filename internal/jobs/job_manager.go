package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	capacityAuditJob *CapacityAuditJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	overbookedHandler overbookedVehiclesHandler,
	auditSchedule string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		capacityAuditJob: NewCapacityAuditJob(overbookedHandler, auditSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.capacityAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start capacity audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.capacityAuditJob.Stop()
}
