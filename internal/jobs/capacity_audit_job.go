package jobs

import (
	"context"

	"freight/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultCapacityAuditSchedule runs the audit every five minutes.
const DefaultCapacityAuditSchedule = "@every 5m"

type overbookedVehiclesHandler interface {
	Handle(ctx context.Context, query queries.GetOverbookedVehiclesQuery) ([]queries.VehicleCapacityResponse, error)
}

// CapacityAuditJob periodically looks for vehicles whose active orders exceed
// their weight or volume limit. It only reports; resolving an overbooking is
// left to the transporter.
type CapacityAuditJob struct {
	handler  overbookedVehiclesHandler
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewCapacityAuditJob creates the audit job. The schedule uses the standard
// five field cron syntax or a descriptor such as "@every 1m".
func NewCapacityAuditJob(handler overbookedVehiclesHandler, schedule string, logger *zap.Logger) *CapacityAuditJob {
	if schedule == "" {
		schedule = DefaultCapacityAuditSchedule
	}
	return &CapacityAuditJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "capacity_audit_job")),
	}
}

// Start schedules the audit.
func (j *CapacityAuditJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("capacity audit job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running audit to finish.
func (j *CapacityAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("capacity audit job stopped")
}

func (j *CapacityAuditJob) run(ctx context.Context) int {
	overbooked, err := j.handler.Handle(ctx, queries.NewGetOverbookedVehiclesQuery())
	if err != nil {
		j.logger.Error("capacity audit failed", zap.Error(err))
		return 0
	}

	for _, v := range overbooked {
		j.logger.Warn("vehicle is overbooked",
			zap.String("vehicle_id", v.VehicleID.String()),
			zap.String("transporter_id", v.TransporterID.String()),
			zap.String("license_plate", v.LicensePlate),
			zap.Float64("remaining_weight", v.RemainingWeight),
			zap.Float64("remaining_volume", v.RemainingVolume),
			zap.Int("assigned_orders", len(v.AssignedOrders)))
	}
	if len(overbooked) == 0 {
		j.logger.Debug("capacity audit found no overbooked vehicles")
	}
	return len(overbooked)
}
