// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs are built on github.com/robfig/cron/v3 and are managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(overbookedHandler, cfg.CapacityAuditSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Capacity audit
//
// Capacity is checked when an order is matched and again when a proposal is
// accepted, but two concurrent bookings of the same vehicle can still both
// pass. CapacityAuditJob walks the fleet on a schedule (DefaultCapacityAuditSchedule
// unless configured) and logs a warning for every overbooked vehicle.
// A run that is still in progress when the next one is due is skipped.
package jobs
