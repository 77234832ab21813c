// Package scheduler runs the background cycles of the application on cron specs.
//
// It wraps robfig/cron with the behavior the reload and poll cycles need.
//
// # Guarantees
//
//   - A job never overlaps with itself: a tick that fires while the previous run is
//     still going is skipped.
//   - A panicking run is recovered and logged; the job stays scheduled.
//   - Jobs receive a context that Stop cancels, so shutdown reaches in-flight work.
//
// # Usage
//
//	sched := scheduler.New(loc, logger)
//	sched.Add("poll", "@every 1m", poll)
//	sched.Start()
//	defer sched.Stop(ctx)
package scheduler
