package viewer

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Tests substitute a manual scheduler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemScheduler schedules callbacks on the wall clock.
func SystemScheduler() Scheduler {
	return clockScheduler{}
}

// Dispatcher starts asynchronous work such as render attempts and store
// writes. The default runs each job on its own goroutine.
type Dispatcher func(job func())

func goDispatch(job func()) {
	go job()
}
