package interfaces

import "time"

type SchedulerInterface interface {
	Schedule(delay time.Duration, fn func())
	Stop()
}
