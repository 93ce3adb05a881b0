package resolver

import "time"

// Mode identifies which branch of Resolve handled a request.
type Mode string

const (
	ModeExplicit  Mode = "explicit"
	ModeDirectory Mode = "directory"
	ModeNone      Mode = "none"
)

// Observer receives resolution events. internal/metrics.Collector implements it.
type Observer interface {
	ObserveTask(mode Mode)
	ObserveMissingInput()
	ObserveMissingDirectory()
	ObserveCollision()
	ObserveTransform(host string, ok bool)
	ObserveResolve(mode Mode, tasks int, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveTask(Mode)                        {}
func (nopObserver) ObserveMissingInput()                    {}
func (nopObserver) ObserveMissingDirectory()                {}
func (nopObserver) ObserveCollision()                       {}
func (nopObserver) ObserveTransform(string, bool)           {}
func (nopObserver) ObserveResolve(Mode, int, time.Duration) {}
