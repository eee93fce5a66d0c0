package reminder

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "@every 1h"

// Schedule runs a job on a cron spec. A run that is still going when the
// next one fires causes that one to be skipped.
type Schedule struct {
	cron *cron.Cron
	spec string
}

func ParseSchedule(spec string) (cron.Schedule, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return s, nil
}

func Start(spec string, job func()) (*Schedule, error) {
	if spec == "" {
		spec = DefaultSchedule
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(spec, job); err != nil {
		return nil, fmt.Errorf("schedule reminders %q: %w", spec, err)
	}
	c.Start()
	return &Schedule{cron: c, spec: spec}, nil
}

// Stop halts the schedule and waits for a running job to return.
func (s *Schedule) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Schedule) String() string {
	return s.spec
}
