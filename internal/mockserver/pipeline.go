package mockserver

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Pipeline simulates the backend's review pipeline: every few seconds
// each processing project's parse progress advances, and at 100% the
// project flips to completed with generated scores. The WS status
// channel picks the intermediate states up.
type Pipeline struct {
	store *Store
	cron  *cron.Cron
}

func NewPipeline(store *Store) *Pipeline {
	return &Pipeline{store: store}
}

// Start schedules the pipeline tick every tickSeconds seconds.
func (p *Pipeline) Start(tickSeconds int) {
	if tickSeconds < 1 {
		tickSeconds = 5
	}
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(fmt.Sprintf("*/%d * * * * *", tickSeconds), func() {
		p.store.AdvancePipeline()
	})
	if err != nil {
		log.Printf("Failed to create pipeline job: %v", err)
		return
	}

	log.Printf("Mock review pipeline started (advancing every %ds)", tickSeconds)
	c.Start()
	p.cron = c
}

// Stop halts the scheduler; running ticks are allowed to finish.
func (p *Pipeline) Stop() {
	if p.cron != nil {
		p.cron.Stop()
	}
}
