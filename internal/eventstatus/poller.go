package eventstatus

import (
	"context"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Poller drives the status sweep on a fixed schedule. It replaces the old
// per-client polling: one server-side trigger instead of N browsers each
// firing a global sweep every minute.
//
// A failed sweep is logged and swallowed; the next firing is the retry.
// Firings may overlap a slow sweep — the sweep's guarded writes make that
// safe.
type Poller struct {
	svc      *Service
	schedule string

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// NewPoller creates a poller with a cron-style schedule, e.g. "@every 1m".
func NewPoller(svc *Service, schedule string) *Poller {
	return &Poller{svc: svc, schedule: schedule}
}

// Start registers the schedule and begins firing. Calling Start twice is a
// no-op.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil {
		return nil
	}

	c := cron.New()
	id, err := c.AddFunc(p.schedule, p.tick)
	if err != nil {
		return err
	}

	p.cron = c
	p.entryID = id
	p.cron.Start()
	log.Printf("✅ Status sweep scheduled (%s)", p.schedule)
	return nil
}

// Stop halts future firings and waits for an in-flight sweep to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	c := p.cron
	p.cron = nil
	p.mu.Unlock()

	if c == nil {
		return
	}

	ctx := c.Stop()
	<-ctx.Done()
	log.Println("✅ Status sweep stopped")
}

func (p *Poller) tick() {
	result, err := p.svc.Sweep(context.Background())
	if err != nil {
		log.Printf("⚠️ Scheduled status sweep failed: %v", err)
		return
	}
	if result.Updated > 0 {
		log.Printf("🔄 Status sweep updated %d event(s)", result.Updated)
	}
}
