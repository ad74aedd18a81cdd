package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/shelfcache/internal/services"
)

// Seeder fills an empty item store from the remote catalog.
type Seeder interface {
	RefreshIfEmpty(ctx context.Context) (services.SeedResult, error)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// SeedScheduler periodically retries seeding while the item store is still
// empty. Once a run finds the store populated the job removes itself; the
// store is never refreshed on a timer after that.
type SeedScheduler struct {
	seeder   Seeder
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	scheduled bool
	runs      int
}

// NewSeedScheduler creates a new scheduler instance
func NewSeedScheduler(seeder Seeder, schedule string) *SeedScheduler {
	return &SeedScheduler{
		seeder:   seeder,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the retry job. It stops when ctx is done.
func (s *SeedScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSeed(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule seed job: %w", err)
	}
	s.entryID = entryID
	s.scheduled = true

	s.cron.Start()
	s.isRunning = true

	log.Printf("Seed retry scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running seed to finish.
func (s *SeedScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	// A running job takes s.mu when it finishes, so wait without holding it.
	done := s.cron.Stop()
	<-done.Done()

	log.Printf("Seed retry scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *SeedScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsScheduled returns whether the retry job is still registered.
func (s *SeedScheduler) IsScheduled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheduled
}

// Runs returns how many times the job has fired.
func (s *SeedScheduler) Runs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs
}

// GetNextRunTime returns when the next retry will occur
func (s *SeedScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || !s.scheduled {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow triggers an immediate seed attempt in the caller's goroutine.
func (s *SeedScheduler) RunNow(ctx context.Context) {
	s.runSeed(ctx)
}

func (s *SeedScheduler) runSeed(ctx context.Context) {
	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	result, err := s.seeder.RefreshIfEmpty(ctx)
	if err != nil {
		log.Printf("Seed retry: attempt failed, will try again on schedule: %v", err)
		return
	}

	if result.Skipped {
		log.Printf("Seed retry: store already holds %d items", result.ExistingItems)
	} else {
		log.Printf("Seed retry: stored %d items", result.Inserted)
	}
	s.unschedule()
}

func (s *SeedScheduler) unschedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.scheduled {
		return
	}
	s.cron.Remove(s.entryID)
	s.scheduled = false
	log.Printf("Seed retry scheduler: store is seeded, retry job removed")
}
