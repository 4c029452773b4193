package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avoronin/reading-diary/internal/exporters"
)

// CSVBackupScheduler periodically snapshots the book listing to a CSV file
// in the configured backup directory.
type CSVBackupScheduler struct {
	exporter *exporters.CSVExporter
	schedule string
	dir      string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewCSVBackupScheduler creates a new scheduler instance.
func NewCSVBackupScheduler(exporter *exporters.CSVExporter, schedule, dir string) *CSVBackupScheduler {
	return &CSVBackupScheduler{
		exporter: exporter,
		schedule: schedule,
		dir:      dir,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduled backups. Calling Start on a running scheduler
// is a no-op.
func (s *CSVBackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.dir == "" {
		log.Printf("CSV backup scheduler: backup directory not configured, skipping")
		return nil
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory %s: %w", s.dir, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runBackup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job with '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	_, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("CSV backup scheduler: started with schedule '%s', writing to %s", s.schedule, s.dir)

	return nil
}

// Stop halts the scheduler and waits for a running backup to finish.
func (s *CSVBackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()

	s.isRunning = false
	log.Printf("CSV backup scheduler: stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *CSVBackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *CSVBackupScheduler) runBackup() {
	path := filepath.Join(s.dir, fmt.Sprintf("reading-diary-%s.csv", time.Now().Format("20060102-150405")))

	log.Printf("CSV backup: exporting to %s", path)
	if err := s.exporter.Export(path); err != nil {
		log.Printf("CSV backup to %s failed: %v", path, err)
		return
	}
	log.Printf("CSV backup: completed, %s", path)
}
