package service

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	slotMutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	slotMutexStaleThreshold = 10 * time.Minute
)

// SlotLockService serializes the check-then-insert section of booking and
// rescheduling per slot. Two concurrent requests for the same
// (doctor, date, time) slot must not both observe "no conflict" and both
// commit; holding the slot's mutex across the conflict check and the insert
// guarantees exactly one wins.
//
// Mutexes are created lazily per slot key and cleaned up in the background
// once they go unused.
type SlotLockService struct {
	log *logrus.Logger

	// Per-slot mutex, keyed by "doctorID|date|time"
	slotMu sync.Map // map[string]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewSlotLockService creates a new SlotLockService.
// Starts background goroutine for mutex cleanup.
// Call Stop() during graceful shutdown.
func NewSlotLockService(log *logrus.Logger) *SlotLockService {
	svc := &SlotLockService{
		log:      log,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *SlotLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotLockService stopped")
	}
}

// Lock acquires the mutex for a slot and returns the unlock function.
func (s *SlotLockService) Lock(doctorID uint, date, time string) func() {
	mt := s.getSlotMutex(slotKey(doctorID, date, time))
	mt.mu.Lock()
	return mt.mu.Unlock
}

func slotKey(doctorID uint, date, time string) string {
	return fmt.Sprintf("%d|%s|%s", doctorID, date, time)
}

// getSlotMutex returns the mutex for a specific slot key
func (s *SlotLockService) getSlotMutex(key string) *mutexWithTimestamp {
	mt, _ := s.slotMu.LoadOrStore(key, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *SlotLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(slotMutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Slot mutex cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety.
// The lastUsed check happens inside the lock so a concurrent Lock cannot
// revive a mutex between the check and the delete.
func (s *SlotLockService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-slotMutexStaleThreshold).Unix()
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
}
