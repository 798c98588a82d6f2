package cache

import "time"

// SetClock replaces the time source used to stamp and expire entries.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
