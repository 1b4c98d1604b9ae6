package archive

import "time"

func (s *Store) SetClock(now func() time.Time) { s.now = now }

func (s *Store) SetLockTimeout(d time.Duration) { s.lockTimeout = d }
