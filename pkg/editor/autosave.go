package editor

import (
	"context"
	"time"
)

// An Autosaver wakes up at a fixed interval and hands the time to post. It
// never touches a Session itself: post is expected to forward the tick to the
// goroutine that owns the session, which then calls Session.AutosaveTick.
type Autosaver struct {
	interval time.Duration
	post     func(time.Time)
}

func NewAutosaver(interval time.Duration, post func(time.Time)) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{interval: interval, post: post}
}

// Run blocks until ctx is done.
func (a *Autosaver) Run(ctx context.Context) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			a.post(now)
		}
	}
}
