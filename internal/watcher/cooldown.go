package watcher

import "time"

// shouldUpload is the cooldown gate: true iff the frame had a qualifying
// detection and strictly more than the cooldown has elapsed since the
// last attempt. A zero lastSent (fresh run) always passes.
func shouldUpload(matched bool, now, lastSent time.Time, cooldown time.Duration) bool {
	return matched && now.Sub(lastSent) > cooldown
}
