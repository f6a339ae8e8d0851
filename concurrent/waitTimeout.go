// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"sync"
	"time"
)

// WaitTimeout waits on the given sync.WaitGroup for at most the given
// duration.  It returns true if the WaitGroup finished, false if the
// timeout elapsed first.  On timeout the watcher goroutine is leaked
// until the WaitGroup eventually finishes.
func WaitTimeout(waitGroup *sync.WaitGroup, timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		waitGroup.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-finished:
		return true
	case <-timer.C:
		return false
	}
}
