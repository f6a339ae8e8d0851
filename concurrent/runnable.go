// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package concurrent

import (
	"os"
	"sync"
)

// Runnable is a long-lived operation, such as a server or a monitor loop.
type Runnable interface {
	// Run starts this operation, spawning any goroutines it needs.  A non-nil
	// error means the operation could not start at all.  Spawned goroutines
	// register on the supplied WaitGroup and exit when the shutdown channel
	// is closed.  Run should be idempotent.
	Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error
}

// RunnableFunc is a function type that implements Runnable
type RunnableFunc func(*sync.WaitGroup, <-chan struct{}) error

func (r RunnableFunc) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	return r(waitGroup, shutdown)
}

// RunnableSet is a Runnable that starts its members in order.  The first
// startup error aborts the set:  members already started are left running
// under the shared shutdown channel.
type RunnableSet []Runnable

func (set RunnableSet) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	for _, operation := range set {
		if err := operation.Run(waitGroup, shutdown); err != nil {
			return err
		}
	}

	return nil
}

// Await runs the given runnable until anything arrives on the signal channel,
// then closes the shutdown channel and waits for all spawned goroutines to
// finish.  A startup error is returned immediately without waiting.
func Await(runnable Runnable, signals <-chan os.Signal) error {
	var (
		waitGroup = &sync.WaitGroup{}
		shutdown  = make(chan struct{})
	)

	if err := runnable.Run(waitGroup, shutdown); err != nil {
		return err
	}

	<-signals

	close(shutdown)
	waitGroup.Wait()
	return nil
}
