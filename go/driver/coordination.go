// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// progressInterval is the period between two progress reports.
var progressInterval = 5 * time.Second

// forEachVector runs opFunction for each of the given vector names on
// numJobs parallel goroutines. Every progressInterval, printProgress is
// called with the time since the start, the current processing rate and the
// number of vectors processed so far. The function returns when all vectors
// are processed.
func forEachVector(
	names []string,
	opFunction func(name string),
	printProgress func(relativeTime time.Duration, rate float64, current int64),
	numJobs int,
) {
	// Names are distributed through a channel to a team of worker goroutines.
	// Additionally, a goroutine periodically reporting progress information
	// is running until all workers are done.
	if numJobs < 1 {
		numJobs = 1
	}

	var counter atomic.Int64
	done := make(chan bool)
	printerDone := make(chan bool)
	go func() {
		defer close(printerDone)
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		startTime := time.Now()
		lastTime := startTime
		lastCounter := int64(0)
		for {
			select {
			case <-done:
				return
			case curTime := <-ticker.C:
				cur := counter.Load()

				diffCounter := cur - lastCounter
				diffTime := curTime.Sub(lastTime)

				lastTime = curTime
				lastCounter = cur

				rate := float64(diffCounter) / diffTime.Seconds()
				printProgress(curTime.Sub(startTime), rate, cur)
			}
		}
	}()

	var workers sync.WaitGroup
	workers.Add(numJobs)
	nameChannel := make(chan string, 10*numJobs)
	for i := 0; i < numJobs; i++ {
		go func() {
			defer workers.Done()
			for name := range nameChannel {
				opFunction(name)
				counter.Add(1)
			}
		}()
	}

	for _, name := range names {
		nameChannel <- name
	}
	close(nameChannel)
	workers.Wait() // < releases when all vectors are processed

	close(done)   // < signals progress printer to stop
	<-printerDone // < blocks until channel is closed by progress printer
}
