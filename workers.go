// Copyright 2019 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ssimosaic

import (
	"sync"
)

// WorkerPool runs jobs on a fixed number of go routines. All jobs are read
// from a single channel, thus a pool can be shared by all stages of a mosaic
// generation.
//
// A pool must be closed with Close once it's no longer required.
type WorkerPool struct {
	NumRoutines int
	jobs        chan func()
	done        sync.WaitGroup
}

// NewWorkerPool starts a pool with numRoutines go routines (at least one).
func NewWorkerPool(numRoutines int) *WorkerPool {
	if numRoutines <= 0 {
		numRoutines = 1
	}
	pool := &WorkerPool{
		NumRoutines: numRoutines,
		jobs:        make(chan func(), BufferSize),
	}
	pool.done.Add(numRoutines)
	for w := 0; w < numRoutines; w++ {
		go func() {
			defer pool.done.Done()
			for next := range pool.jobs {
				next()
			}
		}()
	}
	return pool
}

// Run calls job(0), ..., job(numJobs - 1) concurrently and returns once all
// calls have finished. The first error (in order of completion) is returned,
// the remaining jobs are executed nonetheless.
//
// Run must not be called from inside a job of the same pool.
func (pool *WorkerPool) Run(numJobs int, job func(i int) error) error {
	if numJobs <= 0 {
		return nil
	}
	errorChan := make(chan error, numJobs)
	go func() {
		for i := 0; i < numJobs; i++ {
			i := i
			pool.jobs <- func() {
				errorChan <- job(i)
			}
		}
	}()
	var err error
	for i := 0; i < numJobs; i++ {
		nextErr := <-errorChan
		if nextErr != nil && err == nil {
			err = nextErr
		}
	}
	return err
}

// Close stops all workers and waits for them to finish.
func (pool *WorkerPool) Close() {
	close(pool.jobs)
	pool.done.Wait()
}

// chunks divides n elements into at most k contiguous ranges of almost equal
// size. Each range is given as [start, end).
func chunks(n, k int) [][2]int {
	if n <= 0 {
		return nil
	}
	k = IntMax(IntMin(k, n), 1)
	res := make([][2]int, k)
	size, rest := n/k, n%k
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < rest {
			end++
		}
		res[i] = [2]int{start, end}
		start = end
	}
	return res
}
