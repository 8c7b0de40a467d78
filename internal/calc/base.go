package calc

import (
	"runtime"
	"sync"
)

// PipeLine runs row-wise matrix computations on a fixed number of workers.
// Every row is written by exactly one worker, so results do not depend on
// scheduling.
type PipeLine struct {
	numWorkers int
}

// Init returns a compute PipeLine. A non-positive worker count means one
// worker per CPU.
func Init(numWorkers int) *PipeLine {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &PipeLine{numWorkers: numWorkers}
}

// Workers returns the number of workers.
func (p *PipeLine) Workers() int {
	return p.numWorkers
}

// rows feeds row indices 0..n-1 to the workers and waits until all are done.
func (p *PipeLine) rows(n int, job func(row int)) {
	order := make(chan int, p.numWorkers)
	var wg sync.WaitGroup

	wg.Add(n)

	for i := 0; i < p.numWorkers; i++ {
		go func() {
			for index := range order {
				job(index)
				wg.Done()
			}
		}()
	}

	for i := 0; i < n; i++ {
		order <- i
	}

	wg.Wait()
	close(order)
}

type statistic struct {
	avg float64
	std float64
}
