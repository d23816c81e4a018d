package renderer

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// scanline is a rendered camera row
type scanline struct {
	row    int
	pixels []byte
}

// workerResult is everything a worker hands back to the parent
type workerResult struct {
	lines []scanline
	err   error
}

// AssignRows stripes rows over workers round-robin: worker w renders every
// row with row % numWorkers == w.
func AssignRows(height, numWorkers int) [][]int {
	assignments := make([][]int, numWorkers)
	for row := 0; row < height; row++ {
		w := row % numWorkers
		assignments[w] = append(assignments[w], row)
	}
	return assignments
}

// NumWorkers resolves the worker count: the configured value, or the CPU
// count when unset, never more than one worker per row.
func (rt *Raytracer) NumWorkers() int {
	numWorkers := rt.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return min(numWorkers, rt.config.Height)
}

// RenderParallel renders the image with a fixed pool of workers. Each worker
// keeps its scanlines to itself; the parent merges them into the output
// buffer once every worker has finished. A panic in any worker fails the
// whole render.
func (rt *Raytracer) RenderParallel() ([]byte, RenderStats, error) {
	startTime := time.Now()
	numWorkers := rt.NumWorkers()
	assignments := AssignRows(rt.config.Height, numWorkers)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d (using %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, numWorkers)

	var remaining atomic.Int64
	remaining.Store(int64(rt.config.Height))
	progressStep := int64(max(1, rt.config.Height/10))

	results := make([]workerResult, numWorkers)
	var wg sync.WaitGroup
	for id := 0; id < numWorkers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			results[id] = rt.runWorker(id, assignments[id], func() {
				if left := remaining.Add(-1); left%progressStep == 0 {
					rt.logger.Printf("Scanlines remaining: %d\n", left)
				}
			})
		}(id)
	}
	wg.Wait()

	// Every worker is done; rows are disjoint so the merge needs no locking
	buffer := make([]byte, rt.config.Area()*3)
	stats := RenderStats{
		TotalPixels:   rt.config.Area(),
		TotalSamples:  rt.config.Area() * rt.config.SamplesPerPixel,
		Workers:       numWorkers,
		RowsPerWorker: make([]int, numWorkers),
	}
	for id, result := range results {
		if result.err != nil {
			return nil, RenderStats{}, result.err
		}
		for _, line := range result.lines {
			copy(buffer[rt.rowOffset(line.row):], line.pixels)
		}
		stats.RowsPerWorker[id] = len(result.lines)
	}
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Rows per worker: %v\n", stats.RowsPerWorker)
	rt.logger.Printf("Render completed in %v (%.0f samples/s)\n", stats.Duration, stats.SamplesPerSecond())

	return buffer, stats, nil
}

// runWorker renders the given rows and converts a panic into an error
func (rt *Raytracer) runWorker(id int, rows []int, rowDone func()) (result workerResult) {
	defer func() {
		if r := recover(); r != nil {
			result = workerResult{err: fmt.Errorf("worker %d panicked: %v\n%s", id, r, debug.Stack())}
		}
	}()

	lines := make([]scanline, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, scanline{
			row:    row,
			pixels: rt.Line(row, rt.rowRandom(row)),
		})
		rowDone()
	}

	return workerResult{lines: lines}
}
