package raycast

import (
	"fmt"
	"runtime"
	"sync"

	"GridCaster/internal/camera"
)

type frameJob int

const (
	jobCast frameJob = iota
	jobPaint
)

// Scheduler renders frames on a fixed set of long-lived worker goroutines.
// Each worker owns one column span for its whole life; a frame is handed
// over by bumping a generation counter under the condition variable, and
// RenderFrame returns only once every worker has counted itself back in.
type Scheduler struct {
	kernel *Kernel
	spans  []ColumnSpan

	// frameMu keeps frames from overlapping when several goroutines render.
	frameMu sync.Mutex

	mu         sync.Mutex
	cond       *sync.Cond
	generation int
	pending    int
	closed     bool

	// Published under mu before generation is bumped.
	frame   *Frame
	pose    camera.Pose
	samples []Sample
	job     frameJob

	exited sync.WaitGroup
}

// NewScheduler starts workers goroutines over k. workers <= 0 selects one per
// logical CPU.
func NewScheduler(k *Kernel, workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	s := &Scheduler{
		kernel: k,
		spans:  Partition(k.opts.Width, workers),
	}
	s.cond = sync.NewCond(&s.mu)
	s.exited.Add(workers)
	for i := 0; i < workers; i++ {
		go s.workerLoop(i)
	}
	Logger().Debug("render workers started", "workers", workers, "columns", k.opts.Width)
	return s
}

// Workers returns the pool size.
func (s *Scheduler) Workers() int { return len(s.spans) }

// Spans returns a copy of the per-worker column spans.
func (s *Scheduler) Spans() []ColumnSpan {
	out := make([]ColumnSpan, len(s.spans))
	copy(out, s.spans)
	return out
}

// Kernel returns the kernel the workers run.
func (s *Scheduler) Kernel() *Kernel { return s.kernel }

// RenderFrame casts and paints every column of f for pose and blocks until
// the frame is complete. pose is copied before any worker starts.
func (s *Scheduler) RenderFrame(f *Frame, pose camera.Pose) {
	s.checkFrame(f)
	s.dispatch(f, pose, nil, jobCast)
}

// PaintFrame paints f from one precomputed sample per column.
func (s *Scheduler) PaintFrame(f *Frame, samples []Sample) {
	s.checkFrame(f)
	if len(samples) != f.Width {
		panic(fmt.Sprintf("raycast: %d samples for %d columns", len(samples), f.Width))
	}
	s.dispatch(f, camera.Pose{}, samples, jobPaint)
}

func (s *Scheduler) checkFrame(f *Frame) {
	if f.Width != s.kernel.opts.Width || f.Height != s.kernel.opts.Height {
		panic(fmt.Sprintf("raycast: frame %dx%d does not match kernel %dx%d",
			f.Width, f.Height, s.kernel.opts.Width, s.kernel.opts.Height))
	}
}

func (s *Scheduler) dispatch(f *Frame, pose camera.Pose, samples []Sample, job frameJob) {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		for _, span := range s.spans {
			s.run(job, f, pose, samples, span)
		}
		return
	}
	s.frame, s.pose, s.samples, s.job = f, pose, samples, job
	s.pending = len(s.spans)
	s.generation++
	s.cond.Broadcast()
	for s.pending > 0 {
		s.cond.Wait()
	}
	s.frame, s.samples = nil, nil
	s.mu.Unlock()
}

func (s *Scheduler) run(job frameJob, f *Frame, pose camera.Pose, samples []Sample, span ColumnSpan) {
	if span.Len() == 0 {
		return
	}
	if job == jobPaint {
		s.kernel.PaintSamples(f, samples, span)
		return
	}
	s.kernel.RenderColumns(f, pose, span)
}

// workerLoop renders the worker's span once per generation.
func (s *Scheduler) workerLoop(index int) {
	defer s.exited.Done()
	span := s.spans[index]
	lastGen := 0
	s.mu.Lock()
	for {
		for s.generation == lastGen && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			return
		}
		lastGen = s.generation
		f, pose, samples, job := s.frame, s.pose, s.samples, s.job
		s.mu.Unlock()

		s.run(job, f, pose, samples, span)

		s.mu.Lock()
		s.pending--
		if s.pending == 0 {
			s.cond.Broadcast()
		}
	}
}

// Close retires the workers. It is safe to call more than once; frames
// rendered afterwards run on the calling goroutine.
func (s *Scheduler) Close() {
	s.frameMu.Lock()
	defer s.frameMu.Unlock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()
	s.exited.Wait()
	Logger().Debug("render workers stopped", "workers", len(s.spans))
}
