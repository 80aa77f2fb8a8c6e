package raycast

import (
	"bytes"
	"math"
	"math/rand"
	"sync"
	"testing"

	"seehuhn.de/go/geom/vec"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
)

func TestPartitionCoversWidth(t *testing.T) {
	tests := []struct {
		width, workers int
	}{
		{640, 1},
		{640, 4},
		{641, 4},
		{7, 3},
		{3, 8},
		{0, 2},
		{10, 0},
	}
	for _, tt := range tests {
		spans := Partition(tt.width, tt.workers)
		want := tt.workers
		if want < 1 {
			want = 1
		}
		if len(spans) != want {
			t.Errorf("Partition(%d, %d): expected %d spans, got %d", tt.width, tt.workers, want, len(spans))
			continue
		}
		next := 0
		for i, s := range spans {
			if s.Start != next || s.End < s.Start {
				t.Errorf("Partition(%d, %d): span %d = %+v, expected start %d", tt.width, tt.workers, i, s, next)
			}
			next = s.End
		}
		if next != tt.width {
			t.Errorf("Partition(%d, %d): spans end at %d", tt.width, tt.workers, next)
		}
	}
}

func TestPartitionLastSpanTakesRemainder(t *testing.T) {
	spans := Partition(10, 3)
	want := []ColumnSpan{{0, 3}, {3, 6}, {6, 10}}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d: expected %+v, got %+v", i, want[i], spans[i])
		}
	}
}

func schedulerFixture(t testing.TB, width, height int) (*Kernel, camera.Pose) {
	t.Helper()
	m, err := grid.Generate(16, 12, grid.DefaultGenerateOptions(), rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	k := mustKernel(t, m, Options{Width: width, Height: height, FOV: math.Pi / 4}, nil)
	return k, camera.Pose{Position: vec.Vec2{X: 2, Y: 2}, Heading: 0.7}
}

func TestSchedulerMatchesSerialRender(t *testing.T) {
	k, pose := schedulerFixture(t, 101, 60)
	serial := k.NewFrame()
	k.RenderColumns(serial, pose, ColumnSpan{0, 101})

	for _, workers := range []int{1, 2, 3, 7, 200} {
		s := NewScheduler(k, workers)
		f := k.NewFrame()
		for i := 0; i < 3; i++ {
			s.RenderFrame(f, pose)
			if !bytes.Equal(f.Pix, serial.Pix) {
				t.Fatalf("workers=%d frame %d: parallel output differs from serial", workers, i)
			}
		}
		s.Close()
	}
}

func TestSchedulerDefaultsToCPUCount(t *testing.T) {
	k, _ := schedulerFixture(t, 32, 16)
	s := NewScheduler(k, 0)
	defer s.Close()
	if s.Workers() < 1 {
		t.Errorf("Expected at least one worker, got %d", s.Workers())
	}
	if len(s.Spans()) != s.Workers() {
		t.Errorf("Expected one span per worker")
	}
}

func TestSchedulerPaintFrame(t *testing.T) {
	k, _ := schedulerFixture(t, 40, 100)
	samples := make([]Sample, 40)
	for i := range samples {
		samples[i] = Sample{Distance: 1 + float64(i)/4, Hit: i%5 != 0}
	}
	want := k.NewFrame()
	k.PaintSamples(want, samples, ColumnSpan{0, 40})

	s := NewScheduler(k, 3)
	defer s.Close()
	got := k.NewFrame()
	s.PaintFrame(got, samples)
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("Expected PaintFrame to match serial painting")
	}
}

func TestSchedulerCloseIsIdempotent(t *testing.T) {
	k, pose := schedulerFixture(t, 50, 30)
	want := k.NewFrame()
	k.RenderColumns(want, pose, ColumnSpan{0, 50})

	s := NewScheduler(k, 4)
	s.Close()
	s.Close()

	f := k.NewFrame()
	s.RenderFrame(f, pose)
	if !bytes.Equal(f.Pix, want.Pix) {
		t.Error("Expected rendering after Close to still produce the full frame")
	}
}

func TestSchedulerConcurrentCallers(t *testing.T) {
	k, pose := schedulerFixture(t, 64, 32)
	want := k.NewFrame()
	k.RenderColumns(want, pose, ColumnSpan{0, 64})

	s := NewScheduler(k, 4)
	defer s.Close()

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := k.NewFrame()
			for i := 0; i < 10; i++ {
				s.RenderFrame(f, pose)
				if !bytes.Equal(f.Pix, want.Pix) {
					errs <- "frame differs"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestSchedulerPanicsOnMismatchedFrame(t *testing.T) {
	k, pose := schedulerFixture(t, 20, 20)
	s := NewScheduler(k, 2)
	defer s.Close()
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for a frame of the wrong size")
		}
	}()
	s.RenderFrame(NewFrame(10, 20), pose)
}

func BenchmarkSchedulerRenderFrame(b *testing.B) {
	k, pose := schedulerFixture(b, 640, 480)
	s := NewScheduler(k, 0)
	defer s.Close()
	f := k.NewFrame()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.RenderFrame(f, pose)
	}
}
