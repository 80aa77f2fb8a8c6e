//go:build opencl

package clcast

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
	"GridCaster/internal/raycast"
)

// Caster owns the device resources for one map and one frame width.
type Caster struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program
	kernel  *cl.Kernel
	cellBuf *cl.MemObject
	distBuf *cl.MemObject
	hitBuf  *cl.MemObject

	mapW, mapH int
	columns    int
	fov        float32
	step       float32

	dist       []float32
	hits       []int32
	deviceName string
}

// Cells are indexed by truncation, matching grid.Map.Cell.
const marchKernelSource = `__kernel void march_columns(
    const int map_w,
    const int map_h,
    const int columns,
    const float ox,
    const float oy,
    const float heading,
    const float fov,
    const float step,
    __global const int* cells,
    __global float* dist,
    __global int* hit)
{
    int i = get_global_id(0);
    if (i >= columns) {
        return;
    }
    float angle = heading + (2.0f * (float)i / (float)columns - 1.0f) * fov;
    float dx = step * cos(angle);
    float dy = step * sin(angle);
    float fw = (float)map_w;
    float fh = (float)map_h;
    float x = ox;
    float y = oy;
    int h = 0;
    for (int n = 1; x >= 0.0f && y >= 0.0f && x < fw && y < fh; n++) {
        x = ox + (float)n * dx;
        y = oy + (float)n * dy;
        if (!(x >= 0.0f && y >= 0.0f && x < fw && y < fh)) {
            break;
        }
        if (cells[(int)y * map_w + (int)x] != 0) {
            h = 1;
            break;
        }
    }
    float ex = x - ox;
    float ey = y - oy;
    dist[i] = sqrt(ex * ex + ey * ey);
    hit[i] = h;
}`

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// New compiles the marching kernel and uploads the occupancy grid.
func New(m *grid.Map, opts raycast.Options) (*Caster, error) {
	if opts.Width <= 0 {
		return nil, fmt.Errorf("opencl caster needs a positive width, got %d", opts.Width)
	}
	if opts.Step == 0 {
		opts.Step = raycast.DefaultStep
	}
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}

	c := &Caster{
		mapW:       m.Width(),
		mapH:       m.Height(),
		columns:    opts.Width,
		fov:        float32(opts.FOV),
		step:       float32(opts.Step),
		dist:       make([]float32, opts.Width),
		hits:       make([]int32, opts.Width),
		deviceName: device.Name(),
	}
	if c.context, err = cl.CreateContext([]*cl.Device{device}); err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	if c.queue, err = c.context.CreateCommandQueue(device, 0); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if c.program, err = c.context.CreateProgramWithSource([]string{marchKernelSource}); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := c.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		c.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	if c.kernel, err = c.program.CreateKernel("march_columns"); err != nil {
		c.Close()
		return nil, fmt.Errorf("creating OpenCL kernel: %w", err)
	}

	int32Size := int(unsafe.Sizeof(int32(0)))
	cellCount := c.mapW * c.mapH
	if c.cellBuf, err = c.context.CreateEmptyBuffer(cl.MemReadOnly, cellCount*int32Size); err != nil {
		c.Close()
		return nil, fmt.Errorf("allocating cell buffer: %w", err)
	}
	if c.distBuf, err = c.context.CreateEmptyBuffer(cl.MemWriteOnly, c.columns*int(unsafe.Sizeof(float32(0)))); err != nil {
		c.Close()
		return nil, fmt.Errorf("allocating distance buffer: %w", err)
	}
	if c.hitBuf, err = c.context.CreateEmptyBuffer(cl.MemWriteOnly, c.columns*int32Size); err != nil {
		c.Close()
		return nil, fmt.Errorf("allocating hit buffer: %w", err)
	}

	cells := make([]int32, cellCount)
	for i, occupied := range m.Cells() {
		if occupied {
			cells[i] = 1
		}
	}
	if _, err := c.queue.EnqueueWriteBuffer(c.cellBuf, true, 0, cellCount*int32Size, unsafe.Pointer(&cells[0]), nil); err != nil {
		c.Close()
		return nil, fmt.Errorf("writing cell buffer: %w", err)
	}

	raycast.Logger().Info("opencl caster ready", "device", c.deviceName, "columns", c.columns)
	return c, nil
}

// Cast fills out with one sample per column for pose. Distances come back
// in float32 and may differ from the CPU marcher in the last few bits.
func (c *Caster) Cast(pose camera.Pose, out []raycast.Sample) error {
	if len(out) != c.columns {
		return fmt.Errorf("expected %d samples, got %d", c.columns, len(out))
	}
	if err := c.kernel.SetArgs(
		int32(c.mapW),
		int32(c.mapH),
		int32(c.columns),
		float32(pose.Position.X),
		float32(pose.Position.Y),
		float32(pose.Heading),
		c.fov,
		c.step,
		c.cellBuf,
		c.distBuf,
		c.hitBuf,
	); err != nil {
		return fmt.Errorf("setting kernel arguments: %w", err)
	}
	if _, err := c.queue.EnqueueNDRangeKernel(c.kernel, nil, []int{c.columns}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing kernel: %w", err)
	}
	if _, err := c.queue.EnqueueReadBufferFloat32(c.distBuf, true, 0, c.dist, nil); err != nil {
		return fmt.Errorf("reading distance buffer: %w", err)
	}
	hitBytes := len(c.hits) * int(unsafe.Sizeof(int32(0)))
	if _, err := c.queue.EnqueueReadBuffer(c.hitBuf, true, 0, hitBytes, unsafe.Pointer(&c.hits[0]), nil); err != nil {
		return fmt.Errorf("reading hit buffer: %w", err)
	}
	for i := range out {
		out[i] = raycast.Sample{Distance: float64(c.dist[i]), Hit: c.hits[i] != 0}
	}
	return nil
}

func (c *Caster) Close() {
	if c.hitBuf != nil {
		c.hitBuf.Release()
		c.hitBuf = nil
	}
	if c.distBuf != nil {
		c.distBuf.Release()
		c.distBuf = nil
	}
	if c.cellBuf != nil {
		c.cellBuf.Release()
		c.cellBuf = nil
	}
	if c.kernel != nil {
		c.kernel.Release()
		c.kernel = nil
	}
	if c.program != nil {
		c.program.Release()
		c.program = nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.context != nil {
		c.context.Release()
		c.context = nil
	}
}

func (c *Caster) DeviceName() string {
	return c.deviceName
}
