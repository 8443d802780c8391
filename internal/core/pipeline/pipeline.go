// Package pipeline runs the per-frame ray cast on a fixed pool of workers and
// merges their partial results into one projected frame.
//
// Each worker owns one contiguous slice of the viewer's field of view. A frame
// sends every worker a start signal, waits for one result per worker, stitches
// the partial Walls together in partition order and projects them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/core/projection"
	"chosenoffset.com/gridcaster/internal/core/raycast"
	"chosenoffset.com/gridcaster/internal/world/element"
	"chosenoffset.com/gridcaster/internal/world/scene"
)

var (
	// ErrFrameDropped is returned when a frame times out or a worker fails.
	ErrFrameDropped = errors.New("pipeline: frame dropped")
	// ErrClosed is returned by Frame after Close.
	ErrClosed = errors.New("pipeline: closed")
)

// Source is the shared state the workers read. *scene.Scene implements it.
type Source interface {
	Viewer() scene.Viewer
	ReadElements(fn func(v scene.Viewer, elements []element.Element))
}

// Options configures a Pipeline.
type Options struct {
	Workers   int
	Caster    raycast.Caster
	Projector projection.Projector
	// Timeout bounds a single frame. Zero means the caller's context alone
	// decides.
	Timeout time.Duration
}

// Frame is the output of one pass.
type Frame struct {
	Sequence uint64
	Viewer   scene.Viewer
	Walls    raycast.Walls
	Polygons []projection.Polygon
}

type request struct {
	seq    uint64
	viewer scene.Viewer
}

type result struct {
	seq   uint64
	index int
	walls raycast.Walls
	err   error
}

// Pipeline is a fixed set of long-lived casting workers. Frame calls are
// serialized.
type Pipeline struct {
	src  Source
	rays []geometry.LinearGraph
	opts Options

	starts  []chan request
	results chan result
	stop    chan struct{}
	wg      sync.WaitGroup

	mu     sync.Mutex
	seq    uint64
	closed bool
	once   sync.Once
}

// New starts opts.Workers workers casting rays against src.
func New(src Source, rays []geometry.LinearGraph, opts Options) *Pipeline {
	if opts.Workers < 0 {
		opts.Workers = 0
	}
	p := &Pipeline{
		src:     src,
		rays:    rays,
		opts:    opts,
		starts:  make([]chan request, opts.Workers),
		results: make(chan result, 2*opts.Workers),
		stop:    make(chan struct{}),
	}
	for i := range p.starts {
		p.starts[i] = make(chan request, 1)
		p.wg.Add(1)
		go p.work(i)
	}
	glog.Infof("Started pipeline with %d workers over %d rays", opts.Workers, len(rays))
	return p
}

// Workers returns the size of the pool.
func (p *Pipeline) Workers() int {
	return len(p.starts)
}

// Frame casts, merges and projects one frame for the current viewer. With
// zero workers it returns an empty frame.
func (p *Pipeline) Frame(ctx context.Context) (*Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	p.seq++
	seq := p.seq

	viewer := p.src.Viewer()
	frame := &Frame{Sequence: seq, Viewer: viewer}
	if len(p.starts) == 0 {
		return frame, nil
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	req := request{seq: seq, viewer: viewer}
	for _, start := range p.starts {
		// A worker still busy with a dropped frame leaves its previous
		// request unread; replace it.
		select {
		case <-start:
		default:
		}
		start <- req
	}

	parts := make([]raycast.Walls, len(p.starts))
	pending := len(p.starts)
	for pending > 0 {
		select {
		case r := <-p.results:
			if r.seq != seq {
				glog.V(2).Infof("Discarding stale result %d from worker %d", r.seq, r.index)
				continue
			}
			if r.err != nil {
				glog.Warningf("Dropping frame %d: worker %d: %v", seq, r.index, r.err)
				return nil, fmt.Errorf("%w: %v", ErrFrameDropped, r.err)
			}
			parts[r.index] = r.walls
			pending--
		case <-p.stop:
			return nil, ErrClosed
		case <-ctx.Done():
			glog.Warningf("Dropping frame %d: %d of %d workers missing: %v", seq, pending, len(p.starts), ctx.Err())
			return nil, fmt.Errorf("%w: %v", ErrFrameDropped, ctx.Err())
		}
	}

	var walls raycast.Walls
	for _, part := range parts {
		walls = walls.Merge(part)
	}
	frame.Walls = walls
	frame.Polygons = p.opts.Projector.Polygons(viewer.FOV, viewer.Position, walls)
	glog.V(1).Infof("Frame %d: %d walls", seq, len(walls))
	return frame, nil
}

// Close stops the workers and waits for them to exit. It is safe to call
// more than once.
func (p *Pipeline) Close() {
	p.once.Do(func() {
		close(p.stop)
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.wg.Wait()
		glog.Infof("Stopped pipeline")
	})
}

func (p *Pipeline) work(index int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			return
		case req := <-p.starts[index]:
			r := p.cast(index, req)
			select {
			case p.results <- r:
			case <-p.stop:
				return
			}
		}
	}
}

// cast runs one worker's share of a frame. A panic becomes an error result.
func (p *Pipeline) cast(index int, req request) (r result) {
	r = result{seq: req.seq, index: index}
	defer func() {
		if rec := recover(); rec != nil {
			glog.Errorf("Worker %d panicked on frame %d: %v", index, req.seq, rec)
			r.walls = nil
			r.err = fmt.Errorf("worker %d panicked: %v", index, rec)
		}
	}()

	ranges := req.viewer.RaysAngleRange(len(p.rays), index, len(p.starts))
	p.src.ReadElements(func(_ scene.Viewer, elements []element.Element) {
		r.walls = p.opts.Caster.CastRanges(p.rays, ranges, req.viewer.Position, elements)
	})
	return r
}
