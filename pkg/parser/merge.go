package parser

import (
	"container/heap"
	"context"
	"io"

	"github.com/adlib-audio/translog/pkg/event"
)

// MergedSource combines multiple EventSources into a single stream ordered
// by timestamp (oldest first), so events from several debug logs form one
// unified timeline.
type MergedSource struct {
	sources []EventSource
	heap    *eventHeap
	closed  bool
}

// NewMergedSource creates an EventSource that merges sources chronologically.
// Within one source, events with equal timestamps keep their line order.
func NewMergedSource(sources ...EventSource) *MergedSource {
	return &MergedSource{
		sources: sources,
		heap:    &eventHeap{},
	}
}

// Next returns the next event in timestamp order across all sources.
// Returns io.EOF when all sources are exhausted.
func (m *MergedSource) Next(ctx context.Context) (*event.Event, error) {
	if m.heap.Len() == 0 && !m.closed {
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	item := heap.Pop(m.heap).(*heapItem)
	ev := item.event

	// Refill from the source the popped event came from.
	if next, err := m.sources[item.sourceIdx].Next(ctx); err == nil {
		heap.Push(m.heap, &heapItem{event: next, sourceIdx: item.sourceIdx})
	} else if err != io.EOF {
		return nil, err
	}

	return ev, nil
}

// initHeap reads the first event from each source.
func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)

	for i, src := range m.sources {
		ev, err := src.Next(ctx)
		if err == io.EOF {
			continue // empty source
		}
		if err != nil {
			return err
		}

		heap.Push(m.heap, &heapItem{event: ev, sourceIdx: i})
	}

	return nil
}

// Close releases all source resources.
func (m *MergedSource) Close() error {
	m.closed = true
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// heapItem tags an event with its source index for the priority queue.
type heapItem struct {
	event     *event.Event
	sourceIdx int
}

type eventHeap []*heapItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	return h[i].event.Timestamp.Before(h[j].event.Timestamp)
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*heapItem))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
