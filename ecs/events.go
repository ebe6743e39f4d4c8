package ecs

// ReaderID is a cursor into an EventChannel. Each reader observes every
// event written after it was registered exactly once.
type ReaderID struct {
	pos     uint64
	channel any
}

// EventChannel is an append-only event stream with any number of
// independent readers.
type EventChannel[T any] struct {
	items   []T
	base    uint64 // absolute index of items[0]
	readers map[*ReaderID]struct{}
}

func NewEventChannel[T any]() *EventChannel[T] {
	return &EventChannel[T]{readers: make(map[*ReaderID]struct{})}
}

// RegisterReader returns a cursor positioned at the end of the stream.
func (c *EventChannel[T]) RegisterReader() *ReaderID {
	if c.readers == nil {
		c.readers = make(map[*ReaderID]struct{})
	}
	r := &ReaderID{pos: c.end(), channel: c}
	c.readers[r] = struct{}{}
	return r
}

// Unregister detaches a reader so it no longer holds back compaction.
func (c *EventChannel[T]) Unregister(r *ReaderID) {
	if r == nil {
		return
	}
	delete(c.readers, r)
	c.compact()
}

// Write publishes one event.
func (c *EventChannel[T]) Write(evt T) {
	if len(c.readers) == 0 {
		c.base++
		return
	}
	c.items = append(c.items, evt)
}

// WriteAll publishes events in order.
func (c *EventChannel[T]) WriteAll(evts []T) {
	for _, evt := range evts {
		c.Write(evt)
	}
}

// Read returns the events published since the reader's last read and
// advances it. The returned slice is owned by the caller.
func (c *EventChannel[T]) Read(r *ReaderID) []T {
	if r == nil {
		panic("ecs: read from nil event reader")
	}
	if r.channel != any(c) {
		panic("ecs: event reader belongs to another channel")
	}
	end := c.end()
	if r.pos >= end {
		return nil
	}
	out := make([]T, end-r.pos)
	copy(out, c.items[r.pos-c.base:])
	r.pos = end
	c.compact()
	return out
}

// Pending reports how many events r has not read yet.
func (c *EventChannel[T]) Pending(r *ReaderID) int {
	if r == nil {
		return 0
	}
	return int(c.end() - r.pos)
}

// Len reports how many events are retained for slower readers.
func (c *EventChannel[T]) Len() int {
	return len(c.items)
}

func (c *EventChannel[T]) end() uint64 {
	return c.base + uint64(len(c.items))
}

// compact drops events every registered reader has consumed.
func (c *EventChannel[T]) compact() {
	lowest := c.end()
	for r := range c.readers {
		if r.pos < lowest {
			lowest = r.pos
		}
	}
	drop := lowest - c.base
	if drop == 0 {
		return
	}
	var zero T
	for i := uint64(0); i < drop; i++ {
		c.items[i] = zero
	}
	c.items = c.items[drop:]
	c.base = lowest
}
