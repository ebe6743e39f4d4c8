package graph

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownImage   = errors.New("graph: unknown image")
	ErrUnknownNode    = errors.New("graph: unknown node")
	ErrFormatMismatch = errors.New("graph: attachment format mismatch")
	ErrCycle          = errors.New("graph: dependency cycle")
	ErrNoAttachments  = errors.New("graph: pass has no attachments")
	ErrEmptyImage     = errors.New("graph: image has empty extent")
	ErrNoSurface      = errors.New("graph: present node has no surface")
)

// ImageDesc describes an image the executor must provide.
type ImageDesc struct {
	ID     ImageID
	Kind   ImageKind
	Levels int
	Format Format
	Clear  ClearValue
}

// GraphBuilder accumulates images and nodes. Build validates and orders
// them; the builder can be discarded afterwards.
type GraphBuilder[C any] struct {
	images []ImageDesc
	nodes  []NodeBuilder[C]
}

func NewGraphBuilder[C any]() *GraphBuilder[C] {
	return &GraphBuilder[C]{}
}

// CreateImage declares an image. clear may be nil to keep prior contents.
func (b *GraphBuilder[C]) CreateImage(kind ImageKind, levels int, format Format, clear ClearValue) ImageID {
	id := ImageID(len(b.images))
	if levels < 1 {
		levels = 1
	}
	b.images = append(b.images, ImageDesc{ID: id, Kind: kind, Levels: levels, Format: format, Clear: clear})
	return id
}

// AddNode appends a node and returns its id. Ids follow insertion order.
func (b *GraphBuilder[C]) AddNode(node NodeBuilder[C]) NodeID {
	b.nodes = append(b.nodes, node)
	return NodeID(len(b.nodes) - 1)
}

func (b *GraphBuilder[C]) ImageCount() int {
	return len(b.images)
}

func (b *GraphBuilder[C]) NodeCount() int {
	return len(b.nodes)
}

// Image returns the description of id.
func (b *GraphBuilder[C]) Image(id ImageID) (ImageDesc, bool) {
	if id < 0 || int(id) >= len(b.images) {
		return ImageDesc{}, false
	}
	return b.images[id], true
}

// Build validates the graph, builds every render group, and returns the
// nodes in dependency order. Independent nodes keep insertion order.
func (b *GraphBuilder[C]) Build() (*Graph[C], error) {
	for _, img := range b.images {
		if img.Kind.Empty() {
			return nil, fmt.Errorf("graph: image %d: %w", img.ID, ErrEmptyImage)
		}
	}

	for i, nb := range b.nodes {
		for _, dep := range nb.Dependencies() {
			if dep < 0 || int(dep) >= len(b.nodes) {
				return nil, fmt.Errorf("graph: node %d depends on %d: %w", i, dep, ErrUnknownNode)
			}
		}
	}

	order, err := topoSort(b.nodes)
	if err != nil {
		return nil, err
	}

	built := make([]Node[C], 0, len(b.nodes))
	fail := func(err error) (*Graph[C], error) {
		for _, n := range built {
			disposeGroups(n.Groups)
		}
		return nil, err
	}

	for _, id := range order {
		node, err := b.nodes[id].build(id)
		if err != nil {
			return fail(err)
		}
		built = append(built, node)
		if err := b.validate(node); err != nil {
			return fail(err)
		}
	}

	return &Graph[C]{
		images: append([]ImageDesc(nil), b.images...),
		nodes:  built,
	}, nil
}

func (b *GraphBuilder[C]) validate(n Node[C]) error {
	switch n.Kind {
	case NodePass:
		for _, id := range n.Colors {
			img, ok := b.Image(id)
			if !ok {
				return fmt.Errorf("graph: node %d color %d: %w", n.ID, id, ErrUnknownImage)
			}
			if !img.Format.IsColor() {
				return fmt.Errorf("graph: node %d color %d is %s: %w", n.ID, id, img.Format, ErrFormatMismatch)
			}
		}
		if n.HasDepth {
			img, ok := b.Image(n.DepthStencil)
			if !ok {
				return fmt.Errorf("graph: node %d depth %d: %w", n.ID, n.DepthStencil, ErrUnknownImage)
			}
			if !img.Format.IsDepth() {
				return fmt.Errorf("graph: node %d depth %d is %s: %w", n.ID, n.DepthStencil, img.Format, ErrFormatMismatch)
			}
		}
	case NodePresent:
		img, ok := b.Image(n.Image)
		if !ok {
			return fmt.Errorf("graph: node %d present %d: %w", n.ID, n.Image, ErrUnknownImage)
		}
		if !img.Format.IsColor() {
			return fmt.Errorf("graph: node %d present %d is %s: %w", n.ID, n.Image, img.Format, ErrFormatMismatch)
		}
	}
	return nil
}

// topoSort orders nodes so dependencies come first, picking the lowest
// ready id each step.
func topoSort[C any](nodes []NodeBuilder[C]) ([]NodeID, error) {
	indegree := make([]int, len(nodes))
	dependents := make([][]NodeID, len(nodes))
	for i, nb := range nodes {
		for _, dep := range nb.Dependencies() {
			indegree[i]++
			dependents[dep] = append(dependents[dep], NodeID(i))
		}
	}

	order := make([]NodeID, 0, len(nodes))
	done := make([]bool, len(nodes))
	for len(order) < len(nodes) {
		next := NodeID(-1)
		for i := range nodes {
			if !done[i] && indegree[i] == 0 {
				next = NodeID(i)
				break
			}
		}
		if next < 0 {
			return nil, ErrCycle
		}
		done[next] = true
		order = append(order, next)
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	return order, nil
}

// Graph is a validated, ordered frame description.
type Graph[C any] struct {
	images []ImageDesc
	nodes  []Node[C]
}

func (g *Graph[C]) Images() []ImageDesc {
	return g.images
}

// Nodes returns the nodes in execution order.
func (g *Graph[C]) Nodes() []Node[C] {
	return g.nodes
}

func (g *Graph[C]) Image(id ImageID) (ImageDesc, bool) {
	if g == nil || id < 0 || int(id) >= len(g.images) {
		return ImageDesc{}, false
	}
	return g.images[id], true
}

// Dispose releases resources held by render groups.
func (g *Graph[C]) Dispose() {
	if g == nil {
		return
	}
	for _, n := range g.nodes {
		disposeGroups(n.Groups)
	}
	g.nodes = nil
}
