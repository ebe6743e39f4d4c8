package graph

import "fmt"

type (
	ImageID int
	NodeID  int
)

// RenderGroup draws into the attachments of the pass it belongs to. C is the
// executor's per-pass draw context.
type RenderGroup[C any] interface {
	Draw(ctx C)
}

// RenderGroupDesc builds a RenderGroup when the graph is built.
type RenderGroupDesc[C any] interface {
	Build() (RenderGroup[C], error)
}

// Disposer is implemented by groups that hold backend resources.
type Disposer interface {
	Dispose()
}

type NodeKind int

const (
	NodePass NodeKind = iota + 1
	NodePresent
)

func (k NodeKind) String() string {
	switch k {
	case NodePass:
		return "pass"
	case NodePresent:
		return "present"
	}
	return fmt.Sprintf("node_kind(%d)", int(k))
}

// Node is one built step of a Graph.
type Node[C any] struct {
	ID           NodeID
	Kind         NodeKind
	Groups       []RenderGroup[C]
	Colors       []ImageID
	DepthStencil ImageID
	HasDepth     bool
	Surface      Surface
	Image        ImageID
	Dependencies []NodeID
}

// NodeBuilder is accepted by GraphBuilder.AddNode.
type NodeBuilder[C any] interface {
	Dependencies() []NodeID
	build(id NodeID) (Node[C], error)
}

// SubpassBuilder collects draw groups and attachments for one subpass.
type SubpassBuilder[C any] struct {
	groups []RenderGroupDesc[C]
	colors []ImageID
	depth  ImageID
	hasDep bool
}

func NewSubpassBuilder[C any]() *SubpassBuilder[C] {
	return &SubpassBuilder[C]{}
}

// WithGroup appends a group. Groups draw in the order they were added.
func (b *SubpassBuilder[C]) WithGroup(desc RenderGroupDesc[C]) *SubpassBuilder[C] {
	b.groups = append(b.groups, desc)
	return b
}

func (b *SubpassBuilder[C]) WithColor(image ImageID) *SubpassBuilder[C] {
	b.colors = append(b.colors, image)
	return b
}

func (b *SubpassBuilder[C]) WithDepthStencil(image ImageID) *SubpassBuilder[C] {
	b.depth = image
	b.hasDep = true
	return b
}

// IntoPass wraps the subpass in a single-subpass pass node.
func (b *SubpassBuilder[C]) IntoPass() *PassBuilder[C] {
	return &PassBuilder[C]{subpass: b}
}

type PassBuilder[C any] struct {
	subpass *SubpassBuilder[C]
	deps    []NodeID
}

func (b *PassBuilder[C]) WithDependency(id NodeID) *PassBuilder[C] {
	b.deps = append(b.deps, id)
	return b
}

func (b *PassBuilder[C]) Dependencies() []NodeID {
	return b.deps
}

func (b *PassBuilder[C]) build(id NodeID) (Node[C], error) {
	sp := b.subpass
	if len(sp.colors) == 0 && !sp.hasDep {
		return Node[C]{}, fmt.Errorf("graph: node %d: %w", id, ErrNoAttachments)
	}

	groups := make([]RenderGroup[C], 0, len(sp.groups))
	for i, desc := range sp.groups {
		group, err := desc.Build()
		if err != nil {
			disposeGroups(groups)
			return Node[C]{}, fmt.Errorf("graph: node %d: build group %d: %w", id, i, err)
		}
		groups = append(groups, group)
	}

	return Node[C]{
		ID:           id,
		Kind:         NodePass,
		Groups:       groups,
		Colors:       append([]ImageID(nil), sp.colors...),
		DepthStencil: sp.depth,
		HasDepth:     sp.hasDep,
		Dependencies: append([]NodeID(nil), b.deps...),
	}, nil
}

// PresentNodeBuilder copies an image onto a surface.
type PresentNodeBuilder[C any] struct {
	surface Surface
	image   ImageID
	deps    []NodeID
}

func PresentBuilder[C any](surface Surface, image ImageID) *PresentNodeBuilder[C] {
	return &PresentNodeBuilder[C]{surface: surface, image: image}
}

func (b *PresentNodeBuilder[C]) WithDependency(id NodeID) *PresentNodeBuilder[C] {
	b.deps = append(b.deps, id)
	return b
}

func (b *PresentNodeBuilder[C]) Dependencies() []NodeID {
	return b.deps
}

func (b *PresentNodeBuilder[C]) build(id NodeID) (Node[C], error) {
	if b.surface == nil {
		return Node[C]{}, fmt.Errorf("graph: node %d: %w", id, ErrNoSurface)
	}
	return Node[C]{
		ID:           id,
		Kind:         NodePresent,
		Surface:      b.surface,
		Image:        b.image,
		Dependencies: append([]NodeID(nil), b.deps...),
	}, nil
}

func disposeGroups[C any](groups []RenderGroup[C]) {
	for _, g := range groups {
		if d, ok := g.(Disposer); ok {
			d.Dispose()
		}
	}
}
