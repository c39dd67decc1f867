// Package abi defines the structs exchanged with the host embedder: the
// backing store configuration passed to the create-render-target callback,
// the backing store descriptor it returns, and the ordered layer list handed
// to the present callback.
//
// Field order and meaning follow the host's C ABI so that a cgo shim can copy
// them without translation.
package abi

// Point is a 2D position in physical pixels.
type Point struct {
	X, Y float64
}

// Size is a width and height in physical pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RoundedRect is a rectangle with four elliptical corner radii.
type RoundedRect struct {
	Rect       Rect
	UpperLeft  Size
	UpperRight Size
	LowerRight Size
	LowerLeft  Size
}

// Transformation is a 3x3 matrix packed in row-major order.
type Transformation struct {
	ScaleX, SkewX, TransX float64
	SkewY, ScaleY, TransY float64
	Pers0, Pers1, Pers2   float64
}

// BackingStoreConfig describes the render target the engine asks the host
// to create.
type BackingStoreConfig struct {
	Size Size
	// ViewID is the host view the backing store will be presented to.
	ViewID int64
}

// BackingStoreType tags the payload of a BackingStore.
type BackingStoreType int

const (
	// BackingStoreTypeSoftware is a CPU pixel buffer.
	BackingStoreTypeSoftware BackingStoreType = iota
	// BackingStoreTypeTexture is a GPU texture owned by the host.
	BackingStoreTypeTexture
)

func (t BackingStoreType) String() string {
	switch t {
	case BackingStoreTypeSoftware:
		return "software"
	case BackingStoreTypeTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// BackingStore is the host's descriptor of a render target. The engine never
// interprets UserData and only forwards the struct back in presented layers.
type BackingStore struct {
	Type BackingStoreType
	// DidUpdate is set by the engine when the store was rendered this frame.
	DidUpdate bool
	UserData  any
}

// MutationType tags a PlatformView mutation.
type MutationType int

const (
	MutationTypeOpacity MutationType = iota
	MutationTypeClipRect
	MutationTypeClipRoundedRect
	MutationTypeTransformation
)

func (t MutationType) String() string {
	switch t {
	case MutationTypeOpacity:
		return "opacity"
	case MutationTypeClipRect:
		return "clip-rect"
	case MutationTypeClipRoundedRect:
		return "clip-rounded-rect"
	case MutationTypeTransformation:
		return "transformation"
	default:
		return "unknown"
	}
}

// Mutation is one entry of a platform view's mutation list. Only the field
// selected by Type is meaningful.
type Mutation struct {
	Type            MutationType
	Opacity         float64
	ClipRect        Rect
	ClipRoundedRect RoundedRect
	Transformation  Transformation
}

// PlatformView is a platform view layer payload. Mutations are ordered so
// that the host applies them first to last.
type PlatformView struct {
	Identifier int64
	Mutations  []Mutation
}

// Region is a list of non-overlapping rectangles.
type Region struct {
	Rects []Rect
}

// BackingStorePresentInfo carries the damaged area of a backing store layer.
type BackingStorePresentInfo struct {
	PaintRegion Region
}

// LayerContentType tags the payload of a Layer.
type LayerContentType int

const (
	LayerContentTypeBackingStore LayerContentType = iota
	LayerContentTypePlatformView
)

func (t LayerContentType) String() string {
	if t == LayerContentTypePlatformView {
		return "platform-view"
	}
	return "backing-store"
}

// Layer is one presented layer, back to front.
type Layer struct {
	Type LayerContentType
	// BackingStore is set for LayerContentTypeBackingStore.
	BackingStore *BackingStore
	// PlatformView is set for LayerContentTypePlatformView.
	PlatformView *PlatformView
	Offset       Point
	Size         Size
	// BackingStorePresentInfo is set for LayerContentTypeBackingStore.
	BackingStorePresentInfo *BackingStorePresentInfo
	// PresentationTime is the target presentation time in nanoseconds since
	// the epoch, or 0 when unknown.
	PresentationTime uint64
}

// PresentInfo is passed to the present callback.
type PresentInfo struct {
	ViewID int64
	Layers []Layer
}
