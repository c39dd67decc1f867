package compositor

import "strconv"

// ViewIdentifier names one composited view of a frame: either the root view
// or a platform view with a host-assigned identifier. Values are comparable
// and usable as map keys.
type ViewIdentifier struct {
	platformViewID int64
	isPlatformView bool
}

// RootViewIdentifier returns the identifier of the root view.
func RootViewIdentifier() ViewIdentifier {
	return ViewIdentifier{}
}

// PlatformViewIdentifier returns the identifier of platform view id.
func PlatformViewIdentifier(id int64) ViewIdentifier {
	return ViewIdentifier{platformViewID: id, isPlatformView: true}
}

// IsRoot reports whether this identifies the root view.
func (v ViewIdentifier) IsRoot() bool {
	return !v.isPlatformView
}

// PlatformViewID returns the platform view id, if any.
func (v ViewIdentifier) PlatformViewID() (int64, bool) {
	return v.platformViewID, v.isPlatformView
}

// Compare orders the root view first, then platform views by id.
func (v ViewIdentifier) Compare(other ViewIdentifier) int {
	switch {
	case v.isPlatformView != other.isPlatformView:
		if v.isPlatformView {
			return 1
		}
		return -1
	case v.platformViewID < other.platformViewID:
		return -1
	case v.platformViewID > other.platformViewID:
		return 1
	default:
		return 0
	}
}

func (v ViewIdentifier) String() string {
	if v.IsRoot() {
		return "root"
	}
	return "platform-view-" + strconv.FormatInt(v.platformViewID, 10)
}

// RenderTargetDescriptor keys render targets in the cache. Targets are
// interchangeable when their descriptors are equal. The view identifier is
// left as root unless targets are kept per view.
type RenderTargetDescriptor struct {
	View ViewIdentifier
	Size ISize
}

// DescriptorForSize returns a descriptor that matches any target of size.
func DescriptorForSize(size ISize) RenderTargetDescriptor {
	return RenderTargetDescriptor{Size: size}
}

// DescriptorForView returns a descriptor bound to one view's targets.
func DescriptorForView(view ViewIdentifier, size ISize) RenderTargetDescriptor {
	return RenderTargetDescriptor{View: view, Size: size}
}
