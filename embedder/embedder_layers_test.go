package embedder

import (
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/mutators"
)

func mutationTypes(ms []abi.Mutation) []abi.MutationType {
	var out []abi.MutationType
	for _, m := range ms {
		out = append(out, m.Type)
	}
	return out
}

func TestPlatformViewMutations(t *testing.T) {
	clip := ltwh(1, 2, 3, 4)
	stack := mutators.NewStack()
	stack.PushClipRect(clip)
	stack.PushTransform(compositor.Scale(2, 2))
	stack.PushTransform(compositor.Identity())
	stack.PushOpacity(255)
	stack.PushOpacity(51)
	stack.PushClipRRect(compositor.RRectFromRectXY(clip, 1, 2))
	stack.PushClipPath(compositor.NewPath())
	stack.PushBackdropFilter(clip)
	params := mutators.NewEmbeddedViewParams(compositor.Identity(), compositor.Size{Width: 10, Height: 10}, stack)

	tests := []struct {
		name string
		root compositor.Matrix
		want []abi.MutationType
	}{
		{"identity root", compositor.Identity(), []abi.MutationType{
			abi.MutationTypeClipRect,
			abi.MutationTypeTransformation,
			abi.MutationTypeOpacity,
			abi.MutationTypeClipRoundedRect,
		}},
		{"scaled root", compositor.Scale(3, 3), []abi.MutationType{
			abi.MutationTypeTransformation,
			abi.MutationTypeClipRect,
			abi.MutationTypeTransformation,
			abi.MutationTypeOpacity,
			abi.MutationTypeClipRoundedRect,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEmbedderLayers(compositor.ISize{Width: 100, Height: 100}, 1, tt.root, 0)
			e.PushPlatformViewLayer(7, params)
			layer := e.Layers()[0]
			if layer.Type != abi.LayerContentTypePlatformView || layer.PlatformView.Identifier != 7 {
				t.Fatalf("layer = %+v, want platform view 7", layer)
			}
			got := layer.PlatformView.Mutations
			if types := mutationTypes(got); len(types) != len(tt.want) {
				t.Fatalf("mutation types = %v, want %v", types, tt.want)
			}
			for i, want := range tt.want {
				if got[i].Type != want {
					t.Errorf("mutation %d = %v, want %v", i, got[i].Type, want)
				}
			}
			last := got[len(got)-1]
			if last.ClipRoundedRect.UpperLeft != (abi.Size{Width: 1, Height: 2}) {
				t.Errorf("rounded clip radius = %+v, want 1x2", last.ClipRoundedRect.UpperLeft)
			}
			opacity := got[len(got)-2]
			if opacity.Opacity != 0.2 {
				t.Errorf("opacity = %v, want 0.2", opacity.Opacity)
			}
		})
	}
}

func TestPlatformViewWithoutMutationsIgnoresRootTransform(t *testing.T) {
	e := NewEmbedderLayers(compositor.ISize{Width: 100, Height: 100}, 1, compositor.Scale(2, 2), 0)
	e.PushPlatformViewLayer(1, platformParams(ltwh(10, 20, 30, 40), nil))

	layer := e.Layers()[0]
	if n := len(layer.PlatformView.Mutations); n != 0 {
		t.Errorf("len(Mutations) = %d, want 0", n)
	}
	if layer.Offset != (abi.Point{X: 20, Y: 40}) {
		t.Errorf("Offset = %+v, want (20, 40)", layer.Offset)
	}
	if layer.Size != (abi.Size{Width: 60, Height: 80}) {
		t.Errorf("Size = %+v, want 60x80", layer.Size)
	}
}

func TestBackingStoreLayer(t *testing.T) {
	store := &abi.BackingStore{UserData: "store"}
	e := NewEmbedderLayers(compositor.ISize{Width: 100, Height: 50}, 2, compositor.Scale(2, 2), 777)
	e.PushBackingStoreLayer(store, []compositor.IRect{{Left: 10, Top: 10, Right: 20, Bottom: 20}})

	layer := e.Layers()[0]
	if layer.Type != abi.LayerContentTypeBackingStore || layer.BackingStore != store {
		t.Fatalf("layer = %+v, want the backing store", layer)
	}
	if layer.Offset != (abi.Point{}) || layer.Size != (abi.Size{Width: 200, Height: 100}) {
		t.Errorf("Offset/Size = %+v/%+v, want origin/200x100", layer.Offset, layer.Size)
	}
	rects := layer.BackingStorePresentInfo.PaintRegion.Rects
	want := abi.Rect{Left: 20, Top: 20, Right: 40, Bottom: 40}
	if len(rects) != 1 || rects[0] != want {
		t.Errorf("paint rects = %v, want [%v]", rects, want)
	}
	if layer.PresentationTime != 777 {
		t.Errorf("PresentationTime = %d, want 777", layer.PresentationTime)
	}
	if e.DevicePixelRatio() != 2 {
		t.Errorf("DevicePixelRatio() = %v, want 2", e.DevicePixelRatio())
	}
}

func TestInvokePresentCallback(t *testing.T) {
	e := NewEmbedderLayers(compositor.ISize{Width: 10, Height: 10}, 1, compositor.Identity(), 0)
	e.PushBackingStoreLayer(&abi.BackingStore{}, nil)

	var got abi.PresentInfo
	ok := e.InvokePresentCallback(3, func(info abi.PresentInfo) bool {
		got = info
		return true
	})
	if !ok {
		t.Error("InvokePresentCallback() = false, want true")
	}
	if got.ViewID != 3 || len(got.Layers) != 1 {
		t.Errorf("present info = %+v, want view 3 with one layer", got)
	}
}
