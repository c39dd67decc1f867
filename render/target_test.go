// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/surface"
)

func TestNewSurfaceRenderTarget(t *testing.T) {
	if _, err := NewSurfaceRenderTarget(nil, abi.BackingStore{}); !errors.Is(err, ErrNilSurface) {
		t.Errorf("NewSurfaceRenderTarget(nil) error = %v, want ErrNilSurface", err)
	}

	s := surface.NewImageSurface(30, 20)
	target, err := NewSurfaceRenderTarget(s, abi.BackingStore{Type: abi.BackingStoreTypeTexture, UserData: "host"})
	if err != nil {
		t.Fatalf("NewSurfaceRenderTarget() error = %v", err)
	}
	if got := target.Size(); got != (compositor.ISize{Width: 30, Height: 20}) {
		t.Errorf("Size() = %v, want 30x20", got)
	}
	if target.Surface() != s {
		t.Error("Surface() does not return the wrapped surface")
	}
	if target.Texture() != nil {
		t.Error("Texture() != nil for a surface target")
	}
	store := target.BackingStore()
	if store.Type != abi.BackingStoreTypeSoftware {
		t.Errorf("store type = %v, want software", store.Type)
	}
	if store.UserData != "host" {
		t.Errorf("store user data = %v, want host", store.UserData)
	}
}

func TestNewSoftwareRenderTargetEmptySize(t *testing.T) {
	if _, err := NewSoftwareRenderTarget(compositor.ISize{Width: 0, Height: 5}, abi.BackingStore{}); !errors.Is(err, ErrEmptySize) {
		t.Errorf("error = %v, want ErrEmptySize", err)
	}
}

func TestRenderTargetReleaseOnce(t *testing.T) {
	released := 0
	target, err := NewSoftwareRenderTarget(compositor.ISize{Width: 4, Height: 4}, abi.BackingStore{},
		WithReleaseCallback(func() { released++ }))
	if err != nil {
		t.Fatalf("NewSoftwareRenderTarget() error = %v", err)
	}

	if err := target.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := target.Close(); !errors.Is(err, ErrReleased) {
		t.Errorf("second Close() error = %v, want ErrReleased", err)
	}
	if released != 1 {
		t.Errorf("release callback ran %d times, want 1", released)
	}
	if !target.Surface().Closed() {
		t.Error("surface not closed")
	}
	if got := target.MakeCurrent(); got.OK {
		t.Error("MakeCurrent() succeeded on a released target")
	}
}

func TestRenderTargetCurrentHooks(t *testing.T) {
	var calls []string
	target, err := NewSoftwareRenderTarget(compositor.ISize{Width: 2, Height: 2}, abi.BackingStore{},
		WithMakeCurrent(func() SetCurrentResult {
			calls = append(calls, "make")
			return SetCurrentResult{OK: true, InvalidatesAPIState: true}
		}),
		WithClearCurrent(func() SetCurrentResult {
			calls = append(calls, "clear")
			return SetCurrentResult{OK: true}
		}),
	)
	if err != nil {
		t.Fatalf("NewSoftwareRenderTarget() error = %v", err)
	}

	if got := target.MakeCurrent(); !got.OK || !got.InvalidatesAPIState {
		t.Errorf("MakeCurrent() = %+v", got)
	}
	if got := target.ClearCurrent(); !got.OK || got.InvalidatesAPIState {
		t.Errorf("ClearCurrent() = %+v", got)
	}
	if len(calls) != 2 || calls[0] != "make" || calls[1] != "clear" {
		t.Errorf("calls = %v, want [make clear]", calls)
	}
}

func TestRenderTargetDefaultHooks(t *testing.T) {
	target, err := NewSoftwareRenderTarget(compositor.ISize{Width: 2, Height: 2}, abi.BackingStore{})
	if err != nil {
		t.Fatalf("NewSoftwareRenderTarget() error = %v", err)
	}
	want := SetCurrentResult{OK: true}
	if got := target.MakeCurrent(); got != want {
		t.Errorf("MakeCurrent() = %+v, want %+v", got, want)
	}
	if got := target.ClearCurrent(); got != want {
		t.Errorf("ClearCurrent() = %+v, want %+v", got, want)
	}
}
