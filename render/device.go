// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider. Providers that
// also implement HalDevice() any and HalQueue() any, returning hal.Device
// and hal.Queue, can back a HALContext.
type DeviceHandle = gpucontext.DeviceProvider

// ErrNoHALAccess is returned when a device provider does not expose HAL
// types.
var ErrNoHALAccess = errors.New("render: provider does not expose hal.Device and hal.Queue")

type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halFromProvider extracts the HAL device and queue from a host provider.
func halFromProvider(provider DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, ErrNoHALAccess
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, ErrNoHALAccess
	}
	return device, queue, nil
}
