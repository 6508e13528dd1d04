// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/forge/gpu"
)

// Driver names.
const (
	// DriverWGPU is the wgpu hal driver (Vulkan).
	DriverWGPU = "wgpu"
)

// ErrNoDriver is returned when no usable driver is registered.
var ErrNoDriver = errors.New("backend: no driver available")

// Driver opens devices and creates surfaces for one GPU API.
type Driver interface {
	// Name returns the registry name of the driver.
	Name() string

	// Available reports whether the driver can run on this machine
	// without opening a device.
	Available() bool

	// Open opens the best adapter the driver can find.
	Open() (gpu.Device, error)

	// CreateSurface creates a surface on an open device.
	CreateSurface(device gpu.Device, config *gpu.SurfaceConfig) (gpu.Surface, error)
}

// Factory creates a driver instance.
type Factory func() Driver

var (
	registryMu sync.RWMutex
	drivers    = make(map[string]Factory)

	// First available wins.
	driverPriority = []string{DriverWGPU}
)

// Register registers a driver factory under name, replacing any previous
// registration. Driver packages call this from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	drivers[name] = factory
}

// Unregister removes a driver from the registry. Useful for tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(drivers, name)
}

// Registered returns the names of all registered drivers.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a driver is registered under name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := drivers[name]
	return ok
}

// Get returns a driver instance by name, or nil if not registered.
func Get(name string) Driver {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := drivers[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available driver: the first of the priority
// list that reports Available, then any other available driver.
func Default() (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range driverPriority {
		if factory, ok := drivers[name]; ok {
			if d := factory(); d != nil && d.Available() {
				return d, nil
			}
		}
	}
	for _, factory := range drivers {
		if d := factory(); d != nil && d.Available() {
			return d, nil
		}
	}
	return nil, ErrNoDriver
}

// MustDefault returns the default driver or panics.
func MustDefault() Driver {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}
