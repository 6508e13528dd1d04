// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"testing"

	"github.com/gogpu/forge/gpu"
)

type fakeDriver struct {
	name      string
	available bool
}

func (d *fakeDriver) Name() string    { return d.name }
func (d *fakeDriver) Available() bool { return d.available }
func (d *fakeDriver) Open() (gpu.Device, error) {
	return nil, nil
}
func (d *fakeDriver) CreateSurface(gpu.Device, *gpu.SurfaceConfig) (gpu.Surface, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register("test", func() Driver { return &fakeDriver{name: "test", available: true} })
	defer Unregister("test")

	if !IsRegistered("test") {
		t.Error("driver not registered")
	}
	d := Get("test")
	if d == nil || d.Name() != "test" {
		t.Errorf("Get = %v", d)
	}
	if Get("missing") != nil {
		t.Error("Get on missing name returned a driver")
	}

	found := false
	for _, name := range Registered() {
		if name == "test" {
			found = true
		}
	}
	if !found {
		t.Error("Registered does not list the driver")
	}
}

func TestDefault_SkipsUnavailable(t *testing.T) {
	Register("down", func() Driver { return &fakeDriver{name: "down"} })
	Register("up", func() Driver { return &fakeDriver{name: "up", available: true} })
	defer Unregister("down")
	defer Unregister("up")

	d, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if d.Name() != "up" {
		t.Errorf("Default = %q, want up", d.Name())
	}
}

func TestDefault_NoDrivers(t *testing.T) {
	// The registry may hold real drivers from init; register nothing extra
	// and unregister anything this test owns. Only assert the error shape
	// when the registry is empty of available drivers.
	Register("dead", func() Driver { return &fakeDriver{name: "dead"} })
	defer Unregister("dead")

	if _, err := Default(); err != nil && err != ErrNoDriver {
		t.Errorf("Default error = %v, want ErrNoDriver", err)
	}
}
