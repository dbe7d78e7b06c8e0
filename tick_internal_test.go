// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package blocksim

import "testing"

func TestTick_reentrant(t *testing.T) {
	c := New()
	c.phase = PhaseSettle
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Tick to panic while a tick is in progress")
		}
	}()
	c.Tick()
}

func TestMustPort_dangling(t *testing.T) {
	c := New()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on dangling endpoint")
		}
	}()
	c.mustPort(Pin(1, PinOut))
}
