// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiobus

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSoftwareTimerHasElapsed(t *testing.T) {
	var timer SoftwareTimer
	timer.Start()
	if timer.HasElapsed(time.Hour) {
		t.Error("HasElapsed(1h) true immediately after Start")
	}
	timer.Wait(time.Millisecond)
	if !timer.HasElapsed(time.Millisecond) {
		t.Error("HasElapsed(1ms) false after Wait(1ms)")
	}
}

type fakeContinuer struct {
	remaining int
	err       error
}

func (f *fakeContinuer) Continue() (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.remaining <= 0 {
		return true, nil
	}
	f.remaining--
	return false, nil
}

func TestRunToCompletionSucceeds(t *testing.T) {
	c := &fakeContinuer{remaining: 3}
	if err := RunToCompletion(context.Background(), c, time.Millisecond); err != nil {
		t.Fatalf("RunToCompletion() = %v, want nil", err)
	}
}

func TestRunToCompletionPropagatesError(t *testing.T) {
	want := errors.New("boom")
	c := &fakeContinuer{err: want}
	if err := RunToCompletion(context.Background(), c, time.Millisecond); !errors.Is(err, want) {
		t.Fatalf("RunToCompletion() = %v, want %v", err, want)
	}
}

func TestRunToCompletionRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &fakeContinuer{remaining: 1000}
	if err := RunToCompletion(ctx, c, time.Millisecond); !errors.Is(err, context.Canceled) {
		t.Fatalf("RunToCompletion() = %v, want context.Canceled", err)
	}
}
