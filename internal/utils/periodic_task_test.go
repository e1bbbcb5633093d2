// Package utils
package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPeriodicTask(t *testing.T) {
	var runs atomic.Int32
	var errs atomic.Int32
	task := NewPeriodicTask(5*time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1)%2 == 0 {
			return errors.New("even run")
		}
		return nil
	}, func(err error) { errs.Add(1) })
	task.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	task.Stop()
	task.Stop()

	stopped := runs.Load()
	if stopped < 2 {
		t.Fatalf("PeriodicTask ran %d times; expected at least 2", stopped)
	}
	if errs.Load() == 0 {
		t.Errorf("PeriodicTask error callback never invoked")
	}
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != stopped {
		t.Errorf("PeriodicTask kept running after Stop")
	}
}

func TestPeriodicTaskStopWithoutStart(t *testing.T) {
	task := NewPeriodicTask(time.Second, func(ctx context.Context) error { return nil }, nil)
	if err := task.Invoke(context.Background()); err != nil {
		t.Errorf("Invoke on never started task returned %v", err)
	}
}
