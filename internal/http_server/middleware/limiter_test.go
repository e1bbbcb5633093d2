package middleware

import (
	"testing"
	"time"
)

func TestSlidingWindowLimiter(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := NewSlidingWindowLimiter(time.Minute, 2)
	limiter.clock = func() time.Time { return now }

	tests := []struct {
		advance  time.Duration
		key      string
		expected bool
	}{
		{0, "a", true},
		{time.Second, "a", true},
		{time.Second, "a", false},
		{0, "b", true},
		{58 * time.Second, "a", true},
		{0, "a", false},
		{time.Second, "a", true},
	}

	pass := 0
	fail := 0
	for i, test := range tests {
		now = now.Add(test.advance)
		if result := limiter.Allow(test.key); result != test.expected {
			fail++
			t.Errorf("step %d Allow(%s) = %v; expected %v", i, test.key, result, test.expected)
		} else {
			pass++
		}
	}
	t.Logf("TestSlidingWindowLimiter: %d pass, %d fail", pass, fail)

	now = now.Add(10 * time.Minute)
	limiter.cleanup()
	if len(limiter.requestRecords) != 0 {
		t.Errorf("cleanup left %d keys", len(limiter.requestRecords))
	}
	limiter.Stop()
	limiter.Stop()
}
