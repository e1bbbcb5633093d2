// Package utils
package utils

import (
	"math"
	"testing"
)

func IsEqual(f1, f2 float64) bool {
	return math.Abs(f1-f2) < 0.000001
}

// angleDifference 两个角度之间最小的差值(度), 结果在 [0, 180]
func angleDifference(a, b float64) float64 {
	diff := math.Abs(math.Mod(a-b, 360))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

func TestAngleDifference(t *testing.T) {
	tests := []struct {
		a, b     float64
		expected float64
	}{
		{10, 20, 10},
		{359, 1, 2},
		{-180, 180, 0},
		{90, -90, 180},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		if diff := angleDifference(test.a, test.b); !IsEqual(diff, test.expected) {
			fail++
			t.Errorf("angleDifference(%f, %f) = %f; expected %f", test.a, test.b, diff, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestAngleDifference: %d pass, %d fail", pass, fail)
}

func TestPackPBH(t *testing.T) {
	tests := []struct {
		pitch    float64
		bank     float64
		heading  float64
		onGround bool
		expected uint32
	}{
		{0.35156250, 0.35156250, 352.26562500, true, 4294967210},
		{0.35156250, 0, 172.26562500, true, 4290774954},
		{20.03906250, 0, 176.13281250, false, 4055893972},
		{55.19531250, 116.36718750, 298.47656250, false, 3639303492},
		{0, 0, 0, false, 0},
		// 超出范围的航向先折算
		{0, 0, 360 + 172.26562500, false, 4290774954 - (1023 << 22) - 0b10},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		pbh := PackPBH(test.pitch, test.bank, test.heading, test.onGround)
		if pbh != test.expected {
			fail++
			t.Errorf("PackPBH(%f, %f, %f, %v) = %d; expected %d", test.pitch, test.bank, test.heading, test.onGround, pbh, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestPackPBH: %d pass, %d fail", pass, fail)
}

func TestUnpackPBH(t *testing.T) {
	tests := []struct {
		input    uint32
		pitch    float64
		bank     float64
		heading  float64
		onGround bool
	}{
		{4294967210, 0.35156250, 0.35156250, 352.26562500, true},
		{4290774954, 0.35156250, 0, 172.26562500, true},
		{4055893972, 20.03906250, 0, 176.13281250, false},
		{3639303492, 55.19531250, 116.36718750, 298.47656250, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		pitch, bank, heading, onGround := UnpackPBH(test.input)
		if !IsEqual(pitch, test.pitch) || !IsEqual(bank, test.bank) || !IsEqual(heading, test.heading) || onGround != test.onGround {
			fail++
			t.Errorf("UnpackPBH(%d) = %.8f, %.8f, %.8f, %v; expected %.8f, %.8f, %.8f, %v", test.input, pitch, bank, heading, onGround, test.pitch, test.bank, test.heading, test.onGround)
			continue
		}
		pass++
	}
	t.Logf("TestUnpackPBH: %d pass, %d fail", pass, fail)
}

func TestPBHRoundTrip(t *testing.T) {
	pass := 0
	fail := 0
	check := func(pitch, bank, heading float64) {
		p, b, h, _ := UnpackPBH(PackPBH(pitch, bank, heading, false))
		if angleDifference(p, pitch) >= PBHQuantum ||
			angleDifference(b, bank) >= PBHQuantum ||
			angleDifference(h, heading) >= PBHQuantum {
			fail++
			t.Errorf("round trip (%f, %f, %f) -> (%f, %f, %f)", pitch, bank, heading, p, b, h)
			return
		}
		pass++
	}
	for pitch := -180.0; pitch <= 180.0; pitch += 7.3 {
		for bank := -180.0; bank <= 180.0; bank += 11.1 {
			for heading := 0.0; heading < 360.0; heading += 13.7 {
				check(pitch, bank, heading)
			}
		}
	}
	// 边界值
	check(-180, 180, 359.99)
	check(180, -180, 0)
	check(179.9, -179.9, 359.9)
	t.Logf("TestPBHRoundTrip: %d pass, %d fail", pass, fail)
}
