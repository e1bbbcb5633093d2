// Package fsd
package fsd

import (
	"errors"
	"testing"
)

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		input    string
		expected Frequency
		err      error
	}{
		{"118.300", 118300 * KHz, nil},
		{"118.3", 118300 * KHz, nil},
		{"118300", 118300 * KHz, nil},
		{"18300", 118300 * KHz, nil},
		{"11830", 118300 * KHz, nil},
		{"36975", 136975 * KHz, nil},
		{"13697", 136970 * KHz, nil},
		{"99998", 199998 * KHz, nil},
		{" 22800 ", UnicomFrequency, nil},
		{"", 0, ErrIllegalFrequency},
		{"abc", 0, ErrIllegalFrequency},
		{"-1", 0, ErrIllegalFrequency},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		result, err := ParseFrequency(test.input)
		if test.err != nil {
			if !errors.Is(err, test.err) {
				fail++
				t.Errorf("ParseFrequency(%q) error = %v; expected %v", test.input, err, test.err)
				continue
			}
			pass++
			continue
		}
		if err != nil || result != test.expected {
			fail++
			t.Errorf("ParseFrequency(%q) = %d, %v; expected %d", test.input, result, err, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestParseFrequency: %d pass, %d fail", pass, fail)
}

func TestFrequencyForms(t *testing.T) {
	tests := []struct {
		frequency Frequency
		offset    string
		khz       int
		text      string
		airband   bool
	}{
		{FrequencyFromKHz(118300), "18300", 118300, "118.300", true},
		{FrequencyFromHundredths(12280), "22800", 122800, "122.800", true},
		{FrequencyFromMHz(121.5), "21500", 121500, "121.500", true},
		{AtcFrequency, "99998", 199998, "199.998", false},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		if test.frequency.WireOffset() != test.offset || test.frequency.KHz() != test.khz ||
			test.frequency.String() != test.text || test.frequency.InAirband() != test.airband {
			fail++
			t.Errorf("Frequency %d = (%s, %d, %s, %v); expected (%s, %d, %s, %v)", test.frequency,
				test.frequency.WireOffset(), test.frequency.KHz(), test.frequency.String(), test.frequency.InAirband(),
				test.offset, test.khz, test.text, test.airband)
			continue
		}
		pass++
	}
	t.Logf("TestFrequencyForms: %d pass, %d fail", pass, fail)
}
