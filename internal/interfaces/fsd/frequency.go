// Package fsd
package fsd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Frequency 内部统一以 Hz 表示
type Frequency int

const (
	KHz Frequency = 1000
	MHz Frequency = 1000 * KHz

	// 以下均为频率在不同报文中的整数形式所对应的合法区间(航空 VHF 波段)
	airbandLowKHz      = 118000
	airbandHighKHz     = 136999
	offsetBaseKHz      = 100000
	offsetLow          = airbandLowKHz - offsetBaseKHz
	offsetHigh         = airbandHighKHz - offsetBaseKHz
	hundredthsLow      = airbandLowKHz / 10
	hundredthsHigh     = airbandHighKHz / 10
	wholeKHzDigits     = 6
	frequencyPrecision = 3
)

const (
	UnicomFrequency = 122800 * KHz
	GuardFrequency  = 121500 * KHz
	// AtcFrequency 管制员未开频时报告的占位频率
	AtcFrequency = 199998 * KHz
)

var ErrIllegalFrequency = errors.New("illegal frequency")

func FrequencyFromKHz(khz int) Frequency {
	return Frequency(khz) * KHz
}

// FrequencyFromHundredths 兼容旧接口使用的百分之一兆赫形式, 如 12345 表示 123.45MHz
func FrequencyFromHundredths(value int) Frequency {
	return Frequency(value) * 10 * KHz
}

func FrequencyFromMHz(mhz float64) Frequency {
	return Frequency(mhz*1000+0.5) * KHz
}

// ParseFrequency 识别报文中出现的所有频率形式:
// 118.300 (MHz), 118300 (kHz), 18300 (减去 100MHz 的 kHz), 11830 (百分之一 MHz)
func ParseFrequency(value string) (Frequency, error) {
	value = strings.TrimSpace(value)
	if strings.Contains(value, ".") {
		mhz, err := strconv.ParseFloat(value, 64)
		if err != nil || mhz <= 0 {
			return 0, fmt.Errorf("%w %q", ErrIllegalFrequency, value)
		}
		return FrequencyFromMHz(mhz), nil
	}
	number, err := strconv.Atoi(value)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w %q", ErrIllegalFrequency, value)
	}
	switch {
	case len(value) >= wholeKHzDigits:
		return FrequencyFromKHz(number), nil
	case number >= offsetLow && number <= offsetHigh:
		return FrequencyFromKHz(number + offsetBaseKHz), nil
	case number >= hundredthsLow && number <= hundredthsHigh:
		return FrequencyFromHundredths(number), nil
	default:
		// 波段外的 5 位数按服务器的习惯视为偏移形式
		return FrequencyFromKHz(number + offsetBaseKHz), nil
	}
}

func (f Frequency) KHz() int {
	return int(f / KHz)
}

// OffsetKHz % 报文与 #TM @ 目标使用的形式
func (f Frequency) OffsetKHz() int {
	return f.KHz() - offsetBaseKHz
}

func (f Frequency) MHz() float64 {
	return float64(f) / float64(MHz)
}

// InAirband 是否为合法的通讯频率
func (f Frequency) InAirband() bool {
	khz := f.KHz()
	return khz >= airbandLowKHz && khz <= airbandHighKHz
}

// WireOffset 编码为 % 与 #TM 报文中的频率字段
func (f Frequency) WireOffset() string {
	return strconv.Itoa(f.OffsetKHz())
}

func (f Frequency) String() string {
	return strconv.FormatFloat(f.MHz(), 'f', frequencyPrecision, 64)
}
