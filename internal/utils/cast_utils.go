// Package utils
package utils

import (
	"strconv"
	"strings"
)

func StrToInt(str string, defaultValue int) int {
	result, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return defaultValue
	}
	return result
}

// FloatToStr 以固定小数位输出, 经纬度统一使用 6 位
func FloatToStr(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}
