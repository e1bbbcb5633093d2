// Package utils
package utils

import "math"

// PBH 的三个角度各占 10 位, 每一位代表 360/1024 度
//
//	31        22 21        12 11         2   1      0
//	[  pitch   ] [   bank   ] [ heading  ] [gnd] [unused]
const (
	pbhFieldBits = 10
	pbhFieldMask = 1<<pbhFieldBits - 1
	// PBHQuantum 一个量化步长(度)
	PBHQuantum = 360.0 / (1 << pbhFieldBits)

	pitchShift   = 22
	bankShift    = 12
	headingShift = 2
	onGroundBit  = 0b10
)

// normalizeSigned 把角度折算到 (-180, 180]
// 俯仰和坡度在报文中取反存储, 有符号 10 位能表示的范围正好是 (-180, 180]
func normalizeSigned(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	angle = math.Mod(angle, 360)
	if angle <= -180 {
		angle += 360
	} else if angle > 180 {
		angle -= 360
	}
	return angle
}

// normalizeHeading 把航向折算到 [0, 360)
func normalizeHeading(heading float64) float64 {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return 0
	}
	heading = math.Mod(heading, 360)
	if heading < 0 {
		heading += 360
	}
	return heading
}

func packSigned(angle float64) uint32 {
	raw := int(math.Round(-angle / PBHQuantum))
	return uint32(raw) & pbhFieldMask
}

func unpackSigned(bits uint32) float64 {
	// 先移到最高位再算术右移完成符号扩展
	raw := int32(bits<<(32-pbhFieldBits)) >> (32 - pbhFieldBits)
	return -float64(raw) * PBHQuantum
}

// PackPBH 将俯仰, 坡度, 航向(度)与是否在地面打包为 FSD 位置报文中的 PBH 字段
// 超出范围的角度会先被折算到合法区间
func PackPBH(pitch, bank, heading float64, onGround bool) uint32 {
	pbh := uint32(0)

	if onGround {
		pbh |= onGroundBit
	}

	hdgVal := uint32(math.Round(normalizeHeading(heading)/PBHQuantum)) & pbhFieldMask
	pbh |= hdgVal << headingShift
	pbh |= packSigned(normalizeSigned(bank)) << bankShift
	pbh |= packSigned(normalizeSigned(pitch)) << pitchShift

	return pbh
}

// UnpackPBH 是 PackPBH 的逆运算, 精度受限于 PBHQuantum
func UnpackPBH(pbh uint32) (pitch, bank, heading float64, onGround bool) {
	onGround = pbh&onGroundBit != 0
	heading = float64((pbh>>headingShift)&pbhFieldMask) * PBHQuantum
	bank = unpackSigned((pbh >> bankShift) & pbhFieldMask)
	pitch = unpackSigned((pbh >> pitchShift) & pbhFieldMask)
	return
}
