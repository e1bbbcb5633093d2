// Package utils
package utils

import (
	"sync"
)

// OverflowTrigger 每计数 targetValue 次触发一次回调
// 飞行员位置上报用它决定哪一次发送完整位置, 其余发送临时位置
type OverflowTrigger struct {
	mu          sync.Mutex
	count       int
	targetValue int
	callback    func()
}

func NewOverflowTrigger(targetValue int, callback func()) *OverflowTrigger {
	return &OverflowTrigger{
		mu:          sync.Mutex{},
		count:       0,
		targetValue: targetValue,
		callback:    callback,
	}
}

// Tick 计数一次, 返回本次是否触发
func (trigger *OverflowTrigger) Tick() bool {
	if trigger.targetValue <= 0 {
		return false
	}
	trigger.mu.Lock()
	trigger.count++
	fired := trigger.count >= trigger.targetValue
	if fired {
		trigger.count = 0
	}
	trigger.mu.Unlock()
	if fired && trigger.callback != nil {
		trigger.callback()
	}
	return fired
}

func (trigger *OverflowTrigger) Reset() {
	trigger.mu.Lock()
	defer trigger.mu.Unlock()
	trigger.count = 0
}
