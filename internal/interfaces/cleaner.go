// Package interfaces
package interfaces

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
)

type CleanerInterface interface {
	Init()
	Add(callable global.Callable)
	Clean()
	Done() <-chan struct{}
}
