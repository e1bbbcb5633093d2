// Package fsd
package fsd

type Enum interface {
	String() string
	Index() int
}
