// Package fsd_client
package fsd_client

import (
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
)

// Handler 回调函数, 在 Tick 所在的协程中同步执行, 不应阻塞
// client 只在回调返回之前有效, 回调中的生命周期调用必须通过它发起
type Handler func(client *Client, event Event)

// Handle 将只关心某一种事件的函数转换为 Handler
func Handle[T Event](callback func(client *Client, event T)) Handler {
	return func(client *Client, event Event) {
		if value, ok := event.(T); ok {
			callback(client, value)
		}
	}
}

type handlerTable [fsd.CategoryCount]Handler

// Install 为分类设置回调, 已有回调会被替换, handler 为 nil 时移除
func (c *Client) Install(category fsd.Category, handler Handler) error {
	if !category.Valid() {
		return fmt.Errorf("%w %d", ErrInvalidCategory, category)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return ErrInvalidObject
	}
	c.handlers[category] = handler
	return nil
}

func (c *Client) handler(category fsd.Category) Handler {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || !category.Valid() {
		return nil
	}
	return c.handlers[category]
}

// dispatch 依次分发事件, 返回 false 表示批次被 Destroy 中止
func (c *Client) dispatch(events []Event) bool {
	for _, event := range events {
		if c.batchStopped() {
			return false
		}
		handler := c.handler(event.Category())
		if handler == nil {
			continue
		}
		c.invoke(handler, event)
	}
	return !c.batchStopped()
}

func (c *Client) invoke(handler Handler, event Event) {
	defer func() {
		if err := recover(); err != nil {
			if c.strict {
				panic(err)
			}
			c.logger.ErrorF("[%s](%s) Callback %s panicked: %v", c.SessionId(), c.Callsign(), event.Category(), err)
		}
	}()
	handler(&Client{clientCore: c.clientCore, callback: true}, event)
}

func (c *Client) batchStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed || c.deferred.destroy || c.deferred.destroySession
}
