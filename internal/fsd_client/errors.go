// Package fsd_client
package fsd_client

import "errors"

var (
	// ErrInvalidObject 句柄已经被 Destroy
	ErrInvalidObject = errors.New("invalid object, client has been destroyed")
	// ErrSessionExists 重复创建会话
	ErrSessionExists = errors.New("network session already exists")
	// ErrNoSession 尚未创建会话
	ErrNoSession = errors.New("no network session")
	// ErrNotConnected 会话未处于 Connected 状态
	ErrNotConnected = errors.New("network not connected")
	// ErrReentrantCall 在回调中调用了不允许重入的生命周期函数
	ErrReentrantCall = errors.New("lifecycle call from inside a callback")
	// ErrNoLoginInfo Connect 之前没有设置登录信息
	ErrNoLoginInfo = errors.New("login info not set")
	// ErrAsyncRunning 异步模式下不允许手动调用 Tick
	ErrAsyncRunning = errors.New("asynchronous execution is running")
	// ErrInvalidState 当前状态不允许该操作
	ErrInvalidState    = errors.New("operation not allowed in current state")
	ErrInvalidCategory = errors.New("invalid callback category")
	ErrSendQueueFull   = errors.New("send queue is full")
	ErrTransportClosed = errors.New("transport closed")
	// ErrWriteBacklog 对端长时间不读取, 写缓冲已满
	ErrWriteBacklog = errors.New("transport write backlog is full")
)
