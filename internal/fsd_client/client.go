// Package fsd_client
package fsd_client

import (
	"context"
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/thanhpk/randstr"
	"net"
	"strconv"
	"sync"
	"time"
)

type Options struct {
	Logger              log.LoggerInterface
	Dialer              DialFunc
	Recorder            fsd.TrafficRecorder
	Authenticator       AuthenticatorFactory
	Clock               func() time.Time
	Strict              bool // 在回调中调用 Connect 等函数时直接 panic
	ConnectTimeout      time.Duration
	SendQueueSize       int
	ReceiveQueueSize    int
	ReceiveBatchSize    int // 每次 Tick 最多处理的行数
	RemoteCapsCacheSize int
}

func DefaultOptions(logger log.LoggerInterface) *Options {
	return &Options{
		Logger:              logger,
		Dialer:              nil,
		Recorder:            nil,
		Authenticator:       NewBlake2bAuthenticator,
		Clock:               time.Now,
		Strict:              false,
		ConnectTimeout:      10 * time.Second,
		SendQueueSize:       256,
		ReceiveQueueSize:    1024,
		ReceiveBatchSize:    128,
		RemoteCapsCacheSize: 512,
	}
}

func OptionsFromConfig(logger log.LoggerInterface, config *config.NetworkConfig) *Options {
	options := DefaultOptions(logger)
	options.ConnectTimeout = config.ConnectDuration
	options.SendQueueSize = config.SendQueueSize
	options.ReceiveQueueSize = config.ReceiveQueueSize
	options.ReceiveBatchSize = config.ReceiveBatchSize
	options.RemoteCapsCacheSize = config.RemoteCapsCacheSize
	return options
}

type dialResult struct {
	transport Transport
	err       error
}

// session 一次 CreateSession 到 DestroySession 之间的全部状态
type session struct {
	id             string
	info           fsd.SessionInfo
	login          *fsd.LoginInfo
	authenticator  Authenticator
	sysUid         string
	challenge      string
	dialCancel     context.CancelFunc
	dialResult     chan dialResult
	transport      Transport
	sendQueue      [][]byte
	loggedOn       bool
	logoffDeadline time.Time
	logoffForever  bool
	networkErr     error
	remoteCaps     *lru.Cache[string, fsd.CapabilityFlags]
	atis           map[string]*fsd.ControllerAtis
	pings          map[string]time.Time
}

func (s *session) callsign() string {
	if s == nil {
		return ""
	}
	return s.login.Callsign()
}

type deferredRequests struct {
	destroy        bool
	destroySession bool
	disconnect     bool
	timeout        time.Duration
}

type clientCore struct {
	mu        sync.Mutex
	idle      *sync.Cond
	logger    log.LoggerInterface
	options   Options
	strict    bool
	status    fsd.ConnectionStatus
	session   *session
	handlers  handlerTable
	pending   []Event
	ticking   bool
	deferred  deferredRequests
	destroyed bool
	async     *asyncWorker
	wake      chan struct{}
}

// Client 会话句柄, 同一时间最多持有一个会话, 回调只会在 Tick 中被调用
// 回调收到的 Client 与句柄共享状态, 在回调中调用生命周期函数必须使用该参数
// 其他协程中的生命周期调用会等待正在执行的 Tick 结束
type Client struct {
	*clientCore
	// callback 为 true 表示该句柄交给了回调
	callback bool
}

func NewClient(options *Options) *Client {
	opts := *DefaultOptions(options.Logger)
	if options.Dialer != nil {
		opts.Dialer = options.Dialer
	}
	if options.Recorder != nil {
		opts.Recorder = options.Recorder
	}
	if options.Authenticator != nil {
		opts.Authenticator = options.Authenticator
	}
	if options.Clock != nil {
		opts.Clock = options.Clock
	}
	opts.Strict = options.Strict
	if options.ConnectTimeout > 0 {
		opts.ConnectTimeout = options.ConnectTimeout
	}
	if options.SendQueueSize > 0 {
		opts.SendQueueSize = options.SendQueueSize
	}
	if options.ReceiveQueueSize > 0 {
		opts.ReceiveQueueSize = options.ReceiveQueueSize
	}
	if options.ReceiveBatchSize > 0 {
		opts.ReceiveBatchSize = options.ReceiveBatchSize
	}
	if options.RemoteCapsCacheSize > 0 {
		opts.RemoteCapsCacheSize = options.RemoteCapsCacheSize
	}
	if opts.Dialer == nil {
		opts.Dialer = DialTCP(opts.ConnectTimeout)
	}
	core := &clientCore{
		logger:  opts.Logger,
		options: opts,
		strict:  opts.Strict,
		status:  fsd.Idle,
		wake:    make(chan struct{}, 1),
	}
	core.idle = sync.NewCond(&core.mu)
	return &Client{clientCore: core}
}

// waitIdleLocked 等待其他协程中的 Tick 结束, 调用方需要持有锁
// 回调中直接返回, 由调用方按重入或延迟处理
func (c *Client) waitIdleLocked() {
	if c.callback {
		return
	}
	for c.ticking {
		c.idle.Wait()
	}
}

// reentrant 在回调中调用了不可重入的函数, 调用方需要持有锁
func (c *Client) reentrant(operation string) error {
	c.logger.ErrorF("[%s](%s) %s called from inside a callback", c.sessionIdLocked(), c.session.callsign(), operation)
	if c.strict {
		panic(fmt.Errorf("%w: %s", ErrReentrantCall, operation))
	}
	return ErrReentrantCall
}

// CreateSession 创建会话, 进入 SessionCreated
func (c *Client) CreateSession(info fsd.SessionInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitIdleLocked()
	switch {
	case c.destroyed:
		return ErrInvalidObject
	case c.callback:
		return c.reentrant("CreateSession")
	case c.session != nil:
		return ErrSessionExists
	}

	remoteCaps, err := lru.New[string, fsd.CapabilityFlags](c.options.RemoteCapsCacheSize)
	if err != nil {
		return err
	}
	c.session = &session{
		id:            randstr.Hex(8),
		info:          info,
		authenticator: c.options.Authenticator(info.PrivateKey),
		sysUid:        randstr.Hex(16),
		remoteCaps:    remoteCaps,
		atis:          make(map[string]*fsd.ControllerAtis),
		pings:         make(map[string]time.Time),
	}
	c.deferred = deferredRequests{}
	c.logger.DebugF("[%s] Session created for %s %d.%d (%s server)", c.session.id, info.ClientName, info.VersionMajor, info.VersionMinor, info.ServerType)
	return c.setStatus(fsd.SessionCreated)
}

// SetPilotLoginInfo 记录飞行员登录信息, 只能在 Connect 之前调用
func (c *Client) SetPilotLoginInfo(host string, port uint, cid string, password string, pilot fsd.PilotConnection) error {
	return c.setLoginInfo("SetPilotLoginInfo", &fsd.LoginInfo{Host: host, Port: port, Cid: cid, Password: password, Pilot: &pilot})
}

// SetAtcLoginInfo 记录管制员登录信息, 只能在 Connect 之前调用
func (c *Client) SetAtcLoginInfo(host string, port uint, cid string, password string, atc fsd.AtcConnection) error {
	return c.setLoginInfo("SetAtcLoginInfo", &fsd.LoginInfo{Host: host, Port: port, Cid: cid, Password: password, Atc: &atc})
}

func (c *Client) setLoginInfo(operation string, info *fsd.LoginInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitIdleLocked()
	switch {
	case c.destroyed:
		return ErrInvalidObject
	case c.callback:
		return c.reentrant(operation)
	case c.session == nil:
		return ErrNoSession
	case !c.status.Connectable():
		return fmt.Errorf("%w: %s while %s", ErrInvalidState, operation, c.status)
	}
	if info.Host == "" {
		return &packet.FieldError{Field: "host", Err: packet.ErrRequiredField}
	}
	if info.Port == 0 {
		info.Port = global.FSDDefaultPort
	}
	if callsign := info.Callsign(); callsign == "" {
		return &packet.FieldError{Field: "callsign", Err: packet.ErrRequiredField}
	} else if fsd.SanitizeText(callsign) != callsign {
		return &packet.FieldError{Field: "callsign", Err: packet.ErrIllegalField}
	}
	c.session.login = info
	return nil
}

// Connect 同步解析地址并在后台建立连接, 连接结果在之后的 Tick 中生效
// 返回值只表示本地的解析与拨号是否成功发起, 不代表登录成功
func (c *Client) Connect() (bool, error) {
	c.mu.Lock()
	c.waitIdleLocked()
	switch {
	case c.destroyed:
		c.mu.Unlock()
		return false, ErrInvalidObject
	case c.callback:
		defer c.mu.Unlock()
		return false, c.reentrant("Connect")
	case c.session == nil:
		c.mu.Unlock()
		return false, ErrNoSession
	case c.session.login == nil:
		c.mu.Unlock()
		return false, ErrNoLoginInfo
	case !c.status.Connectable():
		status := c.status
		c.mu.Unlock()
		return false, fmt.Errorf("%w: Connect while %s", ErrInvalidState, status)
	}
	s := c.session
	host, port := s.login.Host, s.login.Port
	timeout := c.options.ConnectTimeout
	c.mu.Unlock()

	address, resolveErr := resolve(host, port, timeout)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitIdleLocked()
	if c.destroyed {
		return false, ErrInvalidObject
	}
	if c.session != s || !c.status.Connectable() {
		return false, ErrInvalidState
	}
	_ = c.setStatus(fsd.Connecting)
	if resolveErr != nil {
		s.networkErr = resolveErr
		c.logger.WarnF("[%s](%s) Fail to resolve %s, %v", s.id, s.callsign(), host, resolveErr)
		networkLog(SeverityError, s.id, "resolve %s failed: %v", host, resolveErr)
		_ = c.setStatus(fsd.StatusError)
		return false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	results := make(chan dialResult, 1)
	s.dialCancel = cancel
	s.dialResult = results
	s.networkErr = nil
	dialer, queueSize := c.options.Dialer, c.options.ReceiveQueueSize
	c.logger.InfoF("[%s](%s) Connecting to %s", s.id, s.callsign(), address)
	networkLog(SeverityInfo, s.id, "connecting to %s", address)
	go func() {
		defer cancel()
		transport, err := dialer(ctx, address, queueSize)
		if err == nil && ctx.Err() != nil {
			// 拨号期间会话已经被取消
			_ = transport.Close()
			transport, err = nil, ctx.Err()
		}
		results <- dialResult{transport: transport, err: err}
		c.signalWake()
	}()
	return true, nil
}

func resolve(host string, port uint, timeout time.Duration) (string, error) {
	portStr := strconv.FormatUint(uint64(port), 10)
	if net.ParseIP(host) != nil {
		return net.JoinHostPort(host, portStr), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	addresses, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return "", err
	}
	if len(addresses) == 0 {
		return "", &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}
	return net.JoinHostPort(addresses[0], portStr), nil
}

// Disconnect 发送注销报文并进入 Disconnecting
// timeout 为等待服务器关闭连接的时间, -1 表示一直等待, 0 表示在下一次 Tick 时关闭
func (c *Client) Disconnect(timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitIdleLocked()
	switch {
	case c.destroyed:
		return ErrInvalidObject
	case c.session == nil:
		return ErrNoSession
	case c.callback:
		c.deferred.disconnect = true
		c.deferred.timeout = timeout
		return nil
	}
	return c.disconnectLocked(timeout)
}

func (c *Client) disconnectLocked(timeout time.Duration) error {
	s := c.session
	switch c.status {
	case fsd.Connecting:
		c.cancelDial(s)
		return c.setStatus(fsd.Disconnected)
	case fsd.Connected:
	default:
		return ErrNotConnected
	}

	var logoff packet.Packet
	if s.login.ClientType() == fsd.ClientAtc {
		logoff = &packet.DeleteAtc{From: s.callsign(), Cid: s.login.Cid}
	} else {
		logoff = &packet.DeletePilot{From: s.callsign(), Cid: s.login.Cid}
	}
	if err := c.enqueueLocked(s, logoff); err != nil {
		c.logger.WarnF("[%s](%s) Fail to queue logoff packet, %v", s.id, s.callsign(), err)
	}

	s.logoffForever = timeout < 0
	if !s.logoffForever {
		s.logoffDeadline = c.options.Clock().Add(timeout)
	}
	c.logger.InfoF("[%s](%s) Logging off", s.id, s.callsign())
	return c.setStatus(fsd.Disconnecting)
}

// DestroySession 销毁会话并强制关闭连接, 回到 Idle
func (c *Client) DestroySession() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitIdleLocked()
	switch {
	case c.destroyed:
		return ErrInvalidObject
	case c.session == nil:
		return ErrNoSession
	case c.callback:
		c.deferred.destroySession = true
		return nil
	}
	c.destroySessionLocked()
	return nil
}

func (c *Client) destroySessionLocked() {
	s := c.session
	if s == nil {
		return
	}
	c.cancelDial(s)
	c.closeTransport(s)
	s.remoteCaps.Purge()
	c.logger.DebugF("[%s](%s) Session destroyed", s.id, s.callsign())
	c.session = nil
	c.deferred = deferredRequests{}
	_ = c.setStatus(fsd.Idle)
}

// Destroy 销毁句柄, 之后的所有调用返回 ErrInvalidObject
func (c *Client) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitIdleLocked()
	if c.destroyed {
		return ErrInvalidObject
	}
	if c.callback {
		c.deferred.destroy = true
		return nil
	}
	c.destroyLocked()
	return nil
}

func (c *Client) destroyLocked() {
	c.destroySessionLocked()
	c.destroyed = true
	c.handlers = handlerTable{}
	c.pending = nil
	if c.async != nil {
		// 不能在此等待, 工作协程会在下一次 Tick 时发现句柄失效并退出
		c.async.cancel()
		c.async = nil
	}
}

// runDeferredLocked 执行回调期间请求的生命周期操作
func (c *Client) runDeferredLocked() {
	deferred := c.deferred
	c.deferred = deferredRequests{}
	switch {
	case deferred.destroy:
		c.destroyLocked()
	case deferred.destroySession:
		c.destroySessionLocked()
	case deferred.disconnect && c.session != nil:
		if err := c.disconnectLocked(deferred.timeout); err != nil && !errors.Is(err, ErrNotConnected) {
			c.logger.WarnF("[%s](%s) Deferred disconnect failed, %v", c.sessionIdLocked(), c.session.callsign(), err)
		}
	}
}

func (c *Client) cancelDial(s *session) {
	if s.dialCancel != nil {
		s.dialCancel()
		s.dialCancel = nil
	}
	s.dialResult = nil
}

func (c *Client) closeTransport(s *session) {
	if s.transport == nil {
		return
	}
	if err := s.transport.Close(); err != nil {
		c.logger.WarnF("[%s](%s) Error occurred while closing connection, details: %v", s.id, s.callsign(), err)
	}
	s.transport = nil
	s.sendQueue = nil
	s.loggedOn = false
}

func (c *Client) signalWake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Client) sessionIdLocked() string {
	if c.session == nil {
		return "-"
	}
	return c.session.id
}

func (c *Client) Status() fsd.ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// NetworkErrorCode 最近一次传输层错误, 无错误时为 EOK
func (c *Client) NetworkErrorCode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return errorCodeOk
	}
	return NormalizeNetworkError(c.session.networkErr)
}

func (c *Client) SessionId() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionIdLocked()
}

func (c *Client) Callsign() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.callsign()
}

func (c *Client) LocalCapabilities() fsd.CapabilityFlags {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return fsd.CapabilityNone
	}
	return c.session.info.Capabilities
}

// RemoteCapabilities 远端通过 CAPS 回复告知的能力, 未收到回复时返回 false
func (c *Client) RemoteCapabilities(callsign string) (fsd.CapabilityFlags, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return fsd.CapabilityNone, false
	}
	return c.session.remoteCaps.Get(callsign)
}

// RemoteCallsigns 能力缓存中的所有呼号
func (c *Client) RemoteCallsigns() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	return c.session.remoteCaps.Keys()
}

func (c *Client) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}
