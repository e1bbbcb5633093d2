// Package fsd_client
package fsd_client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
)

func isNetClosedError(err error) bool {
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	var opErr *net.OpError
	ok := errors.As(err, &opErr)
	return ok && opErr.Timeout()
}

func createSplitFunc(sep []byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if i := bytes.Index(data, sep); i >= 0 {
			return i + len(sep), data[0:i], nil
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

const errorCodeOk = "EOK"

// errnoCodes 需要归一化的系统错误
var errnoCodes = []struct {
	errno syscall.Errno
	code  string
}{
	{syscall.ECONNREFUSED, "ECONNREFUSED"},
	{syscall.ECONNRESET, "ECONNRESET"},
	{syscall.ETIMEDOUT, "ETIMEDOUT"},
	{syscall.EHOSTUNREACH, "EHOSTUNREACH"},
	{syscall.ENETUNREACH, "ENETUNREACH"},
	{syscall.ECONNABORTED, "ECONNABORTED"},
	{syscall.ENOTCONN, "ENOTCONN"},
	{syscall.EPIPE, "ECONNRESET"},
}

// NormalizeNetworkError 将传输层错误转换为与平台无关的错误码
func NormalizeNetworkError(err error) string {
	if err == nil {
		return errorCodeOk
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "EDNS"
	}
	for _, item := range errnoCodes {
		if errors.Is(err, item.errno) {
			return item.code
		}
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, ErrWriteBacklog):
		return "ETIMEDOUT"
	case errors.Is(err, io.EOF), errors.Is(err, ErrTransportClosed):
		return "ECONNRESET"
	case errors.Is(err, net.ErrClosed):
		return "ECONNABORTED"
	case errors.Is(err, ErrNotConnected):
		return "ENOTCONN"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}
	return fmt.Sprintf("EUNKWN %v", err)
}
