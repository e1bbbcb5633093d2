// Package fsd_client
package fsd_client

import (
	"encoding/hex"
	"golang.org/x/crypto/blake2b"
)

// Authenticator 计算 $ZC 质询的应答
type Authenticator interface {
	Respond(challenge string) string
}

// AuthenticatorFactory 由会话的私钥创建 Authenticator
type AuthenticatorFactory func(privateKey string) Authenticator

type blake2bAuthenticator struct {
	key []byte
}

// NewBlake2bAuthenticator 默认实现, 以私钥为密钥对质询做 BLAKE2b-256 并输出十六进制
func NewBlake2bAuthenticator(privateKey string) Authenticator {
	key := []byte(privateKey)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	return &blake2bAuthenticator{key: key}
}

func (a *blake2bAuthenticator) Respond(challenge string) string {
	hash, err := blake2b.New256(a.key)
	if err != nil {
		// 密钥长度已经在构造时限制, 不会走到这里
		sum := blake2b.Sum256([]byte(challenge))
		return hex.EncodeToString(sum[:])
	}
	hash.Write([]byte(challenge))
	return hex.EncodeToString(hash.Sum(nil))
}
