// Package packet
package packet

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"strings"
)

const (
	Delimiter         = ":"
	illegalCharacters = Delimiter + "\r\n"
)

// Split 按分隔符拆分, 保留末尾的空字段
func Split(line string) []string {
	return strings.Split(line, Delimiter)
}

// Join Split 的逆操作
func Join(tokens []string) string {
	return strings.Join(tokens, Delimiter)
}

// joinRest 报文末尾的自由文本可能包含分隔符, 原样拼回
func joinRest(tokens []string, from int) string {
	if from >= len(tokens) {
		return ""
	}
	return Join(tokens[from:])
}

// ParseCommandLine 识别报文前缀, 未知前缀返回空命令
func ParseCommandLine(line string) (fsd.ClientCommand, []string) {
	for _, prefix := range fsd.PossibleClientCommands {
		if strings.HasPrefix(line, string(prefix)) {
			return prefix, Split(line[len(prefix):])
		}
	}
	return "", nil
}

func makePacket(command fsd.ClientCommand, parts ...string) []byte {
	totalLen := len(command)
	if len(parts) > 0 {
		for _, part := range parts {
			totalLen += len(part)
		}
		totalLen += len(parts) - 1
	}

	result := make([]byte, totalLen)
	pos := 0

	pos += copy(result[pos:], command)

	for i, part := range parts {
		if i > 0 {
			result[pos] = ':'
			pos++
		}
		pos += copy(result[pos:], part)
	}

	return result
}
