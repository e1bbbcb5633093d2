// Package recorder
package recorder

import (
	"bufio"
	"compress/gzip"
	"errors"
	"github.com/vmihailenco/msgpack/v5"
	"io"
	"os"
	"strings"
)

// ErrStopDump 由回调返回时提前结束读取, ReadDump 返回 nil
var ErrStopDump = errors.New("stop reading dump")

// ReadDump 依次读取转储文件中的记录, 支持滚动后压缩的 .gz 文件
func ReadDump(path string, handler func(record *DumpRecord) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = bufio.NewReader(file)
	if strings.HasSuffix(path, ".gz") {
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return err
		}
		defer func() { _ = gzipReader.Close() }()
		reader = gzipReader
	}
	return DecodeDump(reader, handler)
}

// DecodeDump 从 reader 中解码记录直到 EOF
func DecodeDump(reader io.Reader, handler func(record *DumpRecord) error) error {
	decoder := msgpack.NewDecoder(reader)
	for {
		record := &DumpRecord{}
		if err := decoder.Decode(record); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := handler(record); err != nil {
			if errors.Is(err, ErrStopDump) {
				return nil
			}
			return err
		}
	}
}
