package main

import (
	"errors"
	"flag"
	"fmt"
	"github.com/fatih/color"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/recorder"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"os"
)

var (
	dumpFile = flag.String("file", "./logs/traffic.dump", "Path to traffic dump file")
	session  = flag.String("session", "", "Only print records of this session")
	decode   = flag.Bool("decode", false, "Decode every line and print the packet type")
	limit    = flag.Int("limit", 0, "Stop after printing this many records, 0 means no limit")
)

const timeLayout = "2006-01-02 15:04:05.000"

var (
	inboundColor  = color.New(color.FgGreen)
	outboundColor = color.New(color.FgCyan)
	errorColor    = color.New(color.FgRed)
)

func main() {
	flag.Parse()

	printed := 0
	err := recorder.ReadDump(*dumpFile, func(record *recorder.DumpRecord) error {
		if *session != "" && record.SessionId != *session {
			return nil
		}
		direction := inboundColor.Sprint(record.Direction)
		if record.Direction == fsd.Outbound {
			direction = outboundColor.Sprint(record.Direction)
		}
		fmt.Printf("%s [%s](%s) %s %s\n", record.Timestamp().Format(timeLayout), record.SessionId, record.Callsign, direction, record.Line)
		if *decode {
			if p, err := packet.Decode(record.Line); err != nil {
				fmt.Printf("    %s\n", errorColor.Sprint(err))
			} else {
				fmt.Printf("    %T\n", p)
			}
		}
		printed++
		if *limit > 0 && printed >= *limit {
			return recorder.ErrStopDump
		}
		return nil
	})
	if err != nil && !errors.Is(err, recorder.ErrStopDump) {
		_, _ = fmt.Fprintf(os.Stderr, "Fail to read %s, %v\n", *dumpFile, err)
		os.Exit(1)
	}
}
