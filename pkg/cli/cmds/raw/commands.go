// Package raw provides shell commands sending arbitrary frames.
package raw

import (
	"fmt"

	"github.com/robotalks/up2stream/pkg/cli/sh"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

// Query sends NAME; and prints the parameter list of the reply.
func Query(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("NAME required")
	}
	return dev.Engine().Query(args[0])
}

// Send sends NAME; or NAME:PARAM; without waiting for a reply.
func Send(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("NAME required")
	}
	var param []byte
	if len(args) > 1 {
		param = []byte(args[1])
	}
	return nil, dev.Engine().SendCommand(args[0], param)
}

func init() {
	sh.AddCmds(
		sh.DeviceCmd("query", "NAME", Query, "q"),
		sh.DeviceCmd("send", "NAME [PARAM]", Send),
	)
}
