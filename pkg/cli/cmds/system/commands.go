// Package system provides shell commands for board status and control.
package system

import (
	"fmt"
	"strings"

	"github.com/robotalks/up2stream/pkg/cli/sh"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

// Status queries STA.
func Status(dev *up2stream.Device, args []string) (interface{}, error) {
	return dev.Status()
}

// Version queries VER.
func Version(dev *up2stream.Device, args []string) (interface{}, error) {
	return dev.FirmwareVersion()
}

// System sends REBOOT, STANDBY, RECOVER or RESET.
func System(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("ACTION required")
	}
	c, err := up2stream.ParseSystemControl(strings.ToUpper(args[0]))
	if err != nil {
		return nil, err
	}
	return nil, dev.SystemControl(c)
}

func init() {
	sh.AddCmds(
		sh.DeviceCmd("status", "", Status, "s"),
		sh.DeviceCmd("ver", "", Version),
		sh.DeviceCmd("sys", "REBOOT|STANDBY|RECOVER|RESET", System),
	)
}
