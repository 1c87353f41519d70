// Package playback provides shell commands for transport control.
package playback

import (
	"github.com/robotalks/up2stream/pkg/cli/sh"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

func action(fn func(*up2stream.Device) error) sh.DeviceFunc {
	return func(dev *up2stream.Device, args []string) (interface{}, error) {
		return nil, fn(dev)
	}
}

var (
	// Play toggles play and pause.
	Play = action((*up2stream.Device).PlayPause)
	// Stop stops playback.
	Stop = action((*up2stream.Device).Stop)
	// Next skips forward.
	Next = action((*up2stream.Device).Next)
	// Previous skips backward.
	Previous = action((*up2stream.Device).Previous)
)

func init() {
	sh.AddCmds(
		sh.DeviceCmd("play", "", Play, "p"),
		sh.DeviceCmd("stop", "", Stop),
		sh.DeviceCmd("next", "", Next, "n"),
		sh.DeviceCmd("prev", "", Previous),
	)
}
