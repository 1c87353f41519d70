// Package audio provides shell commands for volume, tone and input.
package audio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robotalks/up2stream/pkg/cli/sh"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

func intArg(name, arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, arg)
	}
	return v, nil
}

// Volume queries the volume, or sets it with one argument.
func Volume(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return dev.Volume()
	}
	n, err := intArg("VOLUME", args[0])
	if err != nil {
		return nil, err
	}
	v, err := up2stream.NewVolume(n)
	if err != nil {
		return nil, err
	}
	return nil, dev.SetVolume(v)
}

// Mute queries mute, or sets it with on, off or toggle.
func Mute(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return dev.Mute()
	}
	s, err := switchArg(args[0])
	if err != nil {
		return nil, err
	}
	return nil, dev.SetMute(s)
}

func switchArg(arg string) (up2stream.Switch, error) {
	switch strings.ToLower(arg) {
	case "on", "1":
		return up2stream.SwitchOn, nil
	case "off", "0":
		return up2stream.SwitchOff, nil
	case "toggle", "t":
		return up2stream.SwitchToggle, nil
	}
	return up2stream.SwitchOff, fmt.Errorf("invalid switch: %q", arg)
}

// Source queries the input source, or selects one.
func Source(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return dev.InputSource()
	}
	src, err := up2stream.ParseSource(strings.ToUpper(args[0]))
	if err != nil {
		return nil, err
	}
	return nil, dev.SelectInputSource(src)
}

// Bass queries or sets bass.
func Bass(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return dev.Bass()
	}
	n, err := intArg("BASS", args[0])
	if err != nil {
		return nil, err
	}
	v, err := up2stream.NewBass(n)
	if err != nil {
		return nil, err
	}
	return nil, dev.SetBass(v)
}

// Treble queries or sets treble.
func Treble(dev *up2stream.Device, args []string) (interface{}, error) {
	if len(args) == 0 {
		return dev.Treble()
	}
	n, err := intArg("TREBLE", args[0])
	if err != nil {
		return nil, err
	}
	v, err := up2stream.NewTreble(n)
	if err != nil {
		return nil, err
	}
	return nil, dev.SetTreble(v)
}

func init() {
	sh.AddCmds(
		sh.DeviceCmd("vol", "[0..100]", Volume, "v"),
		sh.DeviceCmd("mute", "[on|off|toggle]", Mute, "m"),
		sh.DeviceCmd("src", "[NET|USB|USBDAC|LINE-IN|LINE-IN2|BT|OPT|COAX|I2S|HDMI]", Source),
		sh.DeviceCmd("bass", "[-10..10]", Bass),
		sh.DeviceCmd("treble", "[-10..10]", Treble),
	)
}
