package up2stream

import (
	"fmt"
	"strconv"
)

func parseRanged(s string, min, max int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}
	return checkRange(v, min, max)
}

func checkRange(v, min, max int) (int, error) {
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, v, min, max)
	}
	return v, nil
}

// Volume is the output volume, 0..100.
type Volume uint8

// Volume range.
const (
	MinVolume = 0
	MaxVolume = 100
)

// NewVolume validates v.
func NewVolume(v int) (Volume, error) {
	v, err := checkRange(v, MinVolume, MaxVolume)
	return Volume(v), err
}

// ParseVolume parses the VOL reply.
func ParseVolume(s string) (Volume, error) {
	v, err := parseRanged(s, MinVolume, MaxVolume)
	return Volume(v), err
}

// Parameter returns the encoded parameter.
func (v Volume) Parameter() []byte {
	return strconv.AppendInt(nil, int64(v), 10)
}

// Tone range shared by Bass and Treble.
const (
	MinTone = -10
	MaxTone = 10
)

// Bass is the bass adjustment, -10..10.
type Bass int8

// NewBass validates v.
func NewBass(v int) (Bass, error) {
	v, err := checkRange(v, MinTone, MaxTone)
	return Bass(v), err
}

// ParseBass parses the BAS reply.
func ParseBass(s string) (Bass, error) {
	v, err := parseRanged(s, MinTone, MaxTone)
	return Bass(v), err
}

// Parameter returns the encoded parameter.
func (v Bass) Parameter() []byte {
	return strconv.AppendInt(nil, int64(v), 10)
}

// Treble is the treble adjustment, -10..10.
type Treble int8

// NewTreble validates v.
func NewTreble(v int) (Treble, error) {
	v, err := checkRange(v, MinTone, MaxTone)
	return Treble(v), err
}

// ParseTreble parses the TRE reply.
func ParseTreble(s string) (Treble, error) {
	v, err := parseRanged(s, MinTone, MaxTone)
	return Treble(v), err
}

// Parameter returns the encoded parameter.
func (v Treble) Parameter() []byte {
	return strconv.AppendInt(nil, int64(v), 10)
}

// PlayPreset selects a stored preset, 0..10.
type PlayPreset uint8

// MaxPlayPreset is the highest preset number.
const MaxPlayPreset = 10

// NewPlayPreset validates v.
func NewPlayPreset(v int) (PlayPreset, error) {
	v, err := checkRange(v, 0, MaxPlayPreset)
	return PlayPreset(v), err
}

// ParsePlayPreset parses a preset number.
func ParsePlayPreset(s string) (PlayPreset, error) {
	v, err := parseRanged(s, 0, MaxPlayPreset)
	return PlayPreset(v), err
}

// Parameter returns the encoded parameter.
func (v PlayPreset) Parameter() []byte {
	return strconv.AppendInt(nil, int64(v), 10)
}

// Switch is the on/off/toggle parameter of boolean settings.
type Switch int

// Switch values.
const (
	SwitchOff Switch = iota
	SwitchOn
	SwitchToggle
)

var switchCodes = [...]string{
	SwitchOff:    "0",
	SwitchOn:     "1",
	SwitchToggle: "T",
}

// SwitchFromBool converts on to SwitchOn, otherwise SwitchOff.
func SwitchFromBool(on bool) Switch {
	if on {
		return SwitchOn
	}
	return SwitchOff
}

// ParseSwitch parses "0", "1" or "T".
func ParseSwitch(s string) (Switch, error) {
	for n, code := range switchCodes {
		if code == s {
			return Switch(n), nil
		}
	}
	return SwitchOff, fmt.Errorf("%w: switch %q", ErrInvalidValue, s)
}

// Bool converts On/Off, Toggle can't be converted.
func (s Switch) Bool() (bool, error) {
	switch s {
	case SwitchOn:
		return true, nil
	case SwitchOff:
		return false, nil
	}
	return false, fmt.Errorf("%w: %s to bool", ErrCannotConvert, s)
}

// String implements fmt.Stringer.
func (s Switch) String() string {
	switch s {
	case SwitchOn:
		return "on"
	case SwitchOff:
		return "off"
	case SwitchToggle:
		return "toggle"
	}
	return "Switch(" + strconv.Itoa(int(s)) + ")"
}

// Parameter returns the encoded parameter.
func (s Switch) Parameter() []byte {
	if s < SwitchOff || s > SwitchToggle {
		return nil
	}
	return []byte(switchCodes[s])
}

// enum implements parsing for the string valued parameters.
type enum []string

func (e enum) parse(kind, s string) (string, error) {
	for _, v := range e {
		if v == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrInvalidValue, kind, s)
}

// Source is the audio input.
type Source string

// Input sources.
const (
	SourceNet     Source = "NET"
	SourceUSB     Source = "USB"
	SourceUSBDAC  Source = "USBDAC"
	SourceLineIn  Source = "LINE-IN"
	SourceLineIn2 Source = "LINE-IN2"
	SourceBT      Source = "BT"
	SourceOptical Source = "OPT"
	SourceCoax    Source = "COAX"
	SourceI2S     Source = "I2S"
	SourceHDMI    Source = "HDMI"
)

var sources = enum{"NET", "USB", "USBDAC", "LINE-IN", "LINE-IN2", "BT", "OPT", "COAX", "I2S", "HDMI"}

// ParseSource parses the SRC reply.
func ParseSource(s string) (Source, error) {
	v, err := sources.parse("source", s)
	return Source(v), err
}

// Playable indicates the source supports playback controls.
func (s Source) Playable() bool {
	return s == SourceNet || s == SourceUSB || s == SourceBT
}

// SystemControl is a SYS action.
type SystemControl string

// System controls.
const (
	SystemReboot  SystemControl = "REBOOT"
	SystemStandby SystemControl = "STANDBY"
	SystemRecover SystemControl = "RECOVER"
	SystemReset   SystemControl = "RESET"
)

var systemControls = enum{"REBOOT", "STANDBY", "RECOVER", "RESET"}

// ParseSystemControl parses a system control name.
func ParseSystemControl(s string) (SystemControl, error) {
	v, err := systemControls.parse("system control", s)
	return SystemControl(v), err
}

// AudioChannel is the CHN output channel.
type AudioChannel string

// Audio channels.
const (
	ChannelLeft   AudioChannel = "L"
	ChannelRight  AudioChannel = "R"
	ChannelStereo AudioChannel = "S"
)

var audioChannels = enum{"L", "R", "S"}

// ParseAudioChannel parses the CHN reply.
func ParseAudioChannel(s string) (AudioChannel, error) {
	v, err := audioChannels.parse("channel", s)
	return AudioChannel(v), err
}

// MultiroomState is the MRM role.
type MultiroomState string

// Multiroom states.
const (
	MultiroomSlave  MultiroomState = "S"
	MultiroomMaster MultiroomState = "M"
	MultiroomNone   MultiroomState = "N"
)

var multiroomStates = enum{"S", "M", "N"}

// ParseMultiroomState parses the MRM reply.
func ParseMultiroomState(s string) (MultiroomState, error) {
	v, err := multiroomStates.parse("multiroom state", s)
	return MultiroomState(v), err
}

// LoopMode is the LPM play order.
type LoopMode string

// Loop modes.
const (
	LoopRepeatAll     LoopMode = "REPEATALL"
	LoopRepeatOne     LoopMode = "REPEATONE"
	LoopRepeatShuffle LoopMode = "REPEATSHUFFLE"
	LoopShuffle       LoopMode = "SHUFFLE"
	LoopSequence      LoopMode = "SEQUENCE"
)

var loopModes = enum{"REPEATALL", "REPEATONE", "REPEATSHUFFLE", "SHUFFLE", "SEQUENCE"}

// ParseLoopMode parses the LPM reply.
func ParseLoopMode(s string) (LoopMode, error) {
	v, err := loopModes.parse("loop mode", s)
	return LoopMode(v), err
}
