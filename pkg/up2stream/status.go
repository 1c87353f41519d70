package up2stream

import (
	"fmt"
	"strings"
)

// Status is the STA reply.
type Status struct {
	Source    Source
	Mute      bool
	Volume    Volume
	Treble    Treble
	Bass      Bass
	Net       bool
	Internet  bool
	Playing   bool
	LED       bool
	Upgrading bool
}

const statusFields = 10

// ParseStatus parses the parameter list of STA, e.g.
// "BT,0,50,-4,4,1,1,1,0,0".
func ParseStatus(s string) (st Status, err error) {
	fields := strings.Split(s, ",")
	if len(fields) < statusFields {
		return st, fmt.Errorf("%w: status has %d fields, expect %d", ErrIllFormedResponse, len(fields), statusFields)
	}
	if st.Source, err = ParseSource(fields[0]); err != nil {
		return
	}
	if st.Volume, err = ParseVolume(fields[2]); err != nil {
		return
	}
	if st.Treble, err = ParseTreble(fields[3]); err != nil {
		return
	}
	if st.Bass, err = ParseBass(fields[4]); err != nil {
		return
	}
	flags := []struct {
		field int
		value *bool
	}{
		{1, &st.Mute},
		{5, &st.Net},
		{6, &st.Internet},
		{7, &st.Playing},
		{8, &st.LED},
		{9, &st.Upgrading},
	}
	for _, f := range flags {
		if *f.value, err = parseBool(fields[f.field]); err != nil {
			return
		}
	}
	return
}

func parseBool(s string) (bool, error) {
	sw, err := ParseSwitch(s)
	if err != nil {
		return false, err
	}
	return sw.Bool()
}

// Version is the VER reply: {firmware}-{commit}-{api}.
type Version struct {
	Firmware string
	Commit   string
	API      string
}

// ParseVersion parses the VER reply.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: version %q", ErrIllFormedResponse, s)
	}
	return Version{Firmware: parts[0], Commit: parts[1], API: parts[2]}, nil
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return v.Firmware + "-" + v.Commit + "-" + v.API
}
