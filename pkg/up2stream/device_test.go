package up2stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/up2stream/pkg/uart"
	"github.com/robotalks/up2stream/pkg/uart/uarttest"
)

func newTestDevice(replies map[string]string) (*Device, *uarttest.Board) {
	board := uarttest.NewBoard(replies)
	board.Noise = "\r\n"
	return New(board), board
}

func TestDeviceQueries(t *testing.T) {
	dev, board := newTestDevice(map[string]string{
		CmdVersion:     "1234-13-42",
		CmdStatus:      "BT,0,50,-4,4,1,1,1,0,0",
		CmdInternet:    "1",
		CmdAudioOut:    "1",
		CmdSource:      "COAX",
		CmdVolume:      "50",
		CmdMute:        "0",
		CmdBass:        "-3",
		CmdTreble:      "7",
		CmdChannel:     "L",
		CmdMultiroom:   "N",
		CmdLoopMode:    "REPEATONE",
		CmdName:        "Kitchen",
		CmdVirtualBass: "1",
		CmdEthernet:    "0",
		CmdWiFi:        "1",
	})

	ver, err := dev.FirmwareVersion()
	require.NoError(t, err)
	require.Equal(t, "1234", ver.Firmware)

	st, err := dev.Status()
	require.NoError(t, err)
	require.Equal(t, SourceBT, st.Source)
	require.Equal(t, Volume(50), st.Volume)

	on, err := dev.InternetConnection()
	require.NoError(t, err)
	require.True(t, on)

	on, err = dev.AudioOut()
	require.NoError(t, err)
	require.True(t, on)

	src, err := dev.InputSource()
	require.NoError(t, err)
	require.Equal(t, SourceCoax, src)

	vol, err := dev.Volume()
	require.NoError(t, err)
	require.Equal(t, Volume(50), vol)

	muted, err := dev.Mute()
	require.NoError(t, err)
	require.False(t, muted)

	bass, err := dev.Bass()
	require.NoError(t, err)
	require.Equal(t, Bass(-3), bass)

	treble, err := dev.Treble()
	require.NoError(t, err)
	require.Equal(t, Treble(7), treble)

	ch, err := dev.AudioChannel()
	require.NoError(t, err)
	require.Equal(t, ChannelLeft, ch)

	mrm, err := dev.Multiroom()
	require.NoError(t, err)
	require.Equal(t, MultiroomNone, mrm)

	lpm, err := dev.LoopMode()
	require.NoError(t, err)
	require.Equal(t, LoopRepeatOne, lpm)

	name, err := dev.Name()
	require.NoError(t, err)
	require.Equal(t, "Kitchen", name)

	on, err = dev.VirtualBass()
	require.NoError(t, err)
	require.True(t, on)

	on, err = dev.Ethernet()
	require.NoError(t, err)
	require.False(t, on)

	on, err = dev.WiFi()
	require.NoError(t, err)
	require.True(t, on)

	require.Equal(t, []string{
		"VER;", "STA;", "WWW;", "AUD;", "SRC;", "VOL;", "MUT;", "BAS;", "TRE;",
		"CHN;", "MRM;", "LPM;", "NAM;", "VBS;", "ETH;", "WIF;",
	}, board.Sent())
}

func TestDeviceBoolResponseLength(t *testing.T) {
	dev, _ := newTestDevice(map[string]string{
		CmdInternet: "11",
		CmdAudioOut: "T",
		CmdLED:      "",
	})
	_, err := dev.InternetConnection()
	require.True(t, errors.Is(err, ErrIllFormedResponse))
	_, err = dev.AudioOut()
	require.True(t, errors.Is(err, ErrCannotConvert))
	_, err = dev.LED()
	require.True(t, errors.Is(err, ErrIllFormedResponse))
}

func TestDeviceEchoMismatch(t *testing.T) {
	board := uarttest.NewBoard(nil)
	dev := New(board)
	// reply for a longer command name sharing the prefix.
	board.Replies[CmdInternet] = "1"
	board.Noise = "WWWW:1;"
	_, err := dev.InternetConnection()
	require.True(t, errors.Is(err, uart.ErrParseResponse))
}

func TestDeviceCommands(t *testing.T) {
	dev, board := newTestDevice(nil)
	require.NoError(t, dev.SystemControl(SystemReset))
	require.NoError(t, dev.SetAudioOut(true))
	require.NoError(t, dev.SelectInputSource(SourceCoax))
	require.NoError(t, dev.SetVolume(34))
	require.NoError(t, dev.SetMute(SwitchOn))
	require.NoError(t, dev.SetMute(SwitchToggle))
	require.NoError(t, dev.SetBass(-10))
	require.NoError(t, dev.SetTreble(5))
	require.NoError(t, dev.SetBluetooth(false))
	require.NoError(t, dev.SetAudioChannel(ChannelRight))
	require.NoError(t, dev.SetMultiroom(MultiroomMaster))
	require.NoError(t, dev.SetLED(SwitchOff))
	require.NoError(t, dev.SetBeep(true))
	require.NoError(t, dev.PlayPreset(3))
	require.NoError(t, dev.SetVirtualBass(SwitchToggle))
	require.NoError(t, dev.ResetWiFi())
	require.NoError(t, dev.SetLoopMode(LoopSequence))
	require.NoError(t, dev.SetName("Living-Room"))
	require.Equal(t, []string{
		"SYS:RESET;", "AUD:1;", "SRC:COAX;", "VOL:34;", "MUT:1;", "MUT:T;",
		"BAS:-10;", "TRE:5;", "BTC:0;", "CHN:R;", "MRM:M;", "LED:0;", "BEP:1;",
		"PST:3;", "VBS:T;", "WRS;", "LPM:SEQUENCE;", "NAM:Living-Room;",
	}, board.Sent())
	require.Equal(t, 18, board.Flushes())
}

func TestDeviceCommandValidation(t *testing.T) {
	dev, board := newTestDevice(nil)
	require.True(t, errors.Is(dev.SetVolume(101), ErrOutOfRange))
	require.True(t, errors.Is(dev.SetBass(11), ErrOutOfRange))
	require.True(t, errors.Is(dev.SetTreble(-11), ErrOutOfRange))
	require.True(t, errors.Is(dev.PlayPreset(11), ErrOutOfRange))
	require.True(t, errors.Is(dev.SelectInputSource("AUX"), ErrInvalidValue))
	require.True(t, errors.Is(dev.SystemControl("HALT"), ErrInvalidValue))
	require.True(t, errors.Is(dev.SetLoopMode("RANDOM"), ErrInvalidValue))
	require.True(t, errors.Is(dev.SetName("Living Room"), ErrInvalidValue))
	require.True(t, errors.Is(dev.SetName(""), ErrInvalidValue))
	require.True(t, errors.Is(dev.SetMute(Switch(9)), ErrInvalidValue))
	require.Empty(t, board.Sent())
}

func TestDevicePlayback(t *testing.T) {
	dev, board := newTestDevice(map[string]string{CmdSource: "NET", CmdPlayback: "1"})
	require.NoError(t, dev.PlayPause())
	require.NoError(t, dev.Stop())
	require.NoError(t, dev.Next())
	require.NoError(t, dev.Previous())
	playing, err := dev.Playing()
	require.NoError(t, err)
	require.True(t, playing)
	require.Equal(t, []string{
		"SRC;", "POP;", "SRC;", "STP;", "SRC;", "NXT;", "SRC;", "PRE;", "PLA;",
	}, board.Sent())

	board.Replies[CmdSource] = "LINE-IN"
	err = dev.Next()
	require.True(t, errors.Is(err, ErrNotSupportedForSource))
	require.Equal(t, []string{"SRC;"}, board.Sent())
}

func TestDeviceSilentBoard(t *testing.T) {
	dev, board := newTestDevice(nil)
	_, err := dev.Volume()
	require.True(t, errors.Is(err, uart.ErrTimeout))
	require.Equal(t, []string{"VOL;", "VOL;", "VOL;", "VOL;"}, board.Sent())
}

func TestDeviceSettingsRoundTrip(t *testing.T) {
	dev, _ := newTestDevice(nil)
	board := dev.Engine().Transport().(*uarttest.Board).Echo()
	require.NoError(t, dev.SetVolume(42))
	vol, err := dev.Volume()
	require.NoError(t, err)
	require.Equal(t, Volume(42), vol)
	require.Equal(t, "42", board.Replies[CmdVolume])
}
