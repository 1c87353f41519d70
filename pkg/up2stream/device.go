package up2stream

import (
	"fmt"

	"github.com/robotalks/up2stream/pkg/uart"
)

// Device is the Up2Stream board. It's not safe for concurrent use.
type Device struct {
	engine *uart.Engine
}

// New creates a Device talking over t with the default engine settings.
func New(t uart.Transport) *Device {
	return NewWithEngine(uart.New(t))
}

// NewWithEngine creates a Device using an existing engine.
func NewWithEngine(e *uart.Engine) *Device {
	return &Device{engine: e}
}

// Engine returns the protocol engine.
func (d *Device) Engine() *uart.Engine {
	return d.engine
}

func (d *Device) query(command string) (string, error) {
	return d.engine.Query(command)
}

// queryBool queries a single 0/1 field.
func (d *Device) queryBool(command string) (bool, error) {
	s, err := d.query(command)
	if err != nil {
		return false, err
	}
	if len(s) != 1 {
		return false, fmt.Errorf("%w: %s replied %q", ErrIllFormedResponse, command, s)
	}
	return parseBool(s)
}

func (d *Device) send(command string, parameter []byte) error {
	return d.engine.SendCommand(command, parameter)
}

// FirmwareVersion queries VER.
func (d *Device) FirmwareVersion() (Version, error) {
	s, err := d.query(CmdVersion)
	if err != nil {
		return Version{}, err
	}
	return ParseVersion(s)
}

// Status queries STA.
func (d *Device) Status() (Status, error) {
	s, err := d.query(CmdStatus)
	if err != nil {
		return Status{}, err
	}
	return ParseStatus(s)
}

// SystemControl sends a SYS action.
func (d *Device) SystemControl(c SystemControl) error {
	if _, err := ParseSystemControl(string(c)); err != nil {
		return err
	}
	return d.send(CmdSystemControl, []byte(c))
}

// InternetConnection queries WWW.
func (d *Device) InternetConnection() (bool, error) {
	return d.queryBool(CmdInternet)
}

// Ethernet queries ETH.
func (d *Device) Ethernet() (bool, error) {
	return d.queryBool(CmdEthernet)
}

// WiFi queries WIF.
func (d *Device) WiFi() (bool, error) {
	return d.queryBool(CmdWiFi)
}

// ResetWiFi sends WRS.
func (d *Device) ResetWiFi() error {
	return d.send(CmdWiFiReset, nil)
}

// AudioOut queries AUD.
func (d *Device) AudioOut() (bool, error) {
	return d.queryBool(CmdAudioOut)
}

// SetAudioOut enables or disables audio out.
func (d *Device) SetAudioOut(enable bool) error {
	return d.send(CmdAudioOut, SwitchFromBool(enable).Parameter())
}

// InputSource queries SRC.
func (d *Device) InputSource() (Source, error) {
	s, err := d.query(CmdSource)
	if err != nil {
		return "", err
	}
	return ParseSource(s)
}

// SelectInputSource switches the input.
func (d *Device) SelectInputSource(src Source) error {
	if _, err := ParseSource(string(src)); err != nil {
		return err
	}
	return d.send(CmdSource, []byte(src))
}

// Volume queries VOL.
func (d *Device) Volume() (Volume, error) {
	s, err := d.query(CmdVolume)
	if err != nil {
		return 0, err
	}
	return ParseVolume(s)
}

// SetVolume sets the volume.
func (d *Device) SetVolume(v Volume) error {
	if _, err := NewVolume(int(v)); err != nil {
		return err
	}
	return d.send(CmdVolume, v.Parameter())
}

// Mute queries MUT.
func (d *Device) Mute() (bool, error) {
	return d.queryBool(CmdMute)
}

// SetMute mutes, unmutes or toggles.
func (d *Device) SetMute(s Switch) error {
	return d.sendSwitch(CmdMute, s)
}

// Bass queries BAS.
func (d *Device) Bass() (Bass, error) {
	s, err := d.query(CmdBass)
	if err != nil {
		return 0, err
	}
	return ParseBass(s)
}

// SetBass sets the bass.
func (d *Device) SetBass(v Bass) error {
	if _, err := NewBass(int(v)); err != nil {
		return err
	}
	return d.send(CmdBass, v.Parameter())
}

// Treble queries TRE.
func (d *Device) Treble() (Treble, error) {
	s, err := d.query(CmdTreble)
	if err != nil {
		return 0, err
	}
	return ParseTreble(s)
}

// SetTreble sets the treble.
func (d *Device) SetTreble(v Treble) error {
	if _, err := NewTreble(int(v)); err != nil {
		return err
	}
	return d.send(CmdTreble, v.Parameter())
}

// requirePlayable fails unless the current source supports playback
// controls.
func (d *Device) requirePlayable() error {
	src, err := d.InputSource()
	if err != nil {
		return err
	}
	if !src.Playable() {
		return fmt.Errorf("%w: %s", ErrNotSupportedForSource, src)
	}
	return nil
}

func (d *Device) playback(command string) error {
	if err := d.requirePlayable(); err != nil {
		return err
	}
	return d.send(command, nil)
}

// PlayPause toggles between play and pause.
func (d *Device) PlayPause() error {
	return d.playback(CmdPlayPause)
}

// Stop stops playback.
func (d *Device) Stop() error {
	return d.playback(CmdStop)
}

// Next skips to the next track.
func (d *Device) Next() error {
	return d.playback(CmdNext)
}

// Previous goes back to the previous track.
func (d *Device) Previous() error {
	return d.playback(CmdPrevious)
}

// Playing queries PLA.
func (d *Device) Playing() (bool, error) {
	return d.queryBool(CmdPlayback)
}

// BluetoothConnected queries BTC.
func (d *Device) BluetoothConnected() (bool, error) {
	return d.queryBool(CmdBluetooth)
}

// SetBluetooth connects or disconnects bluetooth.
func (d *Device) SetBluetooth(connect bool) error {
	return d.send(CmdBluetooth, SwitchFromBool(connect).Parameter())
}

// AudioChannel queries CHN.
func (d *Device) AudioChannel() (AudioChannel, error) {
	s, err := d.query(CmdChannel)
	if err != nil {
		return "", err
	}
	return ParseAudioChannel(s)
}

// SetAudioChannel selects the output channel.
func (d *Device) SetAudioChannel(c AudioChannel) error {
	if _, err := ParseAudioChannel(string(c)); err != nil {
		return err
	}
	return d.send(CmdChannel, []byte(c))
}

// Multiroom queries MRM.
func (d *Device) Multiroom() (MultiroomState, error) {
	s, err := d.query(CmdMultiroom)
	if err != nil {
		return "", err
	}
	return ParseMultiroomState(s)
}

// SetMultiroom sets the multiroom role.
func (d *Device) SetMultiroom(m MultiroomState) error {
	if _, err := ParseMultiroomState(string(m)); err != nil {
		return err
	}
	return d.send(CmdMultiroom, []byte(m))
}

// LED queries LED.
func (d *Device) LED() (bool, error) {
	return d.queryBool(CmdLED)
}

// SetLED switches the LED.
func (d *Device) SetLED(s Switch) error {
	return d.sendSwitch(CmdLED, s)
}

// Beep queries BEP.
func (d *Device) Beep() (bool, error) {
	return d.queryBool(CmdBeep)
}

// SetBeep enables or disables the beep.
func (d *Device) SetBeep(enable bool) error {
	return d.send(CmdBeep, SwitchFromBool(enable).Parameter())
}

// PlayPreset plays a stored preset.
func (d *Device) PlayPreset(p PlayPreset) error {
	if _, err := NewPlayPreset(int(p)); err != nil {
		return err
	}
	return d.send(CmdPreset, p.Parameter())
}

// VirtualBass queries VBS.
func (d *Device) VirtualBass() (bool, error) {
	return d.queryBool(CmdVirtualBass)
}

// SetVirtualBass switches virtual bass.
func (d *Device) SetVirtualBass(s Switch) error {
	return d.sendSwitch(CmdVirtualBass, s)
}

// LoopMode queries LPM.
func (d *Device) LoopMode() (LoopMode, error) {
	s, err := d.query(CmdLoopMode)
	if err != nil {
		return "", err
	}
	return ParseLoopMode(s)
}

// SetLoopMode sets the play order.
func (d *Device) SetLoopMode(m LoopMode) error {
	if _, err := ParseLoopMode(string(m)); err != nil {
		return err
	}
	return d.send(CmdLoopMode, []byte(m))
}

// Name queries NAM.
func (d *Device) Name() (string, error) {
	return d.query(CmdName)
}

// SetName renames the device. Only letters, digits, '-' and '+' survive
// the protocol.
func (d *Device) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidValue)
	}
	for _, c := range []byte(name) {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-' || c == '+') {
			return fmt.Errorf("%w: name %q", ErrInvalidValue, name)
		}
	}
	return d.send(CmdName, []byte(name))
}

func (d *Device) sendSwitch(command string, s Switch) error {
	param := s.Parameter()
	if param == nil {
		return fmt.Errorf("%w: %s", ErrInvalidValue, s)
	}
	return d.send(command, param)
}
