// Package serialport opens the board's UART through go.bug.st/serial.
package serialport

import (
	"fmt"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/robotalks/up2stream/pkg/uart"
)

// Config describes the serial link. The board talks 115200 8N1 without
// flow control.
type Config struct {
	Device      string
	BaudRate    int
	ReadTimeout time.Duration
}

// Defaults.
const (
	DefaultBaudRate    = 115200
	DefaultReadTimeout = 100 * time.Millisecond
)

// DefaultConfig returns the settings of the board's UART on device.
func DefaultConfig(device string) Config {
	return Config{
		Device:      device,
		BaudRate:    DefaultBaudRate,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Port is a uart.Transport backed by an OS serial port. A read timeout
// is reported as uart.ErrWouldBlock.
type Port struct {
	*uart.StreamTransport
	port serial.Port
}

// Open opens and configures the serial port.
func Open(conf Config) (*Port, error) {
	if conf.Device == "" {
		return nil, fmt.Errorf("serial device not specified")
	}
	mode := &serial.Mode{
		BaudRate: conf.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(conf.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Device, err)
	}
	if err := port.SetReadTimeout(conf.ReadTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", conf.Device, err)
	}
	// discard boot banners received before we were listening.
	if err := port.ResetInputBuffer(); err != nil {
		glog.Warningf("reset input buffer of %s: %v", conf.Device, err)
	}
	glog.Infof("opened %s at %d baud", conf.Device, conf.BaudRate)
	return &Port{StreamTransport: uart.NewStreamTransport(port), port: port}, nil
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.port.Close()
}

// List returns the names of serial ports present on the system.
func List() ([]string, error) {
	return serial.GetPortsList()
}
