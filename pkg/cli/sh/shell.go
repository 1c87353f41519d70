package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/up2stream/pkg/config"
	"github.com/robotalks/up2stream/pkg/uart"
	"github.com/robotalks/up2stream/pkg/uart/serialport"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Config *config.Config
	Device *up2stream.Device

	closer func() error
	opener func(*config.Config) (*uart.Engine, func() error, error)
}

// DeviceFunc runs a command against the device. A nil result is
// printed as OK.
type DeviceFunc func(dev *up2stream.Device, args []string) (interface{}, error)

const (
	shellKey     = "$shell"
	closedPrompt = "[closed] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
		&OpenCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *config.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
		opener: (*config.Config).Open,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Open opens the serial port from Config. The current port is closed
// first as serial ports are opened exclusively.
func (s *Shell) Open() error {
	s.Close()
	engine, closer, err := s.opener(s.Config)
	if err != nil {
		return err
	}
	s.Device, s.closer = up2stream.NewWithEngine(engine), closer
	s.setPrompt(fmt.Sprintf("%s > ", s.Config.SerialPort))
	return nil
}

// Close closes the serial port.
func (s *Shell) Close() {
	if s.closer != nil {
		if err := s.closer(); err != nil {
			log.Printf("close: %v", err)
		}
	}
	s.Device, s.closer = nil, nil
	s.setPrompt(closedPrompt)
}

func (s *Shell) setPrompt(prompt string) {
	if s.Shell != nil {
		s.Shell.SetPrompt(prompt)
	}
}

// Format renders the result of a DeviceFunc.
func Format(v interface{}, asJSON bool) (string, error) {
	if v == nil {
		return "OK", nil
	}
	if asJSON {
		out, err := json.Marshal(v)
		return string(out), err
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case fmt.Stringer:
		return val.String(), nil
	case bool:
		if val {
			return "on", nil
		}
		return "off", nil
	}
	return fmt.Sprintf("%+v", v), nil
}

// Do runs fn with the opened device and prints the result.
func Do(c *ishell.Context, fn DeviceFunc) error {
	s := ShellFrom(c)
	if s.Device == nil {
		err := fmt.Errorf("serial port not opened")
		c.Err(err)
		return err
	}
	res, err := fn(s.Device, c.Args)
	if err == nil {
		var out string
		if out, err = Format(res, s.OutputJSON); err == nil {
			c.Println(out)
			return nil
		}
	}
	c.Err(err)
	return err
}

// DeviceCmd creates a command running fn.
func DeviceCmd(name, help string, fn DeviceFunc, aliases ...string) *ishell.Cmd {
	return &ishell.Cmd{
		Name:    name,
		Aliases: aliases,
		Help:    help,
		Func: func(c *ishell.Context) {
			Do(c, fn)
		},
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.Config.SerialPort != "" {
		if err := s.Open(); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.SerialPort, err)
		}
		defer s.Close()
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ports, err := serialport.List()
			if err != nil {
				c.Err(err)
				return
			}
			if ShellFrom(c).OutputJSON {
				out, _ := json.Marshal(ports)
				c.Println(string(out))
				return
			}
			c.Println(strings.Join(ports, "\n"))
		},
	}

	// OpenCmd opens a serial port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[PORT]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.SerialPort = c.Args[0]
			}
			if err := s.Open(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the serial port.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Help: "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(config.NewConfig()).Run(flag.Args()...)
}
