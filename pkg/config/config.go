// Package config provides the command line and environment configuration
// shared by the up2stream binaries.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	"github.com/robotalks/up2stream/pkg/uart"
	"github.com/robotalks/up2stream/pkg/uart/serialport"
)

// Config provides the options to reach a board and publish it.
type Config struct {
	// SerialPort is the device path of the UART, e.g. /dev/ttyUSB0.
	SerialPort  string
	BaudRate    int
	ReadTimeout time.Duration

	MaxResends    int
	MaxIdlePolls  int
	MaxStallPolls int

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// DeviceID names the board in MQTT topics.
	DeviceID     string
	PollInterval time.Duration
	// FeedAddr is the listen address of the websocket status feed,
	// disabled when empty.
	FeedAddr string
}

// Environment variables overriding the defaults.
const (
	EnvSerialPort = "UP2STREAM_PORT"
	EnvBaudRate   = "UP2STREAM_BAUD"
	EnvMQTTURL    = "UP2STREAM_MQTT_URL"
	EnvDeviceID   = "UP2STREAM_ID"
	EnvFeedAddr   = "UP2STREAM_FEED_ADDR"
)

var defaultConfig = Config{
	BaudRate:      serialport.DefaultBaudRate,
	ReadTimeout:   serialport.DefaultReadTimeout,
	MaxResends:    uart.DefaultMaxResends,
	MaxIdlePolls:  uart.DefaultMaxIdlePolls,
	MaxStallPolls: uart.DefaultMaxStallPolls,
	MQTTBrokerURL: "mqtt://localhost:1883/up2stream/",
	PollInterval:  2 * time.Second,
}

func init() {
	defaultConfig.DeviceID = machineID()
	ApplyEnv(&defaultConfig, os.Getenv)
}

func machineID() string {
	id, err := machineid.ProtectedID("up2stream")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "up2stream"
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}

// ApplyEnv overrides conf from environment variables looked up by getenv.
func ApplyEnv(conf *Config, getenv func(string) string) {
	if val := getenv(EnvSerialPort); val != "" {
		conf.SerialPort = val
	}
	if val := getenv(EnvBaudRate); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			conf.BaudRate = baud
		} else {
			glog.Warningf("ignore %s=%q: %v", EnvBaudRate, val, err)
		}
	}
	if val := getenv(EnvMQTTURL); val != "" {
		conf.MQTTBrokerURL = val
	}
	if val := getenv(EnvDeviceID); val != "" {
		conf.DeviceID = val
	}
	if val := getenv(EnvFeedAddr); val != "" {
		conf.FeedAddr = val
	}
}

// SetupFlags sets command line flags for the serial link.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SerialPort, "port", defaultConfig.SerialPort, "Serial device of the board")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Baud rate")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Serial read timeout")
	flag.IntVar(&defaultConfig.MaxResends, "resends", defaultConfig.MaxResends, "Max resends of an unanswered query")
	flag.IntVar(&defaultConfig.MaxIdlePolls, "idle-polls", defaultConfig.MaxIdlePolls, "Read timeouts tolerated before the reply starts")
	flag.IntVar(&defaultConfig.MaxStallPolls, "stall-polls", defaultConfig.MaxStallPolls, "Read timeouts tolerated inside a reply (0 waits forever)")
}

// SetupBridgeFlags sets command line flags for publishing the board.
func SetupBridgeFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL")
	flag.StringVar(&defaultConfig.DeviceID, "id", defaultConfig.DeviceID, "Device ID used in topics")
	flag.DurationVar(&defaultConfig.PollInterval, "poll", defaultConfig.PollInterval, "Status poll interval")
	flag.StringVar(&defaultConfig.FeedAddr, "feed", defaultConfig.FeedAddr, "Listen address of websocket status feed")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// SerialConfig returns the serial port settings.
func (c *Config) SerialConfig() serialport.Config {
	return serialport.Config{
		Device:      c.SerialPort,
		BaudRate:    c.BaudRate,
		ReadTimeout: c.ReadTimeout,
	}
}

// EngineConfig returns the protocol engine settings.
func (c *Config) EngineConfig() uart.Config {
	conf := uart.DefaultConfig()
	conf.MaxResends = c.MaxResends
	conf.MaxIdlePolls = c.MaxIdlePolls
	conf.MaxStallPolls = c.MaxStallPolls
	return conf
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.SerialPort == "" {
		return fmt.Errorf("serial port must be specified (-port or %s)", EnvSerialPort)
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	return c.EngineConfig().Validate()
}

// Open opens the serial port and creates the engine on it. The returned
// closer releases the port.
func (c *Config) Open() (*uart.Engine, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	port, err := serialport.Open(c.SerialConfig())
	if err != nil {
		return nil, nil, err
	}
	engine, err := uart.NewWithConfig(port, c.EngineConfig())
	if err != nil {
		port.Close()
		return nil, nil, err
	}
	return engine, port.Close, nil
}
