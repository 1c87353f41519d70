package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/up2stream/pkg/config"
	"github.com/robotalks/up2stream/pkg/feed"
	fx "github.com/robotalks/up2stream/pkg/framework"
	"github.com/robotalks/up2stream/pkg/mqtt"
	"github.com/robotalks/up2stream/pkg/up2stream"
)

func init() {
	config.SetupFlags()
	config.SetupBridgeFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := config.NewConfig()
	engine, closePort, err := conf.Open()
	if err != nil {
		glog.Exitf("open %q: %v", conf.SerialPort, err)
	}
	defer closePort()

	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(conf.MQTTBrokerURL)
	if err != nil {
		glog.Exitf("invalid MQTT URL %q: %v", conf.MQTTBrokerURL, err)
	}
	if opts.ClientID == "" {
		opts.SetClientID("up2stream:" + conf.DeviceID)
	}
	queue := mqtt.NewQueue(opts, topicPrefix)

	loop := fx.NewLoop(conf.PollInterval)
	bridge := mqtt.NewBridge(conf.DeviceID, up2stream.NewWithEngine(engine), queue)
	bridge.Trigger = loop.TriggerNext
	bridge.Subscribe()
	defer bridge.Close()
	loop.AddController(bridge)

	runner := fx.NewRunner().HandleSignals()
	if conf.FeedAddr != "" {
		f := feed.New()
		bridge.AddStatusListener(f.Publish)
		runner.Go(fx.NamedRun("feed", &feed.Server{Addr: conf.FeedAddr, Feed: f}))
	}
	glog.Infof("bridging %s as %s%s", conf.SerialPort, topicPrefix, conf.DeviceID)
	err = runner.Go(
		fx.NamedRun("mqtt", queue),
		fx.NamedRun("loop", loop),
	).Wait()
	if err != nil {
		glog.Errorf("exit: %v", err)
	}
}
