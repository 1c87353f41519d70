package main

import (
	"flag"
	"log"
	"strings"

	"github.com/robotalks/up2stream/pkg/config"
	fx "github.com/robotalks/up2stream/pkg/framework"
	"github.com/robotalks/up2stream/pkg/mqtt"
)

func init() {
	config.SetupBridgeFlags()
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	conf := config.Default()
	q, err := mqtt.NewQueueFromURL(conf.MQTTBrokerURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if !strings.HasSuffix(topic, "/status") {
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		st, err := mqtt.DecodeStatus(payload)
		if err != nil {
			log.Printf("%s: bad status: %v", topic, err)
			return
		}
		log.Printf("%s: %+v", topic, st)
	}))

	if err := fx.NewRunner().HandleSignals().Go(q).Wait(); err != nil {
		log.Fatalln(err)
	}
}
