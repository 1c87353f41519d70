package mqtt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/golang/protobuf/jsonpb"
	structpb "github.com/golang/protobuf/ptypes/struct"

	"github.com/robotalks/up2stream/pkg/up2stream"
)

// Features accepted under <id>/set/.
const (
	FeatureVolume   = "volume"
	FeatureMute     = "mute"
	FeatureSource   = "source"
	FeatureBass     = "bass"
	FeatureTreble   = "treble"
	FeaturePlay     = "play"
	FeatureStop     = "stop"
	FeatureNext     = "next"
	FeaturePrevious = "previous"
	FeatureSystem   = "system"
)

// ErrUnknownFeature indicates a set topic naming no known feature.
var ErrUnknownFeature = errors.New("unknown feature")

// StatusListener receives every status change.
type StatusListener func(up2stream.Status)

// Bridge polls the board status into <id>/status and applies commands
// received on <id>/set/<feature>. Failures are reported on <id>/error.
type Bridge struct {
	ID string
	// Trigger, when set, is called after a command is applied so the
	// status is refreshed without waiting for the next poll.
	Trigger func()

	pubsub    PubSub
	device    *up2stream.Device
	deviceMu  sync.Mutex
	lock      sync.Mutex
	last      *up2stream.Status
	listeners []StatusListener
	subs      []*Subscription
}

// NewBridge creates a Bridge.
func NewBridge(id string, device *up2stream.Device, pubsub PubSub) *Bridge {
	return &Bridge{ID: id, device: device, pubsub: pubsub}
}

// StatusTopic is the retained status topic.
func (b *Bridge) StatusTopic() string {
	return b.ID + "/status"
}

// ErrorTopic receives failures.
func (b *Bridge) ErrorTopic() string {
	return b.ID + "/error"
}

// SetTopic is the command topic of feature.
func (b *Bridge) SetTopic(feature string) string {
	return b.ID + "/set/" + feature
}

// AddStatusListener registers a listener for status changes.
func (b *Bridge) AddStatusListener(l StatusListener) {
	b.lock.Lock()
	b.listeners = append(b.listeners, l)
	b.lock.Unlock()
}

// Subscribe subscribes the command topics.
func (b *Bridge) Subscribe() {
	sub := b.pubsub.Sub(b.SetTopic("+"), b.handleSet)
	b.lock.Lock()
	b.subs = append(b.subs, sub)
	b.lock.Unlock()
}

// Close unsubscribes the command topics.
func (b *Bridge) Close() error {
	b.lock.Lock()
	subs := b.subs
	b.subs = nil
	b.lock.Unlock()
	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Control implements framework.Controller. The status is published
// when it differs from the last published one.
func (b *Bridge) Control(ctx context.Context) error {
	b.deviceMu.Lock()
	st, err := b.device.Status()
	b.deviceMu.Unlock()
	if err != nil {
		b.publishError("status", err)
		return err
	}

	b.lock.Lock()
	changed := b.last == nil || *b.last != st
	if changed {
		b.last = &st
	}
	listeners := b.listeners
	b.lock.Unlock()
	if !changed {
		return nil
	}

	payload, err := EncodeStatus(st)
	if err != nil {
		return err
	}
	b.pubsub.PubWith(b.StatusTopic(), payload, 1, true)
	for _, l := range listeners {
		l(st)
	}
	return nil
}

// LastStatus returns the last published status.
func (b *Bridge) LastStatus() (up2stream.Status, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.last == nil {
		return up2stream.Status{}, false
	}
	return *b.last, true
}

// Apply executes feature with the value from payload.
func (b *Bridge) Apply(feature, value string) error {
	value = strings.TrimSpace(value)
	b.deviceMu.Lock()
	defer b.deviceMu.Unlock()
	switch feature {
	case FeatureVolume:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		v, err := up2stream.NewVolume(n)
		if err != nil {
			return err
		}
		return b.device.SetVolume(v)
	case FeatureMute:
		s, err := parseSwitch(value)
		if err != nil {
			return err
		}
		return b.device.SetMute(s)
	case FeatureSource:
		src, err := up2stream.ParseSource(strings.ToUpper(value))
		if err != nil {
			return err
		}
		return b.device.SelectInputSource(src)
	case FeatureBass:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		v, err := up2stream.NewBass(n)
		if err != nil {
			return err
		}
		return b.device.SetBass(v)
	case FeatureTreble:
		n, err := parseNumber(value)
		if err != nil {
			return err
		}
		v, err := up2stream.NewTreble(n)
		if err != nil {
			return err
		}
		return b.device.SetTreble(v)
	case FeaturePlay:
		return b.device.PlayPause()
	case FeatureStop:
		return b.device.Stop()
	case FeatureNext:
		return b.device.Next()
	case FeaturePrevious:
		return b.device.Previous()
	case FeatureSystem:
		c, err := up2stream.ParseSystemControl(strings.ToUpper(value))
		if err != nil {
			return err
		}
		return b.device.SystemControl(c)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
}

func (b *Bridge) handleSet(topic string, payload []byte) {
	feature := topic[strings.LastIndexByte(topic, '/')+1:]
	if err := b.Apply(feature, string(payload)); err != nil {
		glog.Errorf("set %s=%q: %v", feature, payload, err)
		b.publishError(feature, err)
		return
	}
	glog.V(1).Infof("set %s=%q", feature, payload)
	if fn := b.Trigger; fn != nil {
		fn()
	}
}

func (b *Bridge) publishError(feature string, err error) {
	payload, encErr := EncodeError(feature, err)
	if encErr != nil {
		glog.Errorf("encode error: %v", encErr)
		return
	}
	b.pubsub.PubWith(b.ErrorTopic(), payload, 0, false)
}

// EncodeError encodes a failure of feature as a JSON object.
func EncodeError(feature string, err error) ([]byte, error) {
	m := jsonpb.Marshaler{}
	str, encErr := m.MarshalToString(&structpb.Struct{Fields: map[string]*structpb.Value{
		"feature": stringValue(feature),
		"error":   stringValue(err.Error()),
	}})
	return []byte(str), encErr
}

func parseNumber(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", up2stream.ErrInvalidValue, value)
	}
	return n, nil
}

func parseSwitch(value string) (up2stream.Switch, error) {
	if s, err := up2stream.ParseSwitch(strings.ToUpper(value)); err == nil {
		return s, nil
	}
	on, err := strconv.ParseBool(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", up2stream.ErrInvalidValue, value)
	}
	return up2stream.SwitchFromBool(on), nil
}
