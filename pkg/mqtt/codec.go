package mqtt

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/protobuf/jsonpb"
	structpb "github.com/golang/protobuf/ptypes/struct"

	"github.com/robotalks/up2stream/pkg/up2stream"
)

// ErrInvalidPayload indicates a payload which can't be decoded.
var ErrInvalidPayload = errors.New("invalid payload")

// Status payload keys.
const (
	KeySource    = "source"
	KeyMute      = "mute"
	KeyVolume    = "volume"
	KeyTreble    = "treble"
	KeyBass      = "bass"
	KeyNet       = "net"
	KeyInternet  = "internet"
	KeyPlaying   = "playing"
	KeyLED       = "led"
	KeyUpgrading = "upgrading"
)

func stringValue(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}

func numberValue(n int) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: float64(n)}}
}

func boolValue(b bool) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_BoolValue{BoolValue: b}}
}

// StatusStruct converts st into a protobuf Struct.
func StatusStruct(st up2stream.Status) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		KeySource:    stringValue(string(st.Source)),
		KeyMute:      boolValue(st.Mute),
		KeyVolume:    numberValue(int(st.Volume)),
		KeyTreble:    numberValue(int(st.Treble)),
		KeyBass:      numberValue(int(st.Bass)),
		KeyNet:       boolValue(st.Net),
		KeyInternet:  boolValue(st.Internet),
		KeyPlaying:   boolValue(st.Playing),
		KeyLED:       boolValue(st.LED),
		KeyUpgrading: boolValue(st.Upgrading),
	}}
}

// EncodeStatus encodes st as a JSON object.
func EncodeStatus(st up2stream.Status) ([]byte, error) {
	m := jsonpb.Marshaler{}
	str, err := m.MarshalToString(StatusStruct(st))
	if err != nil {
		return nil, err
	}
	return []byte(str), nil
}

type structReader struct {
	fields map[string]*structpb.Value
	err    error
}

func (r *structReader) value(key string) *structpb.Value {
	if r.err != nil {
		return nil
	}
	v := r.fields[key]
	if v == nil {
		r.err = fmt.Errorf("%w: missing %q", ErrInvalidPayload, key)
	}
	return v
}

func (r *structReader) str(key string) string {
	v := r.value(key)
	if v == nil {
		return ""
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		r.err = fmt.Errorf("%w: %q is not a string", ErrInvalidPayload, key)
		return ""
	}
	return s.StringValue
}

func (r *structReader) number(key string) int {
	v := r.value(key)
	if v == nil {
		return 0
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		r.err = fmt.Errorf("%w: %q is not an integer", ErrInvalidPayload, key)
		return 0
	}
	return int(n.NumberValue)
}

func (r *structReader) boolean(key string) bool {
	v := r.value(key)
	if v == nil {
		return false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		r.err = fmt.Errorf("%w: %q is not a boolean", ErrInvalidPayload, key)
		return false
	}
	return b.BoolValue
}

// DecodeStatus decodes a payload produced by EncodeStatus.
func DecodeStatus(payload []byte) (st up2stream.Status, err error) {
	var s structpb.Struct
	if err = jsonpb.UnmarshalString(string(payload), &s); err != nil {
		return st, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	r := &structReader{fields: s.Fields}
	src := r.str(KeySource)
	volume, treble, bass := r.number(KeyVolume), r.number(KeyTreble), r.number(KeyBass)
	st.Mute = r.boolean(KeyMute)
	st.Net = r.boolean(KeyNet)
	st.Internet = r.boolean(KeyInternet)
	st.Playing = r.boolean(KeyPlaying)
	st.LED = r.boolean(KeyLED)
	st.Upgrading = r.boolean(KeyUpgrading)
	if r.err != nil {
		return st, r.err
	}
	if st.Source, err = up2stream.ParseSource(src); err != nil {
		return
	}
	if st.Volume, err = up2stream.NewVolume(volume); err != nil {
		return
	}
	if st.Treble, err = up2stream.NewTreble(treble); err != nil {
		return
	}
	st.Bass, err = up2stream.NewBass(bass)
	return
}
