package models

import (
	"errors"
	"fmt"
)

// Attribute names one channel of a transfer function.
type Attribute string

const (
	AttributeRed           Attribute = "red"
	AttributeGreen         Attribute = "green"
	AttributeBlue          Attribute = "blue"
	AttributeAlpha         Attribute = "alpha"
	AttributeLightEmission Attribute = "emission"
)

// ErrUnknownAttribute is returned for a channel name outside the five known ones.
var ErrUnknownAttribute = errors.New("unknown transfer function attribute")

// channelOrder is the order channels are listed and transmitted in.
var channelOrder = []Attribute{
	AttributeRed,
	AttributeGreen,
	AttributeBlue,
	AttributeAlpha,
	AttributeLightEmission,
}

// Valid reports whether a is one of the known channel names.
func (a Attribute) Valid() bool {
	for _, c := range channelOrder {
		if a == c {
			return true
		}
	}
	return false
}

// ControlPoint maps a simulation value X to a channel intensity Y.
type ControlPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TransferFunction maps each color channel to a piecewise-linear list of
// control points. Points keep the order they were given in.
type TransferFunction struct {
	points map[Attribute][]ControlPoint
}

// NewTransferFunction returns a function with empty red, green, blue and
// alpha channels. The emission channel exists once it has been set.
func NewTransferFunction() *TransferFunction {
	return &TransferFunction{points: map[Attribute][]ControlPoint{
		AttributeRed:   {},
		AttributeGreen: {},
		AttributeBlue:  {},
		AttributeAlpha: {},
	}}
}

// Attributes lists the channels present in the function.
func (tf *TransferFunction) Attributes() []Attribute {
	var attrs []Attribute
	for _, a := range channelOrder {
		if _, ok := tf.points[a]; ok {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// ControlPoints returns a copy of the points of one channel.
func (tf *TransferFunction) ControlPoints(a Attribute) []ControlPoint {
	return append([]ControlPoint(nil), tf.points[a]...)
}

// SetControlPoints replaces the points of one channel, leaving the others alone.
func (tf *TransferFunction) SetControlPoints(a Attribute, points []ControlPoint) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, a)
	}
	if tf.points == nil {
		*tf = *NewTransferFunction()
	}
	tf.points[a] = append(make([]ControlPoint, 0, len(points)), points...)
	return nil
}

type channelDocument struct {
	Attribute Attribute      `json:"attribute"`
	Points    []ControlPoint `json:"points"`
}

type transferFunctionDocument struct {
	Channels []channelDocument `json:"channels"`
}

func (tf *TransferFunction) channel(a Attribute) channelDocument {
	return channelDocument{Attribute: a, Points: append([]ControlPoint{}, tf.points[a]...)}
}

// SerializeChannel encodes a single channel as {"attribute", "points"}.
func (tf *TransferFunction) SerializeChannel(a Attribute) ([]byte, error) {
	if _, ok := tf.points[a]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, a)
	}
	return json.Marshal(tf.channel(a))
}

// Serialize encodes every channel into one {"channels": [...]} document.
func (tf *TransferFunction) Serialize() ([]byte, error) {
	doc := transferFunctionDocument{Channels: []channelDocument{}}
	for _, a := range tf.Attributes() {
		doc.Channels = append(doc.Channels, tf.channel(a))
	}
	return json.Marshal(doc)
}

// SerializeLastChannel encodes only the last channel present, which is all
// that older render servers ever received for a transfer function.
func (tf *TransferFunction) SerializeLastChannel() ([]byte, error) {
	attrs := tf.Attributes()
	if len(attrs) == 0 {
		return nil, errors.New("transfer function has no channels")
	}
	return tf.SerializeChannel(attrs[len(attrs)-1])
}

// Deserialize replaces the function with a {"channels": [...]} document.
func (tf *TransferFunction) Deserialize(data []byte) error {
	doc, err := decodeDocument(data)
	if err != nil {
		return err
	}
	var channels []jsonChannel
	if err := doc.field("channels", &channels); err != nil {
		return err
	}
	out := NewTransferFunction()
	for i, c := range channels {
		if c.Attribute == nil {
			return fmt.Errorf("%w \"channels[%d].attribute\"", ErrMissingKey, i)
		}
		if c.Points == nil {
			return fmt.Errorf("%w \"channels[%d].points\"", ErrMissingKey, i)
		}
		if err := out.SetControlPoints(*c.Attribute, *c.Points); err != nil {
			return err
		}
	}
	*tf = *out
	return nil
}

type jsonChannel struct {
	Attribute *Attribute      `json:"attribute"`
	Points    *[]ControlPoint `json:"points"`
}

func (tf TransferFunction) MarshalJSON() ([]byte, error)     { return tf.Serialize() }
func (tf *TransferFunction) UnmarshalJSON(data []byte) error { return tf.Deserialize(data) }
