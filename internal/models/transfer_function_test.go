package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var redPoints = []ControlPoint{
	{-92.0915, 0.1}, {-61.0, 0.1}, {-50.0, 0.8}, {0.0, 0.0}, {49.5497, 1},
}

func TestTransferFunctionKeepsInsertionOrder(t *testing.T) {
	tf := NewTransferFunction()
	// deliberately unsorted and with a duplicate
	points := []ControlPoint{{5, 1}, {-3, 0}, {5, 1}, {0, 0.5}}
	require.NoError(t, tf.SetControlPoints(AttributeBlue, points))
	assert.Equal(t, points, tf.ControlPoints(AttributeBlue))
}

func TestTransferFunctionReplaceOnlyTouchesOneChannel(t *testing.T) {
	tf := NewTransferFunction()
	require.NoError(t, tf.SetControlPoints(AttributeRed, redPoints))
	require.NoError(t, tf.SetControlPoints(AttributeAlpha, []ControlPoint{{0, 1}}))
	require.NoError(t, tf.SetControlPoints(AttributeRed, []ControlPoint{{1, 1}}))

	assert.Equal(t, []ControlPoint{{1, 1}}, tf.ControlPoints(AttributeRed))
	assert.Equal(t, []ControlPoint{{0, 1}}, tf.ControlPoints(AttributeAlpha))
	assert.Empty(t, tf.ControlPoints(AttributeGreen))
}

func TestTransferFunctionControlPointsIsACopy(t *testing.T) {
	tf := NewTransferFunction()
	input := []ControlPoint{{0, 0}}
	require.NoError(t, tf.SetControlPoints(AttributeRed, input))
	input[0].X = 99
	got := tf.ControlPoints(AttributeRed)
	got[0].Y = 42
	assert.Equal(t, []ControlPoint{{0, 0}}, tf.ControlPoints(AttributeRed))
}

func TestTransferFunctionAttributes(t *testing.T) {
	tf := NewTransferFunction()
	assert.Equal(t, []Attribute{AttributeRed, AttributeGreen, AttributeBlue, AttributeAlpha}, tf.Attributes())

	require.NoError(t, tf.SetControlPoints(AttributeLightEmission, []ControlPoint{{0, 0}}))
	assert.Equal(t, AttributeLightEmission, tf.Attributes()[4])

	assert.ErrorIs(t, tf.SetControlPoints("purple", nil), ErrUnknownAttribute)
}

func TestTransferFunctionSerialize(t *testing.T) {
	tf := NewTransferFunction()
	require.NoError(t, tf.SetControlPoints(AttributeRed, []ControlPoint{{-92.0915, 0.1}, {49.5497, 1}}))
	require.NoError(t, tf.SetControlPoints(AttributeAlpha, []ControlPoint{{-92.0915, 1}}))

	data, err := tf.Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, `{"channels": [
		{"attribute": "red", "points": [{"x": -92.0915, "y": 0.1}, {"x": 49.5497, "y": 1}]},
		{"attribute": "green", "points": []},
		{"attribute": "blue", "points": []},
		{"attribute": "alpha", "points": [{"x": -92.0915, "y": 1}]}
	]}`, string(data))

	last, err := tf.SerializeLastChannel()
	require.NoError(t, err)
	assert.JSONEq(t, `{"attribute": "alpha", "points": [{"x": -92.0915, "y": 1}]}`, string(last))

	green, err := tf.SerializeChannel(AttributeGreen)
	require.NoError(t, err)
	assert.JSONEq(t, `{"attribute": "green", "points": []}`, string(green))
}

func TestTransferFunctionRoundTrip(t *testing.T) {
	want := NewTransferFunction()
	require.NoError(t, want.SetControlPoints(AttributeRed, redPoints))
	require.NoError(t, want.SetControlPoints(AttributeLightEmission, []ControlPoint{{0, 0.5}}))

	data, err := want.Serialize()
	require.NoError(t, err)

	got := NewTransferFunction()
	require.NoError(t, got.Deserialize(data))
	for _, a := range want.Attributes() {
		assert.Equal(t, want.ControlPoints(a), got.ControlPoints(a), a)
	}
	assert.Equal(t, want.Attributes(), got.Attributes())
}

func TestTransferFunctionDeserializeErrors(t *testing.T) {
	tf := NewTransferFunction()
	assert.ErrorIs(t, tf.Deserialize([]byte(`{}`)), ErrMissingKey)
	assert.ErrorIs(t, tf.Deserialize([]byte(`{"channels": [{"points": []}]}`)), ErrMissingKey)
	assert.ErrorIs(t, tf.Deserialize([]byte(`{"channels": [{"attribute": "cyan", "points": []}]}`)), ErrUnknownAttribute)
}
