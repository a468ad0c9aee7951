package datamap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestText(t *testing.T) {
	f := float32(-12.25)
	var nilF *float32
	yes := true
	u := uint16(7)

	testCases := []struct {
		name     string
		value    cty.Value
		expected string
	}{
		{name: "string", value: cty.StringVal("Port"), expected: "Port"},
		{name: "true", value: cty.True, expected: "true"},
		{name: "false", value: cty.False, expected: "false"},
		{name: "int", value: Int(int8(-3)), expected: "-3"},
		{name: "uint", value: Uint(uint8(200)), expected: "200"},
		{name: "float32 shortest form", value: Float32(0.1), expected: "0.1"},
		{name: "float32 whole number", value: Float32(60), expected: "60"},
		{name: "float32 negative zero", value: Float32(float32(math.Copysign(0, -1))), expected: "0"},
		{name: "float32 NaN", value: Float32(float32(math.NaN())), expected: ""},
		{name: "optional float set", value: OptFloat32(&f), expected: "-12.25"},
		{name: "optional float nil", value: OptFloat32(nilF), expected: ""},
		{name: "optional bool", value: OptBool(&yes), expected: "true"},
		{name: "optional bool nil", value: OptBool(nil), expected: ""},
		{name: "optional uint", value: OptUint(&u), expected: "7"},
		{name: "optional uint nil", value: OptUint[uint8](nil), expected: ""},
		{name: "dynamic null", value: cty.NullVal(cty.DynamicPseudoType), expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Text(tc.value))
		})
	}
}

func TestText_PanicsOnCollections(t *testing.T) {
	assert.Panics(t, func() { Text(cty.ListVal([]cty.Value{cty.True})) })
}
