package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurry2(t *testing.T) {
	rotate := Curry2(AdjustHue[float64])
	half := rotate(180)

	got, err := half(Text("#448"))
	require.NoError(t, err)
	assert.Equal(t, "#888844", got)

	direct, err := AdjustHue(180.0, Text("#448"))
	require.NoError(t, err)
	assert.Equal(t, direct, got)
}

func TestCurry3(t *testing.T) {
	mix := Curry3(Mix[string])

	got, err := mix("0.25")(Text("#00f"))(Text("#fff"))
	require.NoError(t, err)
	assert.Equal(t, "#bfbfff", got)
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name string
		t    Transform
		in   Input
		want string
	}{
		{"AdjustHueBy", AdjustHueBy(180), Text("#448"), "#888844"},
		{"AdjustHueBy string", AdjustHueBy("180"), Text("#448"), "#888844"},
		{"SaturateBy", SaturateBy(0.2), Text("#CCCD64"), "#e0e250"},
		{"DesaturateBy", DesaturateBy(1), Text("red"), "#808080"},
		{"LightenBy", LightenBy(0.5), Text("black"), "#808080"},
		{"DarkenBy", DarkenBy(0.5), Text("white"), "#808080"},
		{"TintBy", TintBy(0.25), Text("#00f"), "#bfbfff"},
		{"ShadeBy", ShadeBy(0.5), Text("#fff"), "#808080"},
		{"MixWith", MixWith(0.5, Text("#f00")), Text("#00f"), "#800080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.t(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPipe(t *testing.T) {
	p := Pipe(AdjustHueBy(90), AdjustHueBy(90))
	got, err := p(Text("#448"))
	require.NoError(t, err)
	assert.Equal(t, "#888844", got)

	identity := Pipe()
	got, err = identity(Text("RGBA(10, 20, 30, 0.5)"))
	require.NoError(t, err)
	assert.Equal(t, "rgba(10,20,30,0.5)", got)

	fails := Pipe(SaturateBy("x"), TintBy(0.5))
	_, err = fails(Text("#fff"))
	var aerr *AmountError
	assert.ErrorAs(t, err, &aerr)

	_, err = p(Text("nope"))
	assert.ErrorIs(t, err, ErrInvalidColor)
}
