package homework

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjkrol/gohw/internal/platform"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		in   platform.Event
		want Event
	}{
		{platform.KeyPress{Code: 41, Label: "Escape"}, KeyPress{Code: 41, Label: "Escape"}},
		{platform.ButtonRelease{Button: platform.ButtonRight, X: 3, Y: 4}, ButtonRelease{Button: 3, X: 3, Y: 4}},
		{platform.MouseWheel{DeltaY: -1, X: 1, Y: 2}, MouseWheel{DeltaY: -1, X: 1, Y: 2}},
		{platform.Resize{Width: 640, Height: 480}, Resize{Width: 640, Height: 480}},
		{platform.DestroyNotify{}, DestroyNotify{}},
		{platform.TimeoutEvent{}, UnexpectedEvent{}},
		{nil, UnexpectedEvent{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, convert(tc.in))
	}
}
