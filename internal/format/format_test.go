package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.99, "0"},
		{15.7, "15"},
		{999, "999"},
		{999.9, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{10000, "10.0K"},
		{999_999, "1000.0K"},
		{1_000_000, "1.0M"},
		{2_500_000, "2.5M"},
		{1_234_567_890, "1234.6M"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Number(c.in), "Number(%v)", c.in)
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, "", Rate(0))
	assert.Equal(t, "+0/sec", Rate(0.1))
	assert.Equal(t, "+126/sec", Rate(126.1))
	assert.Equal(t, "+1.5K/sec", Rate(1500))
}

func TestContribution(t *testing.T) {
	assert.Equal(t, "+0.1/sec", Contribution(0.1))
	assert.Equal(t, "+100/sec", Contribution(100))
}
