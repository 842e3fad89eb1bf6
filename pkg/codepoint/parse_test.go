package codepoint

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input string
		want  rune
		ok    bool
	}{
		// prefixed hex
		{"U+1F600", 0x1F600, true},
		{"u+1f600", 0x1F600, true},
		{"0x2764", 0x2764, true},
		{"0X2764", 0x2764, true},
		{`\u00e9`, 0xE9, true},
		{"&#x2764;", 0x2764, true},
		{"&#X2764", 0x2764, true},

		// bare hex
		{"2764", 0x2764, true},
		{"a", 0xA, true},
		{"10ffff", Max, true},
		{"0", 0, true},
		{"000000041", 0x41, true},
		{"U+0000000010FFFF", Max, true},
		{"0000", 0, true},

		// decimal entity
		{"&#10084;", 10084, true},
		{"&#65", 65, true},
		{"&#0000000065;", 65, true},

		// whitespace
		{"  U+41 ", 0x41, true},
		{"\t2764\n", 0x2764, true},

		// no value
		{"", 0, false},
		{"   ", 0, false},
		{"heart", 0, false},
		{"U+", 0, false},
		{"0x", 0, false},
		{"U+12G4", 0, false},
		{"0x-1", 0, false},
		{"&#12a;", 0, false},
		{"110000", 0, false},
		{"U+110000", 0, false},
		{"&#1114112;", 0, false},
		{"123456789", 0, false},
		{"0000000110000", 0, false},
		{"+41", 0, false},
		{"4 1", 0, false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.input), func(t *testing.T) {
			got, ok := Parse(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseHexRoundTrip(t *testing.T) {
	for c := rune(0); c <= Max; c++ {
		got, ok := Parse(Hex(c))
		if !ok || got != c {
			t.Fatalf("Parse(%q) = %#x, %v; want %#x, true", Hex(c), got, ok, c)
		}
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "2764", Hex(0x2764))
	assert.Equal(t, "1f600", Hex(0x1F600))
	assert.Equal(t, "0", Hex(0))
}
