package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLetterOrUnderscoreOrNumber(t *testing.T) {
	testData := []struct {
		b      byte
		expect bool
	}{
		{b: 'a', expect: true},
		{b: 'Z', expect: true},
		{b: '_', expect: true},
		{b: '7', expect: true},
		{b: '-', expect: false},
		{b: ' ', expect: false},
		{b: 0xC3, expect: false},
	}
	for _, data := range testData {
		assert.Equal(t, data.expect, IsLetterOrUnderscoreOrNumber(data.b), string(data.b))
	}
}

func TestIsLetterOrUnderscore(t *testing.T) {
	assert.True(t, IsLetterOrUnderscore('_'))
	assert.True(t, IsLetterOrUnderscore('q'))
	assert.False(t, IsLetterOrUnderscore('1'))
}

func TestIsSpace(t *testing.T) {
	for _, b := range []byte{' ', '\t', '\r', '\n'} {
		assert.True(t, IsSpace(b))
	}
	assert.False(t, IsSpace('x'))
	assert.True(t, IsNewLine('\n'))
	assert.False(t, IsNewLine('\r'))
}
