package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogfWritesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	assert.True(t, Enabled())
	Logf("sink: %s missing", "fail")

	assert.Contains(t, buf.String(), "[DEBUG ")
	assert.Contains(t, buf.String(), "sink: fail missing\n")
}

func TestSetOutputRestores(t *testing.T) {
	before := Enabled()
	restore := SetOutput(&bytes.Buffer{})
	restore()
	assert.Equal(t, before, Enabled())
}
