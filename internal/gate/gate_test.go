package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexander-akhmetov/chime/internal/event"
)

type recordingSink struct {
	played []event.Kind
}

func (s *recordingSink) Play(kind event.Kind) { s.played = append(s.played, kind) }

func TestConfigEnabledDefaultsToTrue(t *testing.T) {
	var cfg Config
	for _, k := range event.AllKinds() {
		assert.True(t, cfg.Enabled(k), k.String())
	}

	cfg.Kinds = map[event.Kind]bool{event.Fail: false}
	assert.False(t, cfg.Enabled(event.Fail))
	assert.True(t, cfg.Enabled(event.Success))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.GlobalEnabled)
	assert.Len(t, cfg.Kinds, 5)
	for _, on := range cfg.Kinds {
		assert.True(t, on)
	}
}

func TestGateSuppressionIsPerKind(t *testing.T) {
	for _, disabled := range event.AllKinds() {
		t.Run(disabled.String(), func(t *testing.T) {
			sink := &recordingSink{}
			g := New(ConfigFunc(func() Config {
				return Config{GlobalEnabled: true, Kinds: map[event.Kind]bool{disabled: false}}
			}), sink)

			for _, k := range event.AllKinds() {
				forwarded := g.Forward(k)
				assert.Equal(t, k != disabled, forwarded, k.String())
			}

			assert.Len(t, sink.played, 4)
			assert.NotContains(t, sink.played, disabled)
		})
	}
}

func TestGateRereadsConfigEveryCheck(t *testing.T) {
	enabled := true
	reads := 0
	g := New(ConfigFunc(func() Config {
		reads++
		return Config{Kinds: map[event.Kind]bool{event.Warning: enabled}}
	}), &recordingSink{})

	assert.True(t, g.ShouldForward(event.Warning))
	enabled = false
	assert.False(t, g.ShouldForward(event.Warning))
	enabled = true
	assert.True(t, g.ShouldForward(event.Warning))
	assert.Equal(t, 3, reads)
}

func TestGateIgnoresGlobalFlag(t *testing.T) {
	sink := &recordingSink{}
	g := New(ConfigFunc(func() Config { return Config{GlobalEnabled: false} }), sink)

	assert.True(t, g.Forward(event.Success))
	assert.Equal(t, []event.Kind{event.Success}, sink.played)
}
