package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *stubPlugin) Name() string { return p.name }

func (p *stubPlugin) Initialize(api API) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *stubPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown "+p.name)
	return nil
}

func TestManagerLifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&stubPlugin{name: "b", log: &log}))
	require.NoError(t, m.Register(&stubPlugin{name: "a", initErr: errors.New("boom"), log: &log}))

	assert.Error(t, m.Register(&stubPlugin{name: "b", log: &log}))
	assert.Error(t, m.Register(&stubPlugin{name: "", log: &log}))

	m.InitializePlugins(nil)
	m.ShutdownPlugins()
	assert.Equal(t, []string{"init b", "init a", "shutdown a", "shutdown b"}, log)

	assert.Equal(t, []string{"a", "b"}, m.Names())
	p, ok := m.GetPlugin("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Name())
	_, ok = m.GetPlugin("zzz")
	assert.False(t, ok)
}
