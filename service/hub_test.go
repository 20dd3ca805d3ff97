package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	journal *[]string
	stops   int
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }
func (f *fakeService) Init() error {
	*f.journal = append(*f.journal, "init:"+f.name)
	return f.initErr
}
func (f *fakeService) Start() error {
	*f.journal = append(*f.journal, "start:"+f.name)
	return nil
}
func (f *fakeService) Stop() error {
	f.stops++
	*f.journal = append(*f.journal, "stop:"+f.name)
	return nil
}

func TestHubDependencyOrder(t *testing.T) {
	var journal []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "terminal", deps: []string{"audio"}, journal: &journal}))
	require.NoError(t, h.Register(&fakeService{name: "audio", journal: &journal}))

	require.NoError(t, h.InitAll())
	require.NoError(t, h.StartAll())
	h.StopAll()

	assert.Equal(t, []string{
		"init:audio", "init:terminal",
		"start:audio", "start:terminal",
		"stop:terminal", "stop:audio",
	}, journal)
}

func TestHubInitRollback(t *testing.T) {
	var journal []string
	h := NewHub()
	a := &fakeService{name: "a", journal: &journal}
	b := &fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("no device"), journal: &journal}
	require.NoError(t, h.Register(a))
	require.NoError(t, h.Register(b))

	err := h.InitAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no device")
	assert.Equal(t, 1, a.stops)
	assert.Equal(t, 0, b.stops)
	assert.Error(t, h.StartAll(), "start without init")
}

func TestHubRejectsDuplicateAndMissingDeps(t *testing.T) {
	var journal []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"ghost"}, journal: &journal}))
	assert.Error(t, h.Register(&fakeService{name: "a", journal: &journal}))
	assert.Error(t, h.InitAll())
}

func TestHubDetectsCycle(t *testing.T) {
	var journal []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"b"}, journal: &journal}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, journal: &journal}))
	err := h.InitAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular")
}

func TestMustGet(t *testing.T) {
	var journal []string
	h := NewHub()
	svc := &fakeService{name: "a", journal: &journal}
	require.NoError(t, h.Register(svc))

	assert.Same(t, svc, MustGet[*fakeService](h, "a"))
	assert.Panics(t, func() { MustGet[*fakeService](h, "missing") })
	assert.Equal(t, []string{"a"}, h.Names())
}
