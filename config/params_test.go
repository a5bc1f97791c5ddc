package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tagmine/core"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0.1, p.MinSupport)
	assert.Equal(t, 0.5, p.MinConfidence)
	assert.True(t, p.LiftFilter)
	assert.Equal(t, 10, p.TopK)
	assert.NoError(t, p.Validate())
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Params)
		threshold bool
	}{
		{"zero support", func(p *Params) { p.MinSupport = 0 }, true},
		{"support above one", func(p *Params) { p.MinSupport = 1.5 }, true},
		{"NaN confidence", func(p *Params) { p.MinConfidence = math.NaN() }, true},
		{"zero top_k", func(p *Params) { p.TopK = 0 }, false},
		{"negative max_len", func(p *Params) { p.MaxLen = -1 }, false},
		{"negative workers", func(p *Params) { p.Workers = -2 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.threshold, core.IsInvalidThreshold(err))
			if !tt.threshold {
				assert.True(t, core.IsInvalidInput(err))
			}
		})
	}
}

func TestLoadParams_Layers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagmine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
min_support: 0.25
lift_filter: false
top_k: 3
query: ["#food", "#yum"]
`), 0o644))

	t.Setenv("TAGMINE_MIN_CONFIDENCE", "0.8")

	p, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p.MinSupport)
	assert.Equal(t, 0.8, p.MinConfidence)
	assert.False(t, p.LiftFilter)
	assert.Equal(t, 3, p.TopK)
	assert.Equal(t, []string{"#food", "#yum"}, p.Query)
}

func TestLoadParams_EnvQuery(t *testing.T) {
	t.Setenv("TAGMINE_QUERY", "#a, #b")
	p, err := LoadParams("")
	require.NoError(t, err)
	assert.Equal(t, []string{"#a", "#b"}, p.Query)
	assert.Equal(t, 0.1, p.MinSupport)
}

func TestLoadParams_Invalid(t *testing.T) {
	t.Setenv("TAGMINE_MIN_SUPPORT", "0")
	_, err := LoadParams("")
	require.Error(t, err)
	assert.True(t, core.IsInvalidThreshold(err))

	_, err = LoadParams(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
