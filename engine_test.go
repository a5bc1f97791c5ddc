package tagmine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/tagmine/config"
	"github.com/rushteam/tagmine/core"
	"github.com/rushteam/tagmine/filter"
	"github.com/rushteam/tagmine/memo"
	"github.com/rushteam/tagmine/store"
)

var posts = [][]string{{"a", "b", "c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}}

func params(query ...string) config.Params {
	p := config.DefaultParams()
	p.MinSupport = 0.5
	p.MinConfidence = 0.5
	p.LiftFilter = false
	p.TopK = 1
	p.Query = query
	return p
}

func TestEngine_Run(t *testing.T) {
	res, err := NewEngine().Run(context.Background(), posts, params("a"))
	require.NoError(t, err)

	assert.Equal(t, 6, res.Frequent.Len())
	assert.Len(t, res.Rules, 6)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "b", res.Recommendations[0].Hashtag)
	assert.Len(t, res.MatchedRules, 2)
	require.Len(t, res.Containing, 1)
	assert.Equal(t, core.Itemset{"a"}, res.Containing[0].Items)
	assert.Equal(t, []string{"a", "b", "c"}, res.Preview.Items)
	assert.NotEmpty(t, res.Edges)
	assert.False(t, res.Cached)
}

func TestEngine_EmptyDataset(t *testing.T) {
	_, err := NewEngine().Run(context.Background(), nil, params())
	require.Error(t, err)
	assert.True(t, core.IsEmptyDataset(err))

	_, err = NewEngine().Run(context.Background(), [][]string{{" "}, {}}, params())
	assert.True(t, core.IsEmptyDataset(err))
}

func TestEngine_InvalidThreshold(t *testing.T) {
	p := params()
	p.MinSupport = 1.5
	// 阈值校验先于数据集检查
	_, err := NewEngine().Run(context.Background(), nil, p)
	require.Error(t, err)
	assert.True(t, core.IsInvalidThreshold(err))
}

func TestEngine_Deterministic(t *testing.T) {
	eng := NewEngine()
	p := params("c")
	p.MinSupport = 0.25
	p.MinConfidence = 0.1
	p.TopK = 5
	first, err := eng.Run(context.Background(), posts, p)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := eng.Run(context.Background(), posts, p)
		require.NoError(t, err)
		assert.Equal(t, first.Rules, again.Rules)
		assert.Equal(t, first.Recommendations, again.Recommendations)
	}
}

func TestEngine_Cache(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()
	eng := NewEngine(WithCache(memo.New(s, 0)))

	first, err := eng.Run(context.Background(), posts, params("a"))
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := eng.Run(context.Background(), posts, params("a"))
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Rules, second.Rules)
	assert.Equal(t, first.Recommendations, second.Recommendations)
}

func TestEngine_PipelineFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  nodes:
    - type: filter
      config:
        filters:
          - type: query
          - type: blacklist
            hashtags: ["b"]
    - type: rank.metric
    - type: rerank.dedup
    - type: rerank.topn
`), 0o644))

	p := params("a")
	p.Pipeline = path
	res, err := NewEngine().Run(context.Background(), posts, p)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "c", res.Recommendations[0].Hashtag)
}

func TestEngine_PipelineStoreBlacklist(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()
	require.NoError(t, filter.NewStoreAdapter(ms).SetBlacklist(ctx, "tagmine:blacklist", []string{"b"}))

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  nodes:
    - type: filter
      config:
        filters:
          - type: blacklist
            key: tagmine:blacklist
`), 0o644))

	p := params("a")
	p.Pipeline = path

	_, err := NewEngine().Run(ctx, posts, p)
	require.Error(t, err)

	res, err := NewEngine(WithStore(ms)).Run(ctx, posts, p)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "c", res.Recommendations[0].Hashtag)

	// 未显式设置时使用缓存的 Store
	res, err = NewEngine(WithCache(memo.New(ms, 0))).Run(ctx, posts, p)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "c", res.Recommendations[0].Hashtag)
}

func TestEngine_PipelineWithoutRerank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  nodes:
    - type: rank.metric
`), 0o644))

	raw := [][]string{{"a", "b", "c"}, {"a", "b", "c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}}
	p := params("a")
	p.MinSupport = 0.2
	p.MinConfidence = 0.1
	p.Pipeline = path

	res, err := NewEngine().Run(context.Background(), raw, p)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 1)
	assert.Equal(t, "b", res.Recommendations[0].Hashtag)
	assert.InDelta(t, 0.75, res.Recommendations[0].Confidence, 1e-9)

	p.TopK = 10
	res, err = NewEngine().Run(context.Background(), raw, p)
	require.NoError(t, err)
	require.Len(t, res.Recommendations, 2)
	assert.Equal(t, "b", res.Recommendations[0].Hashtag)
	assert.Equal(t, "c", res.Recommendations[1].Hashtag)
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine().Run(ctx, posts, params("a"))
	assert.ErrorIs(t, err, context.Canceled)
}
