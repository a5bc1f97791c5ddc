package builders

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
	"github.com/rushteam/tagmine/pipeline"
	"github.com/rushteam/tagmine/rerank"
	"github.com/rushteam/tagmine/store"
)

func TestRegistered(t *testing.T) {
	assert.Equal(t, []string{"filter", "rank.metric", "rerank.dedup", "rerank.topn"}, config.SupportedTypes())
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]any{
		"filters": []any{
			map[string]any{"type": "query"},
			map[string]any{"type": "blacklist", "hashtags": []any{"#Spam"}},
			map[string]any{"type": "expr", "expr": "item.features.lift >= 1.0"},
		},
	})
	require.NoError(t, err)
	fn := node.(*filter.FilterNode)
	require.Len(t, fn.Filters, 3)

	rctx := core.NewRecommendContext([]string{"#a"}, 10)
	items := []*core.Item{
		{ID: "#a", Features: map[string]float64{core.FeatureLift: 2}},
		{ID: "#spam", Features: map[string]float64{core.FeatureLift: 2}},
		{ID: "#low", Features: map[string]float64{core.FeatureLift: 0.5}},
		{ID: "#ok", Features: map[string]float64{core.FeatureLift: 1.5}},
	}
	out, err := node.Process(context.Background(), rctx, items)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "#ok", out[0].ID)
}

func TestBuildFilterNode_Errors(t *testing.T) {
	_, err := BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "nope"}}})
	assert.Error(t, err)
	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "expr"}}})
	assert.Error(t, err)
	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "expr", "expr": "item.features.lift >"}}})
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))
	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "blacklist", "key": "bl"}}})
	assert.Error(t, err)

	node, err := BuildFilterNode(nil)
	require.NoError(t, err)
	assert.Len(t, node.(*filter.FilterNode).Filters, 1)
}

func TestLoadPipeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  name: hashtag
  nodes:
    - type: filter
      config:
        filters:
          - type: query
          - type: blacklist
            hashtags: ["#follow4follow"]
    - type: rank.metric
    - type: rerank.dedup
    - type: rerank.topn
      config: {n: 5}
`), 0o644))

	nodes, err := config.LoadPipeline(path, nil)
	require.NoError(t, err)
	require.Len(t, nodes, 4)
	assert.Equal(t, pipeline.KindFilter, nodes[0].Kind())
	assert.Equal(t, pipeline.KindRank, nodes[1].Kind())
	assert.Equal(t, 5, nodes[3].(*rerank.TopNNode).N)
}

func TestLoadPipeline_UnknownType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pipeline":{"nodes":[{"type":"recall.hot"}]}}`), 0o644))
	_, err := config.LoadPipeline(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recall.hot")
}

func TestLoadPipeline_StoreBlacklist(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()
	require.NoError(t, filter.NewStoreAdapter(ms).SetBlacklist(ctx, "tagmine:blacklist", []string{"#Spam"}))

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  nodes:
    - type: filter
      config:
        filters:
          - type: blacklist
            hashtags: ["#x"]
            key: tagmine:blacklist
`), 0o644))

	_, err := config.LoadPipeline(path, nil)
	require.Error(t, err)

	nodes, err := config.LoadPipeline(path, ms)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	items := []*core.Item{core.NewItem("#x"), core.NewItem("#spam"), core.NewItem("#ok")}
	out, err := nodes[0].Process(ctx, core.NewRecommendContext(nil, 10), items)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "#ok", out[0].ID)
}
