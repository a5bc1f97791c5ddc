package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushteam/tagmine"
	"github.com/rushteam/tagmine/config"
	"github.com/rushteam/tagmine/ingest"
	"github.com/rushteam/tagmine/memo"
	"github.com/rushteam/tagmine/store"
)

// runFlags 是所有分析子命令共享的 flag。
type runFlags struct {
	input     string
	redis     string
	cacheTTL  int
	format    string
	precision int
	preview   int
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "input file (.csv with a hashtags column, or .json records)")
	fs.Float64("min-support", 0, "minimum support in (0,1]")
	fs.Float64("min-confidence", 0, "minimum confidence in (0,1]")
	fs.Bool("lift-filter", true, "keep only rules with lift >= 1")
	fs.Int("top-k", 0, "maximum results to show")
	fs.String("query", "", "comma-separated query hashtags")
	fs.Int("max-len", 0, "maximum itemset size (0 = unlimited)")
	fs.Int("workers", 0, "support counting workers (0 = GOMAXPROCS)")
	fs.String("expr", "", "CEL rule filter, e.g. rule.lift > 1.5")
	fs.String("pipeline", "", "recommendation pipeline file (yaml/json)")
	fs.StringVar(&f.redis, "redis", "", "redis address for caching mined results")
	fs.IntVar(&f.cacheTTL, "cache-ttl", 3600, "cache ttl in seconds")
	fs.StringVarP(&f.format, "format", "o", "table", "output format (table, json, yaml)")
	fs.IntVar(&f.precision, "precision", 2, "decimal places for percentages")
	fs.IntVar(&f.preview, "preview", tagmine.DefaultPreviewRows, "transactions to preview (0 = all)")
	_ = cmd.MarkFlagRequired("input")
}

// applyFlags 用显式设置的 flag 覆盖已加载的参数。
func applyFlags(cmd *cobra.Command, p config.Params) (config.Params, error) {
	fs := cmd.Flags()
	var err error
	if fs.Changed("min-support") {
		p.MinSupport, err = fs.GetFloat64("min-support")
	}
	if err == nil && fs.Changed("min-confidence") {
		p.MinConfidence, err = fs.GetFloat64("min-confidence")
	}
	if err == nil && fs.Changed("lift-filter") {
		p.LiftFilter, err = fs.GetBool("lift-filter")
	}
	if err == nil && fs.Changed("top-k") {
		p.TopK, err = fs.GetInt("top-k")
	}
	if err == nil && fs.Changed("query") {
		var q string
		q, err = fs.GetString("query")
		p.Query = ingest.ParseQuery(q)
	}
	if err == nil && fs.Changed("max-len") {
		p.MaxLen, err = fs.GetInt("max-len")
	}
	if err == nil && fs.Changed("workers") {
		p.Workers, err = fs.GetInt("workers")
	}
	if err == nil && fs.Changed("expr") {
		p.Expr, err = fs.GetString("expr")
	}
	if err == nil && fs.Changed("pipeline") {
		p.Pipeline, err = fs.GetString("pipeline")
	}
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}

// execute 读取输入并运行引擎。
func execute(cmd *cobra.Command, f *runFlags) (*tagmine.Result, config.Params, error) {
	p, err := applyFlags(cmd, params)
	if err != nil {
		return nil, p, err
	}
	raw, err := ingest.ReadFile(f.input)
	if err != nil {
		return nil, p, err
	}

	opts := []tagmine.Option{tagmine.WithPreviewRows(f.preview)}
	if f.redis != "" {
		rs, err := store.NewRedisStore(cmd.Context(), f.redis, 0)
		if err != nil {
			return nil, p, fmt.Errorf("connect redis: %w", err)
		}
		defer rs.Close()
		opts = append(opts, tagmine.WithCache(memo.New(rs, f.cacheTTL)), tagmine.WithStore(rs))
	}

	res, err := tagmine.NewEngine(opts...).Run(cmd.Context(), raw, p)
	return res, p, err
}
