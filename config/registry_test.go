package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/bookrec/config"
	_ "github.com/rushteam/bookrec/config/builders"
	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pipeline"
)

const pipelineYAML = `
pipeline:
  name: hot-feed
  nodes:
    - type: recall.hot
      config:
        ids: ["b1", "b2", "b3"]
    - type: filter
      config:
        rules:
          - 'item.id == "b2"'
    - type: rerank.topn
      config:
        n: 1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigDrivenPipeline(t *testing.T) {
	cfg, err := pipeline.LoadFromYAML(writeConfig(t, pipelineYAML))
	if err != nil {
		t.Fatalf("LoadFromYAML() error: %v", err)
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig() error: %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error: %v", err)
	}

	rctx := &core.RecommendContext{UserID: "u1", Scene: "feed"}
	items, err := p.Run(context.Background(), rctx, nil)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	// hot 召回 3 条，规则过滤掉 b2，TopN 截到 1 条
	if len(items) != 1 || items[0].ID != "b1" {
		t.Fatalf("expected [b1], got %v", items)
	}
}

func TestValidatePipelineConfig_UnknownType(t *testing.T) {
	cfg, err := pipeline.LoadFromYAML(writeConfig(t, `
pipeline:
  name: broken
  nodes:
    - type: rank.lr
`))
	if err != nil {
		t.Fatal(err)
	}
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Fatal("expected error for unregistered node type")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := config.SupportedTypes()
	want := map[string]bool{"recall.hot": true, "recall.fanout": true, "filter": true, "rerank.topn": true}
	for _, typ := range types {
		delete(want, typ)
	}
	if len(want) != 0 {
		t.Fatalf("missing registered types: %v (got %v)", want, types)
	}
}
