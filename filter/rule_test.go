package filter

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/pkg/utils"
)

func TestRuleFilter_ShouldFilter(t *testing.T) {
	hot := core.NewItem("1")
	hot.Score = 4
	hot.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})

	usercf := core.NewItem("2")
	usercf.Score = 2
	usercf.PutLabel("recall_source", utils.Label{Value: "usercf", Source: "recall"})

	rctx := &core.RecommendContext{UserID: "u1", Scene: "recommend"}

	tests := []struct {
		name string
		expr string
		item *core.Item
		want bool
	}{
		{name: "match label", expr: `label.recall_source == "hot"`, item: hot, want: true},
		{name: "no match label", expr: `label.recall_source == "hot"`, item: usercf, want: false},
		{name: "score threshold", expr: `item.score < 3.0`, item: usercf, want: true},
		{name: "score above threshold", expr: `item.score < 3.0`, item: hot, want: false},
		{name: "combined", expr: `label.recall_source == "usercf" && item.score < 3.0`, item: usercf, want: true},
		{name: "empty expr keeps item", expr: ``, item: hot, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &RuleFilter{Expr: tt.expr}
			got, err := f.ShouldFilter(context.Background(), rctx, tt.item)
			if err != nil {
				t.Fatalf("ShouldFilter() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterNode_Process(t *testing.T) {
	hot := core.NewItem("1")
	hot.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
	cf := core.NewItem("2")
	cf.PutLabel("recall_source", utils.Label{Value: "usercf", Source: "recall"})

	node := &FilterNode{Filters: []Filter{
		&RuleFilter{Expr: `label.recall_source == "hot"`},
	}}

	out, err := node.Process(context.Background(), &core.RecommendContext{UserID: "u"}, []*core.Item{hot, cf})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(out) != 1 || out[0].ID != "2" {
		t.Fatalf("expected only item 2 to survive, got %v", out)
	}
	// 被过滤的物品带上过滤原因 label
	if lbl, ok := hot.Labels["filtered"]; !ok || lbl.Value != "true" {
		t.Errorf("expected filtered label on removed item, got %+v", hot.Labels)
	}
}
