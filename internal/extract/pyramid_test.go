package extract

import (
	"fmt"
	"testing"
)

func header() PyramidNode { return PyramidNode{Header: true, Text: "Notes"} }
func leaf(text string) PyramidNode {
	return PyramidNode{Text: text}
}

func TestSegmentPyramidThreeHeaders(t *testing.T) {
	nodes := []PyramidNode{header()}
	for i := 0; i < 5; i++ {
		nodes = append(nodes, leaf(fmt.Sprintf("top-%d", i)))
	}
	nodes = append(nodes, header())
	for i := 0; i < 4; i++ {
		nodes = append(nodes, leaf(fmt.Sprintf("mid-%d", i)))
	}
	nodes = append(nodes, header())
	for i := 0; i < 3; i++ {
		nodes = append(nodes, leaf(fmt.Sprintf("base-%d", i)))
	}

	tiers := SegmentPyramid(nodes)

	if len(tiers.Top) != 5 || len(tiers.Mid) != 4 || len(tiers.Base) != 3 {
		t.Fatalf("tier lengths = %d/%d/%d, want 5/4/3",
			len(tiers.Top), len(tiers.Mid), len(tiers.Base))
	}
	if tiers.Top[0] != "top-0" || tiers.Top[4] != "top-4" {
		t.Errorf("top tier out of order: %v", tiers.Top)
	}
	if tiers.Mid[0] != "mid-0" || tiers.Base[2] != "base-2" {
		t.Errorf("mid/base tiers out of order: %v %v", tiers.Mid, tiers.Base)
	}
}

func TestSegmentPyramidSingleTierFallback(t *testing.T) {
	nodes := []PyramidNode{}
	for i := 0; i < 6; i++ {
		nodes = append(nodes, leaf(fmt.Sprintf("note-%d", i)))
	}

	tiers := SegmentPyramid(nodes)

	if len(tiers.Top) != 6 {
		t.Fatalf("top tier length = %d, want 6", len(tiers.Top))
	}
	if len(tiers.Mid) != 0 || len(tiers.Base) != 0 {
		t.Errorf("mid/base should be empty, got %v %v", tiers.Mid, tiers.Base)
	}
	if tiers.Mid == nil || tiers.Base == nil {
		t.Error("empty tiers must still be present, not nil")
	}
}

func TestSegmentPyramidTwoHeadersFallsBack(t *testing.T) {
	nodes := []PyramidNode{
		header(), leaf("a"), leaf("b"),
		header(), leaf("c"),
	}

	tiers := SegmentPyramid(nodes)

	if len(tiers.Top) != 3 || len(tiers.Mid) != 0 || len(tiers.Base) != 0 {
		t.Errorf("tier lengths = %d/%d/%d, want 3/0/0",
			len(tiers.Top), len(tiers.Mid), len(tiers.Base))
	}
}

func TestSegmentPyramidSkipsEmptyLeaves(t *testing.T) {
	nodes := []PyramidNode{
		header(),
		leaf("vetiver"), leaf("  "), leaf("cedar"),
		header(),
		leaf(""), leaf("iris"),
		header(),
		leaf("musk"),
	}

	tiers := SegmentPyramid(nodes)

	if len(tiers.Top) != 2 || len(tiers.Mid) != 1 || len(tiers.Base) != 1 {
		t.Fatalf("tier lengths = %d/%d/%d, want 2/1/1",
			len(tiers.Top), len(tiers.Mid), len(tiers.Base))
	}
	if tiers.Top[1] != "cedar" || tiers.Mid[0] != "iris" || tiers.Base[0] != "musk" {
		t.Errorf("unexpected tiers: %+v", tiers)
	}
}

func TestSegmentPyramidEmptyInput(t *testing.T) {
	tiers := SegmentPyramid(nil)
	if tiers.Top == nil || tiers.Mid == nil || tiers.Base == nil {
		t.Error("all tiers must be present for empty input")
	}
	if len(tiers.Top) != 0 {
		t.Errorf("top tier should be empty, got %v", tiers.Top)
	}
}
