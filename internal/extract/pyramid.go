package extract

import (
	"strings"

	"fragcat/internal/domain"
)

// PyramidNode is one entry of the flat, document-ordered sequence extracted
// from the note pyramid markup: either a tier header or a note leaf.
type PyramidNode struct {
	Header bool
	Text   string
}

const tierHeaderCount = 3

// SegmentPyramid splits the flat note token sequence into top/middle/base
// tiers. The primary branch counts how many leaves fall strictly between
// consecutive tier headers and slices the token list by those counts,
// preserving source order. When fewer than three headers are present (the
// single-tier page layout) every token goes into the top tier; this is an
// explicit precondition check, not a recovered fault.
func SegmentPyramid(nodes []PyramidNode) domain.NoteTiers {
	tokens := make([]string, 0, len(nodes))
	headers := 0
	// counts[i] = leaves seen after the i-th header; counts[0] covers any
	// leaves before the first header (decorative, not part of a tier)
	var counts [tierHeaderCount + 1]int

	for _, node := range nodes {
		if node.Header {
			if headers < tierHeaderCount {
				headers++
			}
			continue
		}
		text := strings.TrimSpace(node.Text)
		if text == "" {
			// empty leaves would shift the tier boundaries off by one
			continue
		}
		tokens = append(tokens, text)
		counts[headers]++
	}

	if headers < tierHeaderCount {
		return domain.NoteTiers{Top: tokens, Mid: []string{}, Base: []string{}}
	}

	n := len(tokens)
	topEnd := min(counts[1], n)
	midEnd := min(topEnd+counts[2], n)
	baseStart := max(n-counts[3], midEnd)

	return domain.NoteTiers{
		Top:  tokens[:topEnd],
		Mid:  tokens[topEnd:midEnd],
		Base: tokens[baseStart:],
	}
}
