package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Every positional assumption about the source markup lives in this file,
// one named accessor per capability. Markup drift is absorbed here instead
// of rippling through the assembler.

// findTitle locates the page title heading inside the top banner container.
func findTitle(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div#toptop h1").First()
}

// findBrand locates the brand name span inside the brand link column.
func findBrand(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.cell.small-6.text-center p a span").First()
}

// findAccordBoxes returns the accord boxes in site-declared strength order.
func findAccordBoxes(doc *goquery.Document) *goquery.Selection {
	return doc.Find("div.accord-box")
}

// occasionRows collects the season/time rating rows: each indexed voting row
// pairs a display label with a chart bar whose width encodes the score.
func occasionRows(doc *goquery.Document) []OccasionRow {
	rows := make([]OccasionRow, 0, 6)
	doc.Find("[index]").Each(func(_ int, sel *goquery.Selection) {
		label := strings.TrimSpace(sel.Find("div.show-for-medium span").First().Text())
		bar := sel.Find("div.voting-small-chart-size > div > div").First()
		if label == "" || bar.Length() == 0 {
			return
		}
		style, _ := bar.Attr("style")
		rows = append(rows, OccasionRow{Label: label, Style: style})
	})
	return rows
}

// pyramidNodes flattens the note pyramid block into its document-ordered
// sequence of tier headers (h4) and note leaves (span). Empty leaves are kept
// here and filtered by the segmenter.
func pyramidNodes(doc *goquery.Document) []PyramidNode {
	nodes := []PyramidNode{}
	doc.Find("div#pyramid").Find("h4, span").Each(func(_ int, sel *goquery.Selection) {
		nodes = append(nodes, PyramidNode{
			Header: goquery.NodeName(sel) == "h4",
			Text:   strings.TrimSpace(sel.Text()),
		})
	})
	return nodes
}
