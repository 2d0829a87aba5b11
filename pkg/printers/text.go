package printers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/muesli/reflow/wordwrap"
)

const (
	paragraphBreak = "\u2029"
	lineBreak      = "\u2028"
)

// Text flattens an HTML body into plain paragraphs separated by blank
// lines. Markup that fails to parse is returned trimmed.
func Text(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.TrimSpace(markup)
	}
	doc.Find("script,style,head").Remove()
	doc.Find("br").ReplaceWithHtml(lineBreak)
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})
	doc.Find("p,div,li,blockquote,h1,h2,h3,h4,h5,h6,pre,tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(paragraphBreak)
	})

	var paragraphs []string
	for _, para := range strings.Split(doc.Text(), paragraphBreak) {
		var lines []string
		for _, line := range strings.Split(para, lineBreak) {
			if l := strings.Join(strings.Fields(line), " "); l != "" {
				lines = append(lines, l)
			}
		}
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// Wrap word-wraps s at width columns. Non-positive widths leave s alone.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
