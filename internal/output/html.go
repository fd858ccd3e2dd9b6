package output

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CleanHTML removes script/style/chrome elements and strips attributes down
// to the few worth keeping, producing a compact excerpt of a page.
func CleanHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, link, meta, noscript, iframe, svg, form, input, button, select, textarea, canvas").Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		var kept []html.Attribute
		for _, attr := range node.Attr {
			switch node.Data {
			case "a":
				if attr.Key == "href" || attr.Key == "title" {
					kept = append(kept, attr)
				}
			case "img":
				if attr.Key == "src" || attr.Key == "alt" {
					kept = append(kept, attr)
				}
			}
		}
		node.Attr = kept
	})

	return doc.Html()
}

// PageExcerpt converts a page's HTML into a truncated Markdown rendition for
// diagnostic logs.
func PageExcerpt(htmlContent string, maxLen int) (string, error) {
	cleaned, err := CleanHTML(htmlContent)
	if err != nil {
		return "", err
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	mdStr, err := converter.ConvertString(cleaned)
	if err != nil {
		return "", err
	}

	mdStr = strings.TrimSpace(mdStr)
	if maxLen > 0 && len(mdStr) > maxLen {
		mdStr = mdStr[:maxLen] + "..."
	}
	return mdStr, nil
}
