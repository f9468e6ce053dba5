package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// docMeta holds article metadata scraped from document meta tags.
type docMeta struct {
	title     string
	author    string
	published string
}

// documentMeta extracts title/author/date hints from meta tags and the
// <title> element. Missing fields stay empty.
func documentMeta(rawHTML string) docMeta {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return docMeta{}
	}

	meta := docMeta{
		title:     metaContent(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`),
		author:    metaContent(doc, `meta[name="author"]`, `meta[property="article:author"]`),
		published: metaContent(doc, `meta[property="article:published_time"]`, `meta[name="date"]`),
	}

	if meta.title == "" {
		meta.title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return meta
}

// metaContent returns the first non-empty content attribute among selectors.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if content = strings.TrimSpace(content); content != "" {
				return content
			}
		}
	}
	return ""
}

// visibleText extracts text nodes from HTML, skipping scripts and styles.
// Fallback path for documents readability rejects.
func visibleText(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String())
}
