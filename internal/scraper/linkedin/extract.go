package linkedin

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"go-linkedin-doppelganger/internal/filter"
)

// ExtractPosts parses page markup and returns the text of every post
// container, in document order. Containers without usable text are skipped;
// a page without containers yields an empty slice.
func ExtractPosts(page string, minLength int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	posts := []string{}
	doc.Find(PostContainer).
		FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return sel.ParentsFiltered(PostContainer).Length() == 0
		}).
		Each(func(_ int, container *goquery.Selection) {
			text := postText(container)
			if filter.IsPost(text, minLength) {
				posts = append(posts, text)
			}
		})
	return posts, nil
}

// ExtractFeatured returns the text of the items pinned in a profile's
// Featured section, at most maxFeaturedItems of them. A profile without the
// section yields an empty slice.
func ExtractFeatured(page string, minLength int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	items := []string{}
	section := doc.Find("section").FilterFunction(isFeaturedSection).First()
	if section.Length() == 0 {
		return items, nil
	}

	cards := outermost(section.Find(FeaturedItem), FeaturedItem)
	if cards.Length() == 0 {
		cards = outermost(section.Find(FeaturedCard), FeaturedCard)
	}
	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if text := visibleText(card); filter.IsPost(text, minLength) {
			items = append(items, text)
		}
		return len(items) < maxFeaturedItems
	})
	return items, nil
}

func isFeaturedSection(_ int, section *goquery.Selection) bool {
	if section.Find(FeaturedAnchor).Length() > 0 {
		return true
	}
	heading := section.Find("h2").First()
	return strings.TrimSpace(heading.Text()) == FeaturedHeading ||
		strings.TrimSpace(heading.Find("span[aria-hidden=true]").First().Text()) == FeaturedHeading
}

func outermost(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(selector).FilterSelection(sel).Length() == 0
	})
}

// postText returns the commentary of a post container, falling back to
// everything the container shows.
func postText(container *goquery.Selection) string {
	for _, selector := range PostTextSelectors {
		el := container.Find(selector).First()
		if el.Length() == 0 {
			continue
		}
		if text := visibleText(el); text != "" {
			return text
		}
	}
	return visibleText(container)
}

func visibleText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find(postChrome).Remove()

	var b strings.Builder
	for _, n := range clone.Nodes {
		writeText(&b, n)
	}
	return cleanLines(b.String())
}

var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true, "section": true,
	"article": true, "h1": true, "h2": true, "h3": true, "h4": true, "blockquote": true,
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript":
			return
		case "br":
			b.WriteByte('\n')
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteByte('\n')
	}
}

// cleanLines trims every line, collapses inner whitespace and drops blank
// lines.
func cleanLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
