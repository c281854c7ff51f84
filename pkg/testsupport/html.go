package testsupport

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// MustParseHTML parses a rendered fragment into a node tree.
func MustParseHTML(t *testing.T, markup []byte) *html.Node {
	t.Helper()

	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// FindByClass returns every element carrying class, in document order.
func FindByClass(root *html.Node, class string) []*html.Node {
	return FindAll(root, func(n *html.Node) bool {
		return HasClass(n, class)
	})
}

// FindByTag returns every element named tag, in document order.
func FindByTag(root *html.Node, tag string) []*html.Node {
	return FindAll(root, func(n *html.Node) bool {
		return n.Data == tag
	})
}

// FindAll walks root depth-first and collects matching elements.
func FindAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// HasClass reports whether n lists class in its class attribute.
func HasClass(n *html.Node, class string) bool {
	value, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, token := range strings.Fields(value) {
		if token == class {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// Text concatenates the text nodes below n.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return sb.String()
}
