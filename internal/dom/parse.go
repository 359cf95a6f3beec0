// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dom

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Parse builds a Document from an HTML snapshot. The document's top element
// corresponds to the page body; head content is discarded. Whitespace-only
// text is dropped, other direct text is concatenated onto the owning
// element.
func Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	body := findBody(node)
	if body == nil {
		return nil, fmt.Errorf("no body element in document")
	}

	doc := NewDocument()
	convertInto(doc, doc.top, body)
	return doc, nil
}

// ParseString is Parse over an in-memory snapshot.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the HTML file at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

// convertInto copies src's attributes and children onto dst. Children are
// built fully before attachment so parsing never emits mutation records.
func convertInto(doc *Document, dst *Element, src *html.Node) {
	for _, a := range src.Attr {
		dst.SetAttr(a.Key, a.Val)
	}
	var text strings.Builder
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child := newElement(doc, c.Data)
			convertInto(doc, child, c)
			child.parent = dst
			dst.children = append(dst.children, child)
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				if text.Len() > 0 {
					text.WriteByte(' ')
				}
				text.WriteString(t)
			}
		}
	}
	if text.Len() > 0 {
		dst.text = text.String()
	}
}
