package extractous

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)font-size\s*:\s*0[^1-9]`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0[^.]`),
}

// remotePolicy strips scripts, event handlers and other active content
// from HTML fetched over the network before it reaches the parser.
var remotePolicy = bluemonday.UGCPolicy()

// mdConverter renders HTML to Markdown for markup output mode.
var mdConverter = htmltomd.NewConverter(
	htmltomd.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// fastHTML extracts text from an HTML buffer. With markup output enabled
// the document is rendered as Markdown instead of flattened text. remote
// marks content fetched from a URL, which is sanitized before parsing.
func (e Extractor) fastHTML(data []byte, remote bool) (string, Metadata, error) {
	if remote {
		data = remotePolicy.SanitizeBytes(data)
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", nil, parseError("html", err)
	}

	meta := Metadata{}
	meta.Set("Content-Type", "text/html")
	if title := findHTMLTitle(doc); title != "" {
		meta.Set("Title", title)
	}

	if e.outputMode == OutputModeMarkup {
		md, err := mdConverter.ConvertNode(doc)
		if err != nil {
			return "", nil, parseError("html", fmt.Errorf("markdown render: %w", err))
		}
		return strings.TrimSpace(string(md)), meta, nil
	}

	// Prefer semantic landmarks on remote pages so navigation chrome and
	// footers don't drown the article text.
	root := doc
	if remote {
		if main := findMainContent(doc); main != nil {
			root = main
		}
	}
	text := collectHTMLText(root)
	if text == "" {
		return "", nil, parseError("html", fmt.Errorf("no text content"))
	}
	return text, meta, nil
}

// fastXML collects character data from an XML document, one token walk,
// elements separated by spaces.
func fastXML(data []byte) (string, Metadata, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, parseError("xml", err)
		}
		if cd, ok := tok.(xml.CharData); ok {
			if text := strings.TrimSpace(string(cd)); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", nil, parseError("xml", fmt.Errorf("no text content"))
	}
	meta := Metadata{}
	meta.Set("Content-Type", "application/xml")
	return sb.String(), meta, nil
}

// findHTMLTitle extracts the <title> text.
func findHTMLTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findHTMLTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// findMainContent returns the first semantic content landmark (<main> or
// <article>), or nil when the page has none.
func findMainContent(doc *html.Node) *html.Node {
	for _, tag := range []atom.Atom{atom.Main, atom.Article} {
		if n := findByTag(doc, tag); n != nil {
			return n
		}
	}
	return nil
}

func findByTag(root *html.Node, tag atom.Atom) *html.Node {
	if root.Type == html.ElementNode && root.DataAtom == tag {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := findByTag(c, tag); n != nil {
			return n
		}
	}
	return nil
}

func hasHiddenStyle(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}

// collectHTMLText extracts all visible text from a node subtree, skipping
// script, style and hidden elements.
func collectHTMLText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			}
			if hasHiddenStyle(n) {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
