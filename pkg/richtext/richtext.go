// Package richtext turns the HTML stored in job descriptions and
// requirements into plain text for terminals and validation.
package richtext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Section: true, atom.Article: true,
}

// ToText renders fragment as plain text. Block elements start new lines and
// list items are prefixed with "- ". Input that fails to parse is returned
// trimmed as-is.
func ToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	var b strings.Builder
	walk(doc, &b)
	return tidy(b.String())
}

// IsEmpty reports whether fragment has no visible text, as an editor
// leaves behind after everything is deleted ("<p><br></p>").
func IsEmpty(fragment string) bool {
	return ToText(fragment) == ""
}

func walk(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style:
			return
		case atom.Br:
			b.WriteString("\n")
			return
		}
		if blockElements[n.DataAtom] {
			b.WriteString("\n")
			if n.DataAtom == atom.Li {
				b.WriteString("- ")
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, b)
	}

	if n.Type == html.ElementNode && blockElements[n.DataAtom] {
		b.WriteString("\n")
	}
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\r\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\r\n") != s {
		out += " "
	}
	return out
}

// tidy trims every line and drops blank lines, including "- " bullets left empty.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || l == "-" {
			continue
		}
		out = append(out, l)
	}
	return strings.Join(out, "\n")
}
