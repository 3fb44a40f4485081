package path

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrInvalidPath = errors.New("path format is invalid")
	ErrNoMatch     = errors.New("path does not match the document")
)

const separator = ">"

var segmentRegex = regexp.MustCompile(`^([a-z][a-z0-9-]*)(?:\[([1-9][0-9]*)\])?$`)

type segment struct {
	tag   string
	index int // 1-based among same-tag siblings, 0 when omitted
}

// ValidatePath checks that path is a chain of segments like
// html>body>div[2]>p.
func ValidatePath(path string) error {
	_, err := parse(path)
	return err
}

func parse(path string) ([]segment, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyPath
	}
	parts := strings.Split(path, separator)
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		m := segmentRegex.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, fmt.Errorf("%w: segment %q", ErrInvalidPath, part)
		}
		seg := segment{tag: m[1]}
		if m[2] != "" {
			seg.index, _ = strconv.Atoi(m[2])
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// Text returns the whitespace-collapsed text of n, skipping script and style
// content.
func Text(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func documentElement(doc *html.Node) *html.Node {
	if doc.Type == html.ElementNode {
		return doc
	}
	for _, c := range elementChildren(doc) {
		if c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}

// Find returns the path of the deepest element whose text contains target.
// Matching ignores case and collapses whitespace.
func Find(doc *html.Node, target string) (string, bool) {
	want := strings.ToLower(strings.Join(strings.Fields(target), " "))
	root := documentElement(doc)
	if want == "" || root == nil || !strings.Contains(strings.ToLower(Text(root)), want) {
		return "", false
	}

	segs := []string{root.Data}
	n := root
	for {
		var next *html.Node
		for _, c := range elementChildren(n) {
			if strings.Contains(strings.ToLower(Text(c)), want) {
				next = c
				break
			}
		}
		if next == nil {
			return strings.Join(segs, separator), true
		}
		segs = append(segs, label(n, next))
		n = next
	}
}

// label names child within parent, adding its 1-based position among
// same-tag siblings when the tag alone is ambiguous.
func label(parent, child *html.Node) string {
	pos, count := 0, 0
	for _, c := range elementChildren(parent) {
		if c.Data != child.Data {
			continue
		}
		count++
		if c == child {
			pos = count
		}
	}
	if count == 1 {
		return child.Data
	}
	return fmt.Sprintf("%s[%d]", child.Data, pos)
}

// Resolve walks path from the document element and returns the element it
// names.
func Resolve(doc *html.Node, path string) (*html.Node, error) {
	segs, err := parse(path)
	if err != nil {
		return nil, err
	}
	root := documentElement(doc)
	if root == nil || root.Data != segs[0].tag {
		return nil, ErrNoMatch
	}

	n := root
	for _, seg := range segs[1:] {
		want := seg.index
		if want == 0 {
			want = 1
		}
		var next *html.Node
		count := 0
		for _, c := range elementChildren(n) {
			if c.Data != seg.tag {
				continue
			}
			count++
			if count == want {
				next = c
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, seg.tag)
		}
		n = next
	}
	return n, nil
}
