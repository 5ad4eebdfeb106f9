package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// InjectStyle appends style element with given rules to the document head
// (body or document itself when there is no head) and returns it.
func (d *Document) InjectStyle(rules string) *html.Node {
	style := &html.Node{Type: html.ElementNode, DataAtom: atom.Style, Data: "style"}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: rules})

	parent := d.Head()
	if parent == nil {
		parent = d.Body()
	}
	if parent == nil {
		parent = d.root
	}
	parent.AppendChild(style)
	return style
}

// RemoveStyle removes previously injected style element.
func (d *Document) RemoveStyle(style *html.Node) error {
	if !d.Contains(style) {
		return fmt.Errorf("removing style: %w", ErrDetached)
	}
	return d.Detach(style)
}

// ValidateStyle checks that data is a stylesheet without grammar errors.
func ValidateStyle(data []byte) error {
	p := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	rules := 0
	for {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("invalid stylesheet: %w", err)
			}
			if rules == 0 {
				return errors.New("invalid stylesheet: no rules")
			}
			return nil
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar, css.BeginAtRuleGrammar, css.AtRuleGrammar:
			rules++
		}
	}
}
