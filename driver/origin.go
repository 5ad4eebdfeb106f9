package driver

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"tgrab/config"
	"tgrab/dom"
)

// hostOf extracts host name from absolute URL or bare host specification.
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	u, err := url.Parse(raw)
	if err == nil && len(u.Hostname()) > 0 {
		return strings.ToLower(u.Hostname())
	}
	if strings.Contains(raw, "://") {
		return ""
	}
	// bare "example.com" or "example.com/path"
	if u, err = url.Parse("//" + raw); err == nil {
		return strings.ToLower(u.Hostname())
	}
	return ""
}

func firstHref(doc *dom.Document, match func(*html.Node) bool) string {
	for _, n := range doc.Elements(match) {
		if href, ok := dom.Attr(n, "href"); ok {
			if host := hostOf(href); len(host) > 0 && strings.Contains(href, "//") {
				return host
			}
		}
	}
	return ""
}

// PageHost returns host name the page came from. Explicitly specified
// origin wins, then document base URL, then canonical link. When nothing is
// known slug of the page file name is used.
func PageHost(page *Page, origin string) string {
	if host := hostOf(origin); len(host) > 0 {
		return host
	}
	if host := firstHref(page.Doc, func(n *html.Node) bool { return n.DataAtom == atom.Base }); len(host) > 0 {
		return host
	}
	canonical := func(n *html.Node) bool {
		if n.DataAtom != atom.Link {
			return false
		}
		rel, _ := dom.Attr(n, "rel")
		for r := range strings.FieldsSeq(strings.ToLower(rel)) {
			if r == "canonical" {
				return true
			}
		}
		return false
	}
	if host := firstHref(page.Doc, canonical); len(host) > 0 {
		return host
	}
	return slug.Make(strings.TrimSuffix(page.Name, filepath.Ext(page.Name)))
}

// Values is a struct that holds variables we make available for basename
// template expansion.
type Values struct {
	Host   string
	Source string
}

// ExpandBasename expands download basename template.
func ExpandBasename(field string, page *Page, host string) (string, error) {
	tmpl, err := template.New(string(config.BasenameTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.BasenameTemplateFieldName, err)
	}

	values := Values{
		Host:   host,
		Source: strings.TrimSuffix(page.Name, filepath.Ext(page.Name)),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", config.BasenameTemplateFieldName, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
