package layout

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

//go:embed templates/resume.html.tmpl
var shellSource string

var shell = template.Must(template.New("resume").Parse(shellSource))

// Options controls the document shell.
type Options struct {
	Title string
	Lang  string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "简历"
	}
	if o.Lang == "" {
		o.Lang = "zh-CN"
	}
	return o
}

type document struct {
	Lang   string
	Title  string
	Blocks []Block
	Body   template.HTML
}

// Render places blocks into the A4 print shell. All text is escaped.
func Render(blocks []Block, opts Options) (string, error) {
	opts = opts.withDefaults()
	return execute(document{Lang: opts.Lang, Title: opts.Title, Blocks: blocks})
}

// Document builds the printable HTML for resume content. Content that is
// already HTML is sanitized and embedded as-is; plain text goes through
// Parse and Render.
func Document(content string, opts Options) (string, error) {
	if !IsHTML(content) {
		return Render(Parse(content), opts)
	}
	body, err := Sanitize(content)
	if err != nil {
		return "", err
	}
	opts = opts.withDefaults()
	return execute(document{Lang: opts.Lang, Title: opts.Title, Body: template.HTML(body)})
}

func execute(doc document) (string, error) {
	var buf bytes.Buffer
	if err := shell.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render resume html: %w", err)
	}
	return buf.String(), nil
}
