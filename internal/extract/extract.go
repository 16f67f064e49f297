// Package extract pulls plain resume text out of uploaded files.
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// DetectType resolves the media type of an upload from its declared content
// type, falling back to the file extension for generic types.
func DetectType(contentType, fileName string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case MimeText, MimePDF, MimeDOCX:
			return mt
		}
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md":
		return MimeText
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	}
	return contentType
}

// Text returns the plain text of data interpreted as mimeType.
func Text(mimeType string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch mimeType {
	case MimeText:
		text = string(data)
	case MimePDF:
		text, err = pdfText(data)
	case MimeDOCX:
		text, err = docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()
	return wordMLText(doc.Editable().GetContent())
}

// wordMLText flattens document.xml into text with one line per paragraph.
func wordMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
