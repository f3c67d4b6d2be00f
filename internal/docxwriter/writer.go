// Package docxwriter renders a docmodel.Document into a .docx file built on
// an embedded template that carries the heading styles and bullet numbering.
package docxwriter

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muhammadolammi/resumeforge/internal/docmodel"
	"github.com/nguyenthenguyen/docx"
)

const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Half-points, matching the 12pt body text of the downloaded resumes.
const runSize = 24

const bodyPlaceholder = "<w:p><w:r><w:t>{{body}}</w:t></w:r></w:p>"

// bullet numbering definition in template/resume.docx
const bulletNumID = 1

//go:embed template/resume.docx
var templateDocx []byte

var ErrTemplate = errors.New("docx template has no body placeholder")

type Options struct {
	// Title, when set, is rendered as a centered level 1 heading followed by
	// a spacer before the document body.
	Title string
}

// Write serializes doc as a .docx package to w.
func Write(w io.Writer, doc docmodel.Document, opts Options) error {
	r, err := docx.ReadDocxFromMemory(bytes.NewReader(templateDocx), int64(len(templateDocx)))
	if err != nil {
		return fmt.Errorf("failed to open docx template: %w", err)
	}
	defer r.Close()

	d := r.Editable()
	content := d.GetContent()
	if !strings.Contains(content, bodyPlaceholder) {
		return ErrTemplate
	}
	d.SetContent(strings.Replace(content, bodyPlaceholder, BodyXML(doc, opts), 1))

	if err := d.Write(w); err != nil {
		return fmt.Errorf("failed to write docx: %w", err)
	}
	return nil
}

func Render(doc docmodel.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BodyXML returns the WordprocessingML paragraphs for doc.
func BodyXML(doc docmodel.Document, opts Options) string {
	var b strings.Builder

	if opts.Title != "" {
		writeParagraph(&b, paragraph{
			style:  "Heading1",
			before: 200,
			after:  400,
			center: true,
			runs:   []docmodel.Run{{Text: opts.Title}},
		})
		writeParagraph(&b, paragraph{after: 200, lineBreak: true})
	}

	for _, block := range doc {
		writeParagraph(&b, paragraphFor(block))
	}
	return b.String()
}

type paragraph struct {
	style     string
	bullet    bool
	before    int
	after     int
	center    bool
	lineBreak bool
	runs      []docmodel.Run
	runSize   int
}

func paragraphFor(block docmodel.Block) paragraph {
	switch block.Kind {
	case docmodel.Spacer:
		return paragraph{after: 200, lineBreak: true}
	case docmodel.Heading:
		return paragraph{
			style:  "Heading" + strconv.Itoa(block.Level),
			before: 300,
			after:  200,
			runs:   []docmodel.Run{{Text: block.Text}},
		}
	case docmodel.Bullet:
		return paragraph{bullet: true, after: 100, runs: []docmodel.Run{{Text: block.Text}}}
	case docmodel.BoldParagraph:
		return paragraph{after: 200, runSize: runSize, runs: []docmodel.Run{{Text: block.Text, Bold: true}}}
	case docmodel.MixedParagraph:
		return paragraph{after: 200, runSize: runSize, runs: block.Runs}
	default:
		return paragraph{after: 200, runs: []docmodel.Run{{Text: block.Text}}}
	}
}

func writeParagraph(b *strings.Builder, p paragraph) {
	b.WriteString("<w:p><w:pPr>")
	if p.style != "" {
		fmt.Fprintf(b, `<w:pStyle w:val="%s"/>`, p.style)
	}
	if p.bullet {
		fmt.Fprintf(b, `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="%d"/></w:numPr>`, bulletNumID)
	}
	b.WriteString("<w:spacing")
	if p.before > 0 {
		fmt.Fprintf(b, ` w:before="%d"`, p.before)
	}
	fmt.Fprintf(b, ` w:after="%d"/>`, p.after)
	if p.center {
		b.WriteString(`<w:jc w:val="center"/>`)
	}
	b.WriteString("</w:pPr>")

	if p.lineBreak {
		b.WriteString("<w:r><w:br/></w:r>")
	}
	for _, run := range p.runs {
		if run.Text == "" {
			continue
		}
		b.WriteString("<w:r>")
		if run.Bold || p.runSize > 0 {
			b.WriteString("<w:rPr>")
			if run.Bold {
				b.WriteString("<w:b/>")
			}
			if p.runSize > 0 {
				fmt.Fprintf(b, `<w:sz w:val="%d"/>`, p.runSize)
			}
			b.WriteString("</w:rPr>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		_ = xml.EscapeText(b, []byte(run.Text))
		b.WriteString("</w:t></w:r>")
	}
	b.WriteString("</w:p>")
}
