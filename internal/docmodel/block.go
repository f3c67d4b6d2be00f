// Package docmodel turns the small Markdown dialect produced by the resume
// agents into an ordered list of document blocks that a word-processor
// serializer can render.
package docmodel

// Kind identifies which variant a Block holds.
type Kind int

const (
	// Spacer is an empty line.
	Spacer Kind = iota
	// Heading is a #-prefixed line; Level holds its depth.
	Heading
	// Bullet is a list item introduced by "- " or "* ".
	Bullet
	// BoldParagraph is a line wrapped entirely in ** markers.
	BoldParagraph
	// MixedParagraph carries alternating plain and bold runs.
	MixedParagraph
	// PlainParagraph is any other line.
	PlainParagraph
)

func (k Kind) String() string {
	switch k {
	case Spacer:
		return "spacer"
	case Heading:
		return "heading"
	case Bullet:
		return "bullet"
	case BoldParagraph:
		return "bold_paragraph"
	case MixedParagraph:
		return "mixed_paragraph"
	case PlainParagraph:
		return "plain_paragraph"
	default:
		return "unknown"
	}
}

// MaxHeadingLevel is the deepest heading kind; deeper Markdown headings collapse into it.
const MaxHeadingLevel = 4

// Run is an inline span of a mixed paragraph.
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold"`
}

// Block is one emitted unit. Level is set for headings only and Runs for
// mixed paragraphs only.
type Block struct {
	Kind  Kind   `json:"kind"`
	Level int    `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`
	Runs  []Run  `json:"runs,omitempty"`
}

// Document is the ordered block list for one source text.
type Document []Block

// SpacerBlock returns an empty-line block.
func SpacerBlock() Block {
	return Block{Kind: Spacer}
}

// HeadingBlock returns a heading of the given level.
func HeadingBlock(level int, text string) Block {
	return Block{Kind: Heading, Level: level, Text: text}
}

// BulletBlock returns a list item.
func BulletBlock(text string) Block {
	return Block{Kind: Bullet, Text: text}
}

// BoldBlock returns a paragraph rendered entirely in bold.
func BoldBlock(text string) Block {
	return Block{Kind: BoldParagraph, Text: text}
}

// MixedBlock returns a paragraph made of the given runs.
func MixedBlock(runs ...Run) Block {
	return Block{Kind: MixedParagraph, Runs: runs}
}

// PlainBlock returns an unformatted paragraph.
func PlainBlock(text string) Block {
	return Block{Kind: PlainParagraph, Text: text}
}
