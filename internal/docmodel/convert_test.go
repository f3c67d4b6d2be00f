package docmodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Block
	}{
		{name: "blank", input: "", expected: SpacerBlock()},
		{name: "whitespace only", input: " \t ", expected: SpacerBlock()},
		{name: "carriage return", input: "\r", expected: SpacerBlock()},
		{name: "level 1 heading", input: "# Title", expected: HeadingBlock(1, "Title")},
		{name: "level 2 heading", input: "## Experience", expected: HeadingBlock(2, "Experience")},
		{name: "level 3 heading", input: "### Sub", expected: HeadingBlock(3, "Sub")},
		{name: "level 4 heading", input: "#### Four", expected: HeadingBlock(4, "Four")},
		{name: "deep heading clamps", input: "##### Deep", expected: HeadingBlock(4, "Deep")},
		{name: "heading without space", input: "#Title", expected: HeadingBlock(1, "Title")},
		{name: "heading without text", input: "## ", expected: HeadingBlock(2, "")},
		{name: "bold heading stays heading", input: "## **Skills**", expected: HeadingBlock(2, "**Skills**")},
		{name: "indented heading", input: "   # Indented  ", expected: HeadingBlock(1, "Indented")},
		{name: "dash bullet", input: "- Did a thing", expected: BulletBlock("Did a thing")},
		{name: "star bullet", input: "* Did a thing", expected: BulletBlock("Did a thing")},
		{name: "bullet keeps inner spacing", input: "-  two spaces", expected: BulletBlock(" two spaces")},
		{name: "bullet with bold", input: "- **Go**: 5 years", expected: BulletBlock("**Go**: 5 years")},
		{name: "dash without space is plain", input: "-dash", expected: PlainBlock("-dash")},
		{name: "bold line", input: "**Bold Line**", expected: BoldBlock("Bold Line")},
		{name: "bold marker only", input: "**", expected: BoldBlock("")},
		{name: "bold with blank inner", input: "** **", expected: BoldBlock("")},
		{name: "bold line inner whitespace trimmed", input: "** Bold **", expected: BoldBlock("Bold")},
		{name: "bold line with inner markers", input: "**Acme** | **2020**", expected: BoldBlock("Acme | 2020")},
		{
			name:  "mixed paragraph",
			input: "Normal **bold** and more",
			expected: MixedBlock(
				Run{Text: "Normal "},
				Run{Text: "bold", Bold: true},
				Run{Text: " and more"},
			),
		},
		{
			name:     "leading bold run",
			input:    "**Email:** jane@example.com",
			expected: MixedBlock(Run{Text: "Email:", Bold: true}, Run{Text: " jane@example.com"}),
		},
		{
			name:     "unbalanced marker is literal",
			input:    "Odd **marker",
			expected: MixedBlock(Run{Text: "Odd **marker"}),
		},
		{
			name:     "trailing unmatched marker joins last span",
			input:    "a **b** c **d",
			expected: MixedBlock(Run{Text: "a "}, Run{Text: "b", Bold: true}, Run{Text: " c **d"}),
		},
		{
			name:     "empty bold pair dropped",
			input:    "x **** y",
			expected: MixedBlock(Run{Text: "x "}, Run{Text: " y"}),
		},
		{name: "plain", input: "Plain text", expected: PlainBlock("Plain text")},
		{name: "plain trimmed", input: "  Plain text  ", expected: PlainBlock("Plain text")},
		{name: "single star is plain", input: "5 * 3", expected: PlainBlock("5 * 3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyLine(tt.input))
		})
	}
}

func TestConvert(t *testing.T) {
	t.Run("empty source has no blocks", func(t *testing.T) {
		assert.Empty(t, Convert(""))
	})

	t.Run("blank lines are counted exactly", func(t *testing.T) {
		assert.Equal(t, Document{SpacerBlock(), SpacerBlock()}, Convert("\n\n"))
	})

	t.Run("single heading", func(t *testing.T) {
		assert.Equal(t, Document{HeadingBlock(1, "Title")}, Convert("# Title"))
	})

	t.Run("resume", func(t *testing.T) {
		src := strings.Join([]string{
			"# Jane Doe",
			"**Email:** jane@example.com | **Phone:** 555-0100",
			"",
			"## Experience",
			"**Senior Engineer**",
			"- Cut build times by 40%",
			"* Led a team of 5",
			"##### Notes",
			"Available immediately",
		}, "\n")

		want := Document{
			HeadingBlock(1, "Jane Doe"),
			MixedBlock(
				Run{Text: "Email:", Bold: true},
				Run{Text: " jane@example.com | "},
				Run{Text: "Phone:", Bold: true},
				Run{Text: " 555-0100"},
			),
			SpacerBlock(),
			HeadingBlock(2, "Experience"),
			BoldBlock("Senior Engineer"),
			BulletBlock("Cut build times by 40%"),
			BulletBlock("Led a team of 5"),
			HeadingBlock(4, "Notes"),
			PlainBlock("Available immediately"),
		}
		assert.Equal(t, want, Convert(src))
	})

	t.Run("crlf input", func(t *testing.T) {
		assert.Equal(t, Document{HeadingBlock(2, "Skills"), BulletBlock("Go")}, Convert("## Skills\r\n- Go\r\n"))
	})
}

func TestConvertOneBlockPerLine(t *testing.T) {
	inputs := []string{
		"a",
		"a\n",
		"\n",
		"a\nb",
		"\n\n\n",
		"# h\n\n- b\n**x**\ny **z** w\n",
		"** **\n****\n***\n*\n#",
	}
	for _, in := range inputs {
		doc := Convert(in)
		require.Len(t, doc, len(Lines(in)), "input %q", in)

		want := strings.Count(in, "\n")
		if !strings.HasSuffix(in, "\n") {
			want++
		}
		assert.Len(t, doc, want, "input %q", in)
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	src := "# T\n- a\n**b** c\n\nplain **odd"
	assert.Equal(t, Convert(src), Convert(src))
}

func TestSplitBold(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Run
	}{
		{name: "no markers", input: "text", expected: []Run{{Text: "text"}}},
		{name: "only empty pair", input: "****", expected: nil},
		{name: "lone marker", input: "**", expected: []Run{{Text: "**"}}},
		{name: "three markers", input: "**a** **", expected: []Run{{Text: "a", Bold: true}, {Text: " **"}}},
		{name: "adjacent pairs", input: "**a****b**", expected: []Run{{Text: "a", Bold: true}, {Text: "b", Bold: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitBold(tt.input))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "heading", Heading.String())
	assert.Equal(t, "spacer", Spacer.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
