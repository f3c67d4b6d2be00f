package docmodel

import (
	"strings"
	"unicode"
)

const boldMarker = "**"

// Convert classifies every line of source into exactly one Block.
// An empty source has no lines; a trailing newline terminates the last line
// rather than starting a new one.
func Convert(source string) Document {
	return ConvertLines(Lines(source))
}

func ConvertLines(lines []string) Document {
	doc := make(Document, 0, len(lines))
	for _, line := range lines {
		doc = append(doc, ClassifyLine(line))
	}
	return doc
}

// Lines splits source on '\n'.
func Lines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ClassifyLine maps a single source line to its Block. Rules are checked in
// order and the first match wins.
func ClassifyLine(line string) Block {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return SpacerBlock()

	case strings.HasPrefix(trimmed, "#"):
		hashes := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
		text := strings.TrimLeftFunc(trimmed[hashes:], unicode.IsSpace)
		return HeadingBlock(min(hashes, MaxHeadingLevel), text)

	case strings.HasPrefix(trimmed, "- "), strings.HasPrefix(trimmed, "* "):
		return BulletBlock(trimmed[2:])

	case strings.HasPrefix(trimmed, boldMarker) && strings.HasSuffix(trimmed, boldMarker):
		return BoldBlock(strings.TrimSpace(strings.ReplaceAll(trimmed, boldMarker, "")))

	case strings.Contains(trimmed, boldMarker):
		runs := SplitBold(trimmed)
		if len(runs) == 0 {
			return PlainBlock(trimmed)
		}
		return MixedBlock(runs...)

	default:
		return PlainBlock(trimmed)
	}
}

// SplitBold cuts text into alternating plain and bold runs at each paired
// "**...**". An opening marker with no partner stays in the text literally.
// Empty runs are dropped.
func SplitBold(text string) []Run {
	var runs []Run
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Text: plain.String()})
			plain.Reset()
		}
	}

	rest := text
	for {
		open := strings.Index(rest, boldMarker)
		if open < 0 {
			plain.WriteString(rest)
			break
		}
		closing := strings.Index(rest[open+len(boldMarker):], boldMarker)
		if closing < 0 {
			plain.WriteString(rest)
			break
		}

		plain.WriteString(rest[:open])
		flush()

		inner := rest[open+len(boldMarker) : open+len(boldMarker)+closing]
		if inner != "" {
			runs = append(runs, Run{Text: inner, Bold: true})
		}
		rest = rest[open+2*len(boldMarker)+closing:]
	}
	flush()

	return runs
}
