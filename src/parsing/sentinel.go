package parsing

import (
	"regexp"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Reddit's inline spoiler notation: >!hidden!< with an optional "[topic] " in front. The hidden
// text is non-greedy, so it ends at the first !<, and never crosses a line.
var (
	RESpoilerSentinelLabeled = regexp.MustCompile(`^\[(?P<topic>[^\[\]\n]*)\][ \t]>![ \t]?(?P<spoiler>.*?)[ \t]?!<`)
	RESpoilerSentinel        = regexp.MustCompile(`^>![ \t]?(?P<spoiler>.*?)[ \t]?!<`)
)

// SpoilerMatch describes one >!…!< region found by MatchSpoiler. All offsets are relative to the
// text that was searched.
type SpoilerMatch struct {
	Start, End    int // [Start, End) covers the whole notation, label included
	Spoiler       []byte
	SpoilerOffset int
	Topic         []byte // nil when there was no label
}

/*
MatchSpoiler tries to match the sentinel notation at the very start of src. The labeled form is
tried first; if it fails, the bare form is tried. A label that is not followed by a start sentinel
fails the whole match, since the bare form cannot start with '['.
*/
func MatchSpoiler(src []byte) (SpoilerMatch, bool) {
	if m, ok := matchSpoilerWith(RESpoilerSentinelLabeled, src); ok {
		return m, true
	}
	return matchSpoilerWith(RESpoilerSentinel, src)
}

func matchSpoilerWith(re *regexp.Regexp, src []byte) (SpoilerMatch, bool) {
	m := re.FindSubmatchIndex(src)
	if m == nil {
		return SpoilerMatch{}, false
	}

	spoilerStart, spoilerEnd, _ := submatchBounds(re, m, "spoiler")
	return SpoilerMatch{
		Start:         m[0],
		End:           m[1],
		Spoiler:       src[spoilerStart:spoilerEnd],
		SpoilerOffset: spoilerStart,
		Topic:         extractBySubmatchIndices(src, re, m, "topic"),
	}, true
}

// ----------------------
// Parser
// ----------------------

type spoilerSentinelParser struct{}

var _ parser.InlineParser = spoilerSentinelParser{}

func NewSpoilerSentinelParser() parser.InlineParser {
	return spoilerSentinelParser{}
}

func (s spoilerSentinelParser) Trigger() []byte {
	return []byte{'[', '>'}
}

func (s spoilerSentinelParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	restOfLine, segment := block.PeekLine()

	m, ok := MatchSpoiler(restOfLine)
	if !ok {
		// Leave the cursor alone so the link parser gets its turn.
		return nil
	}

	spoiler := NewSpoilerWithTopic(m.Topic)
	if len(m.Spoiler) > 0 {
		start := segment.Start + m.SpoilerOffset
		spoiler.AppendChild(spoiler, gast.NewTextSegment(text.NewSegment(start, start+len(m.Spoiler))))
	}
	block.Advance(m.End)
	return spoiler
}
