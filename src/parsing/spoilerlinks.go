package parsing

import (
	"bytes"
	"regexp"

	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// The historical reddit notation: links to these destinations are spoilers, not links.
var SpoilerLinkSentinels = [][]byte{
	[]byte("/spoiler"),
	[]byte("/s"),
	[]byte("#spoiler"),
	[]byte("#s"),
}

// ----------------------
// Destination parser
// ----------------------

// CommonMark does not allow spaces in a bare link destination, so [topic](/s hidden text) is not a
// link to goldmark. This recovers exactly that form when the destination starts with a sentinel.
// Quoted remainders are left alone; those are regular link titles. One level of balanced
// parentheses may appear in the remainder.
var RESpoilerLinkDestination = regexp.MustCompile(`^\[(?P<label>[^\[\]\n]*)\]\((?P<dest>(?:/spoiler|/s|#spoiler|#s) [^\s"'()](?:[^()\n]|\([^()\n]*\))*)\)`)

type spoilerLinkDestinationParser struct{}

var _ parser.InlineParser = spoilerLinkDestinationParser{}

func NewSpoilerLinkDestinationParser() parser.InlineParser {
	return spoilerLinkDestinationParser{}
}

func (s spoilerLinkDestinationParser) Trigger() []byte {
	return []byte{'['}
}

func (s spoilerLinkDestinationParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	restOfLine, segment := block.PeekLine()

	m := RESpoilerLinkDestination.FindSubmatchIndex(restOfLine)
	if m == nil {
		return nil
	}

	link := gast.NewLink()
	link.Destination = extractBySubmatchIndices(restOfLine, RESpoilerLinkDestination, m, "dest")
	if labelStart, labelEnd, _ := submatchBounds(RESpoilerLinkDestination, m, "label"); labelEnd > labelStart {
		link.AppendChild(link, gast.NewTextSegment(text.NewSegment(segment.Start+labelStart, segment.Start+labelEnd)))
	}
	block.Advance(m[1])
	return link
}

// ----------------------
// Link transformer
// ----------------------

type spoilerLinkTransformer struct{}

var _ parser.ASTTransformer = spoilerLinkTransformer{}

func NewSpoilerLinkTransformer() parser.ASTTransformer {
	return spoilerLinkTransformer{}
}

func (t spoilerLinkTransformer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	// Collect first; replacing nodes mid-walk would confuse the walker.
	var links []*gast.Link
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if link, ok := n.(*gast.Link); ok {
			links = append(links, link)
		}
		return gast.WalkContinue, nil
	})

	for _, link := range links {
		spoiler := RewriteSpoilerLink(link, source)
		if spoiler == nil {
			continue
		}
		if parent := link.Parent(); parent != nil {
			parent.ReplaceChild(parent, link, spoiler)
		}
	}
}

/*
RewriteSpoilerLink returns the spoiler that should take the link's place, or nil if the link is
just a link. The first matching rule wins:

 1. The destination is exactly a sentinel. With a title, the title is the hidden text and the
    link text is the topic. Without one, the link text is the hidden text.
 2. The destination is a sentinel, one space, and a non-empty remainder. The remainder is the
    hidden text and the link text is the topic.

No part of the link besides its text survives. When the link text is reused as hidden text, its
children are moved into the spoiler, so the link is left empty.
*/
func RewriteSpoilerLink(link *gast.Link, source []byte) *SpoilerNode {
	if isSpoilerSentinel(link.Destination) {
		if len(link.Title) > 0 {
			spoiler := NewSpoilerWithTopic(link.Text(source))
			spoiler.AppendChild(spoiler, gast.NewString(link.Title))
			return spoiler
		}

		spoiler := NewSpoiler()
		for child := link.FirstChild(); child != nil; {
			next := child.NextSibling()
			spoiler.AppendChild(spoiler, child)
			child = next
		}
		return spoiler
	}

	if hidden, ok := trimSpoilerSentinel(link.Destination); ok {
		spoiler := NewSpoilerWithTopic(link.Text(source))
		spoiler.AppendChild(spoiler, gast.NewString(hidden))
		return spoiler
	}

	return nil
}

func isSpoilerSentinel(dest []byte) bool {
	for _, sentinel := range SpoilerLinkSentinels {
		if bytes.Equal(dest, sentinel) {
			return true
		}
	}
	return false
}

// Returns what follows "<sentinel> ". The remainder must be non-empty and may not start with
// another space.
func trimSpoilerSentinel(dest []byte) ([]byte, bool) {
	for _, sentinel := range SpoilerLinkSentinels {
		if !bytes.HasPrefix(dest, sentinel) {
			continue
		}
		rest := dest[len(sentinel):]
		if len(rest) >= 2 && rest[0] == ' ' && rest[1] != ' ' {
			return rest[1:], true
		}
	}
	return nil, false
}
