package parsing

import (
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Different notations can wrap the same text twice, e.g. [>!text!<](/s). This folds that back into
// one spoiler. It is a single flat pass; only one level of nesting is ever collapsed.
type spoilerMergeTransformer struct{}

var _ parser.ASTTransformer = spoilerMergeTransformer{}

func NewSpoilerMergeTransformer() parser.ASTTransformer {
	return spoilerMergeTransformer{}
}

func (t spoilerMergeTransformer) Transform(doc *gast.Document, reader text.Reader, pc parser.Context) {
	var spoilers []*SpoilerNode
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if spoiler, ok := n.(*SpoilerNode); ok {
			spoilers = append(spoilers, spoiler)
		}
		return gast.WalkContinue, nil
	})

	for _, spoiler := range spoilers {
		if !isWithin(spoiler, doc) {
			// Folded away by an earlier merge.
			continue
		}
		MergeNestedSpoiler(spoiler)
	}
}

func isWithin(n, root gast.Node) bool {
	for ; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}

/*
MergeNestedSpoiler folds the only spoiler child of n into n. It does nothing if n has zero or
several spoiler children, or if both n and that child have a topic.

The child's other content takes the child's place in n, so whatever n already had in front of it
stays in front. Spoilers nested inside the child are dropped, not hoisted. The merged spoiler keeps
n's topic; a topic on the child is dropped along with the child.
*/
func MergeNestedSpoiler(n *SpoilerNode) bool {
	var only *SpoilerNode
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if child, ok := c.(*SpoilerNode); ok {
			if only != nil {
				return false
			}
			only = child
		}
	}
	if only == nil {
		return false
	}
	if n.HasTopic() && only.HasTopic() {
		return false
	}

	for c := only.FirstChild(); c != nil; {
		next := c.NextSibling()
		if _, isSpoiler := c.(*SpoilerNode); !isSpoiler {
			n.InsertBefore(n, only, c)
		}
		c = next
	}
	n.RemoveChild(n, only)
	return true
}
