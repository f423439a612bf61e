package parsing

import (
	"io"
	"regexp"

	"git.handmade.network/hmn/spoilers/src/config"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
)

type plaintextRenderer struct{}

var _ renderer.Renderer = plaintextRenderer{}

var backslashRegex = regexp.MustCompile("\\\\(?P<char>[\\\\\\x60!\"#$%&'()*+,-./:;<=>?@\\[\\]^_{|}~])")

// Plaintext is used for previews and notification emails, where there is no way to hide anything.
// Spoilers are replaced by a placeholder instead.
func (r plaintextRenderer) Render(w io.Writer, source []byte, n ast.Node) error {
	return ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindText:
			n := n.(*ast.Text)
			_, err := w.Write(backslashRegex.ReplaceAll(n.Text(source), []byte("$1")))
			if err != nil {
				return ast.WalkContinue, err
			}

			if n.SoftLineBreak() {
				_, err := w.Write([]byte(" "))
				if err != nil {
					return ast.WalkContinue, err
				}
			}
		case ast.KindString:
			_, err := w.Write(n.(*ast.String).Value)
			if err != nil {
				return ast.WalkContinue, err
			}
		case ast.KindParagraph:
			_, err := w.Write([]byte(" "))
			if err != nil {
				return ast.WalkContinue, err
			}
		case KindSpoiler:
			_, err := io.WriteString(w, spoilerPlaceholder(n.(*SpoilerNode)))
			if err != nil {
				return ast.WalkContinue, err
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
}

func (r plaintextRenderer) AddOptions(...renderer.Option) {}

func spoilerPlaceholder(n *SpoilerNode) string {
	placeholder := config.Config.Spoilers.PlaintextPlaceholder
	if n.HasTopic() {
		return "[" + placeholder + ": " + string(n.Topic) + "]"
	}
	return "[" + placeholder + "]"
}
