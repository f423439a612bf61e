package parsing

import (
	"bytes"

	"git.handmade.network/hmn/spoilers/src/oops"
	"git.handmade.network/hmn/spoilers/src/utils"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/util"
)

// Used for generating the final HTML for a post.
var ForumRealMarkdown = goldmark.New(
	goldmark.WithExtensions(makeGoldmarkExtensions(false)...),
)

// Used for rendering real-time previews of post content. Skips syntax highlighting so the editor
// stays responsive.
var ForumPreviewMarkdown = goldmark.New(
	goldmark.WithExtensions(makeGoldmarkExtensions(true)...),
)

// Used for generating plain-text previews of posts.
var PlaintextMarkdown = goldmark.New(
	goldmark.WithExtensions(makeGoldmarkExtensions(true)...),
	goldmark.WithRenderer(plaintextRenderer{}),
)

func ParseMarkdown(source string, md goldmark.Markdown) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		panic(oops.New(err, "failed to render markdown"))
	}

	return buf.String()
}

// Like ParseMarkdown, but returns renderer failures (and panics from extensions) as errors.
func TryParseMarkdown(source string, md goldmark.Markdown) (html string, err error) {
	defer utils.RecoverPanicAsError(&err)
	return ParseMarkdown(source, md), nil
}

func makeGoldmarkExtensions(preview bool) []goldmark.Extender {
	extenders := []goldmark.Extender{
		extension.GFM,
		SpoilerExtension{},
		BBCodeExtension{},
	}
	if !preview {
		extenders = append(extenders, highlightExtension)
	}
	return extenders
}

var highlightExtension = highlighting.NewHighlighting(
	highlighting.WithFormatOptions(HMNChromaOptions...),
	highlighting.WithWrapperRenderer(func(w util.BufWriter, context highlighting.CodeBlockContext, entering bool) {
		if entering {
			w.WriteString(`<pre class="hmn-code">`)
		} else {
			w.WriteString(`</pre>`)
		}
	}),
)
