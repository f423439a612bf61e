package parsing

import (
	"sort"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ----------------------
// Parser and delimiters
// ----------------------

type spoilerDelimiterParser struct{}

func NewSpoilerDelimiterParser() parser.InlineParser {
	return spoilerDelimiterParser{}
}

func (s spoilerDelimiterParser) Trigger() []byte {
	return []byte{'|'}
}

func (s spoilerDelimiterParser) Parse(parent gast.Node, block text.Reader, pc parser.Context) gast.Node {
	before := block.PrecendingCharacter()                                         // ScanDelimiter needs this for shady left vs. right delimiter reasons. Who delimits the delimiters?
	restOfLine, segment := block.PeekLine()                                       // Gets the rest of the line (starting at the current parser cursor index), and the segment representing the indices in the source text.
	delimiter := parser.ScanDelimiter(restOfLine, before, 2, spoilerDelimiters{}) // Scans a consecutive run of the trigger character. We do 2 here because we want ||spoilers||.
	if delimiter == nil {
		// I guess we only saw one | :)
		return nil
	}
	delimiter.Segment = segment.WithStop(segment.Start + delimiter.OriginalLength) // The delimiter needs to know exactly what source indices it corresponds to.
	block.Advance(delimiter.OriginalLength)                                        // Advance the parser past the delimiter.
	pc.PushDelimiter(delimiter)                                                    // Push the delimiter onto the stack (either opening or closing; both are handled the same way as far as this method is concerned).
	return delimiter
}

type spoilerDelimiters struct{}

func (p spoilerDelimiters) IsDelimiter(b byte) bool {
	return b == '|'
}

func (p spoilerDelimiters) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p spoilerDelimiters) OnMatch(consumes int) gast.Node {
	return NewSpoiler()
}

// ----------------------
// AST node
// ----------------------

// SpoilerNode is the one canonical spoiler, whichever notation produced it. It always renders with
// class="spoiler", and with a topic attribute only when Topic is non-empty.
type SpoilerNode struct {
	gast.BaseInline
	Topic []byte
}

var _ gast.Node = &SpoilerNode{}

func (n *SpoilerNode) Dump(source []byte, level int) {
	var kv map[string]string
	if n.HasTopic() {
		kv = map[string]string{"Topic": string(n.Topic)}
	}
	gast.DumpHelper(n, source, level, kv, nil)
}

var KindSpoiler = gast.NewNodeKind("Spoiler")

func (n *SpoilerNode) Kind() gast.NodeKind {
	return KindSpoiler
}

func (n *SpoilerNode) HasTopic() bool {
	return len(n.Topic) > 0
}

func NewSpoiler() *SpoilerNode {
	return &SpoilerNode{}
}

// NewSpoilerWithTopic makes a spoiler labeled with the given topic. An empty topic is the same as
// no topic at all.
func NewSpoilerWithTopic(topic []byte) *SpoilerNode {
	n := NewSpoiler()
	if len(topic) > 0 {
		n.Topic = topic
	}
	return n
}

// ----------------------
// Renderer
// ----------------------

type SpoilerHTMLRenderer struct {
	html.Config
}

func NewSpoilerHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &SpoilerHTMLRenderer{
		Config: html.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *SpoilerHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindSpoiler, r.renderSpoiler)
}

func (r *SpoilerHTMLRenderer) renderSpoiler(w util.BufWriter, source []byte, n gast.Node, entering bool) (gast.WalkStatus, error) {
	if entering {
		spoiler := n.(*SpoilerNode)
		_, _ = w.WriteString(`<span class="spoiler"`)
		if spoiler.HasTopic() {
			_, _ = w.WriteString(` topic="`)
			_, _ = w.Write(util.EscapeHTML(spoiler.Topic))
			_ = w.WriteByte('"')
		}
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString("</span>")
	}
	return gast.WalkContinue, nil
}

// ----------------------
// Passes
// ----------------------

type SpoilerStage int

const (
	// Runs while goldmark tokenizes inline text.
	StageInline SpoilerStage = iota
	// Runs once the whole document tree exists.
	StageTree
)

func (s SpoilerStage) String() string {
	switch s {
	case StageInline:
		return "inline"
	case StageTree:
		return "tree"
	}
	return "unknown"
}

// Goldmark runs lower priorities first. Its own link parser sits at 200, so anything that has to
// see a '[' before it becomes a link goes below that.
const (
	SpoilerSentinelPriority       = 150
	SpoilerLinkDestPriority       = 160
	SpoilerDelimiterPriority      = 500
	SpoilerLinkTransformPriority  = 100
	SpoilerMergeTransformPriority = 200
	SpoilerRendererPriority       = 500
)

type SpoilerPass struct {
	Name     string
	Stage    SpoilerStage
	Priority int

	// A parser.InlineParser for StageInline, a parser.ASTTransformer for StageTree.
	Pass interface{}
}

// DefaultSpoilerPasses lists every spoiler pass in the order goldmark will run it.
func DefaultSpoilerPasses() []SpoilerPass {
	return []SpoilerPass{
		{Name: "spoiler_sentinel", Stage: StageInline, Priority: SpoilerSentinelPriority, Pass: NewSpoilerSentinelParser()},
		{Name: "spoiler_link_destination", Stage: StageInline, Priority: SpoilerLinkDestPriority, Pass: NewSpoilerLinkDestinationParser()},
		{Name: "spoiler_delimiter", Stage: StageInline, Priority: SpoilerDelimiterPriority, Pass: NewSpoilerDelimiterParser()},
		{Name: "spoiler_links", Stage: StageTree, Priority: SpoilerLinkTransformPriority, Pass: NewSpoilerLinkTransformer()},
		{Name: "spoiler_merge", Stage: StageTree, Priority: SpoilerMergeTransformPriority, Pass: NewSpoilerMergeTransformer()},
	}
}

// SortedSpoilerPasses returns the passes in execution order: every inline pass runs before any tree
// pass, and within a stage lower priorities run first.
func SortedSpoilerPasses(passes []SpoilerPass) []SpoilerPass {
	sorted := make([]SpoilerPass, len(passes))
	copy(sorted, passes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Stage != sorted[j].Stage {
			return sorted[i].Stage < sorted[j].Stage
		}
		return sorted[i].Priority < sorted[j].Priority
	})
	return sorted
}

// ----------------------
// Extension
// ----------------------

type SpoilerExtension struct {
	// Passes to register. Nil means DefaultSpoilerPasses.
	Passes []SpoilerPass
}

func (e SpoilerExtension) Extend(m goldmark.Markdown) {
	passes := e.Passes
	if passes == nil {
		passes = DefaultSpoilerPasses()
	}

	for _, pass := range passes {
		switch pass.Stage {
		case StageInline:
			m.Parser().AddOptions(parser.WithInlineParsers(
				util.Prioritized(pass.Pass.(parser.InlineParser), pass.Priority),
			))
		case StageTree:
			m.Parser().AddOptions(parser.WithASTTransformers(
				util.Prioritized(pass.Pass.(parser.ASTTransformer), pass.Priority),
			))
		default:
			panic("unknown spoiler stage for pass " + pass.Name)
		}
	}
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewSpoilerHTMLRenderer(), SpoilerRendererPriority),
	))
}
