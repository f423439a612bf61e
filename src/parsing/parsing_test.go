package parsing

import (
	"strings"
	"testing"

	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func TestMarkdown(t *testing.T) {
	t.Run("fenced code blocks", func(t *testing.T) {
		t.Run("multiple lines", func(t *testing.T) {
			html := ParseMarkdown("```\nmultiple lines\n\tof code\n```", ForumRealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="hmn-code"`)
			assert.Contains(t, html, "multiple lines\n\tof code")
		})
		t.Run("multiple lines with language", func(t *testing.T) {
			html := ParseMarkdown("```go\nfunc main() {\n\tfmt.Println(\"Hello, world!\")\n}\n```", ForumRealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="hmn-code"`)
			assert.Contains(t, html, "Println")
			assert.Contains(t, html, "Hello, world!")
		})
	})
}

func TestBBCode(t *testing.T) {
	t.Run("[code]", func(t *testing.T) {
		t.Run("one line", func(t *testing.T) {
			html := ParseMarkdown("[code]Just some code, you know?[/code]", ForumRealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="hmn-code"`)
			assert.Contains(t, html, "Just some code, you know?")
		})
		t.Run("multiline", func(t *testing.T) {
			bbcode := `[code]
Multiline code
	with an indent
[/code]`
			html := ParseMarkdown(bbcode, ForumRealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, `class="hmn-code"`)
			assert.Contains(t, html, "Multiline code\n\twith an indent")
			assert.NotContains(t, html, "<br")
		})
		t.Run("multiline with language", func(t *testing.T) {
			bbcode := `[code language=go]
func main() {
	fmt.Println("Hello, world!")
}
[/code]`
			html := ParseMarkdown(bbcode, ForumRealMarkdown)
			t.Log(html)
			assert.Equal(t, 1, strings.Count(html, "<pre"))
			assert.Contains(t, html, "Println")
			assert.Contains(t, html, "Hello, world!")
		})
	})
}

func TestBBCodeSpoiler(t *testing.T) {
	t.Run("with topic", func(t *testing.T) {
		html := ParseMarkdown("The [spoiler=Ending]butler did it[/spoiler].", ForumRealMarkdown)
		assert.Contains(t, html, `class="spoiler"`)
		assert.Contains(t, html, `topic="Ending"`)
		assert.Contains(t, html, ">butler did it</span>")
	})
	t.Run("without topic", func(t *testing.T) {
		html := ParseMarkdown("The [spoiler]butler did it[/spoiler].", ForumRealMarkdown)
		assert.Contains(t, html, `<span class="spoiler">butler did it</span>`)
		assert.NotContains(t, html, "topic=")
	})
}

func TestForumMarkdownSpoilers(t *testing.T) {
	for _, md := range []goldmark.Markdown{ForumRealMarkdown, ForumPreviewMarkdown} {
		html := ParseMarkdown("A [Season 4](/s everybody dies), a ||butler||, and [x] >!y!<.", md)
		assert.Contains(t, html, `<span class="spoiler" topic="Season 4">everybody dies</span>`)
		assert.Contains(t, html, `<span class="spoiler">butler</span>`)
		assert.Contains(t, html, `<span class="spoiler" topic="x">y</span>`)
	}
}

func TestTryParseMarkdown(t *testing.T) {
	html, err := TryParseMarkdown("[topic](/spoiler hidden)", ForumPreviewMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "<p><span class=\"spoiler\" topic=\"topic\">hidden</span></p>\n", html)
}

var loremPost = func() string {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString(lorem.Paragraph(3, 6))
		sb.WriteString(" [")
		sb.WriteString(lorem.Word(4, 8))
		sb.WriteString("](/s ")
		sb.WriteString(lorem.Sentence(4, 10))
		sb.WriteString(") and >!")
		sb.WriteString(lorem.Word(4, 8))
		sb.WriteString("!< then ||")
		sb.WriteString(lorem.Word(4, 8))
		sb.WriteString("||\n\n")
	}
	return sb.String()
}()

func BenchmarkForumMarkdown(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ParseMarkdown(loremPost, ForumRealMarkdown)
	}
}
