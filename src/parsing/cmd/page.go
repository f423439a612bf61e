package cmd

import (
	"html/template"
	"io"

	"git.handmade.network/hmn/spoilers/src/oops"
	"github.com/Masterminds/sprig"
)

var pageTemplate = template.Must(template.New("page").Funcs(sprig.FuncMap()).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title | trim | default .Name }}</title>
<style>
.spoiler { background: #333; color: #333; cursor: pointer; }
.spoiler:hover, .spoiler:focus { color: inherit; background: inherit; }
.spoiler[topic]::before { content: attr(topic) ": "; color: #999; }
</style>
</head>
<body>
{{ .Body }}
</body>
</html>
`))

type pageData struct {
	Title string
	Name  string
	Body  template.HTML
}

func writePage(w io.Writer, title, name, html string) error {
	err := pageTemplate.Execute(w, pageData{
		Title: title,
		Name:  name,
		Body:  template.HTML(html),
	})
	if err != nil {
		return oops.New(err, "failed to write page")
	}
	return nil
}
