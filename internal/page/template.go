package page

import "html/template"

type pageView struct {
	Title      string
	Refresh    int
	Dark       bool
	Autoscroll bool
	Messages   []messageView
}

type messageView struct {
	User string
	Body template.HTML
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if gt .Refresh 0}}
<meta http-equiv="refresh" content="{{.Refresh}}">
{{- end}}
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; background: #fafafa; color: #222; }
body.dark-mode { background: #1e1e1e; color: #ddd; }
#messages { max-width: 48rem; margin: 0 auto; padding: 1rem; }
.message { padding: .5rem 0; border-bottom: 1px solid #ddd; }
.dark-mode .message { border-color: #444; }
.user { font-weight: bold; margin-right: .5rem; }
.image-preview img, .message-image { max-width: 100%; max-height: 20rem; display: block; }
.web-preview a { display: block; border: 1px solid #ccc; border-radius: .4rem; padding: .4rem .8rem; text-decoration: none; color: inherit; }
.web-preview h4 { margin: 0; }
.web-preview p { margin: .2rem 0 0; color: #2a6fdb; }
</style>
</head>
<body{{if .Dark}} class="dark-mode"{{end}}>
<div id="messages">
{{- range .Messages}}
<div class="message"><span class="user">{{.User}}</span><span class="text">{{.Body}}</span></div>
{{- end}}
</div>
{{- if .Autoscroll}}
<script>window.scrollTo(0, document.body.scrollHeight);</script>
{{- end}}
</body>
</html>
`))
