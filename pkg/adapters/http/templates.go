package http

import "html/template"

var templates = template.Must(template.New("").Parse(layoutHTML + pageHTML + editorHTML))

const layoutHTML = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Poles and Zeros</title>
    <style>
        body { background: #0a0a0a; color: #e5e7eb; font-family: system-ui, sans-serif; }
        .panel { max-width: 42rem; margin: 2rem auto; padding: 1.5rem; border-radius: 1rem; background: #141414; }
        .row { display: flex; gap: .75rem; align-items: center; margin: .5rem 0; }
        input[type=number] { background: #1e293b; color: #fff; border: 0; border-radius: .375rem; padding: .5rem 1rem; }
        button { border: 0; border-radius: .375rem; padding: .5rem 1rem; font-weight: 500; cursor: pointer; }
        .add-pole { background: #06b6d4; } .add-zero { background: #f97316; }
        .update { background: #1e293b; color: #fff; } .remove { background: #ef4444; }
        .warn { color: #fbbf24; } .error { color: #f87171; }
        h1 { font-size: 1.25rem; font-weight: 700; color: #e5e7eb; }
        hr { border-color: #374151; opacity: .8; }
    </style>
</head>
<body>{{end}}
{{define "foot"}}</body>
</html>{{end}}
{{define "points"}}
{{range .Sections}}{{if .Rows}}
    <h1>{{.Title}}</h1>
    <hr />
    {{range .Rows}}<div class="row"><p>Mag</p><span>{{.Magnitude}}</span><p>Phase (Deg)</p><span>{{.Phase}}</span>{{if .Warn}}<span class="warn">out of range</span>{{end}}</div>
    {{end}}
{{end}}{{end}}
{{end}}
`

const pageHTML = `
{{define "page"}}{{template "head" .}}
<div class="panel">
    {{template "points" .}}
    <form method="post" action="{{.Editor}}">
        <input type="hidden" name="{{.Param}}" value="{{.Raw}}" />
        <input type="hidden" name="return" value="{{.Return}}" />
        <button type="submit" class="update">+ Add/Edit Poles and Zeros</button>
    </form>
</div>
{{template "foot" .}}{{end}}
`

const editorHTML = `
{{define "editor"}}{{template "head" .}}
<div class="panel">
    {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
    {{$root := .}}
    {{range .Sections}}{{$kind := .Kind}}{{if .Rows}}
    <h1>{{.Title}}</h1>
    <hr />
    {{range .Rows}}
    <div class="row">
        <form class="row" method="post" action="{{$root.Action}}/set">
            <input type="hidden" name="kind" value="{{$kind}}" />
            <input type="hidden" name="index" value="{{.Index}}" />
            <input type="hidden" name="return" value="{{$root.Return}}" />
            <p>Mag</p>
            <input type="number" name="magnitude" value="{{.Magnitude}}" min="{{index $root.Limits "MagMin"}}" max="{{index $root.Limits "MagMax"}}" step="{{index $root.Limits "MagStep"}}"{{if $root.Strict}} required{{end}} />
            <p>Phase (Deg)</p>
            <input type="number" name="phase" value="{{.Phase}}" min="{{index $root.Limits "PhMin"}}" max="{{index $root.Limits "PhMax"}}" step="{{index $root.Limits "PhStep"}}"{{if $root.Strict}} required{{end}} />
            <button type="submit" class="update">Set</button>
        </form>
        <form method="post" action="{{$root.Action}}/remove">
            <input type="hidden" name="kind" value="{{$kind}}" />
            <input type="hidden" name="index" value="{{.Index}}" />
            <input type="hidden" name="return" value="{{$root.Return}}" />
            <button type="submit" class="remove">X</button>
        </form>
    </div>
    {{end}}
    {{end}}{{end}}
    <div class="row">
        <form method="post" action="{{.Action}}/add">
            <input type="hidden" name="kind" value="pole" />
            <input type="hidden" name="return" value="{{.Return}}" />
            <button type="submit" class="add-pole">Add Pole</button>
        </form>
        <form method="post" action="{{.Action}}/add">
            <input type="hidden" name="kind" value="zero" />
            <input type="hidden" name="return" value="{{.Return}}" />
            <button type="submit" class="add-zero">Add Zero</button>
        </form>
        <form method="post" action="{{.Action}}/publish">
            <input type="hidden" name="return" value="{{.Return}}" />
            <button type="submit" class="update">Update</button>
        </form>
        <form method="post" action="{{.Action}}/close">
            <input type="hidden" name="return" value="{{.Return}}" />
            <button type="submit" class="update">Close</button>
        </form>
    </div>
</div>
{{template "foot" .}}{{end}}
`
