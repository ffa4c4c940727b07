// Package web holds the form page and its assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed index.html
var indexHTML string

//go:embed static
var static embed.FS

// Index is the form page. It is executed with the location list that
// fills the depot selector.
var Index = template.Must(template.New("index").Parse(indexHTML))

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
