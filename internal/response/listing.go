package response

import (
	"fmt"
	"strings"

	"github.com/HMasataka/tinyhttpd/internal/resolver"
	"github.com/samber/lo"
)

const ErrorBody = "<h1>Sorry, but there was some kind of error(</h1>"

const stylesheet = `
        <style>
        body{
            background: #000000; 
            background: -webkit-linear-gradient(to left, #000000 , #434343); 
            background: linear-gradient(to left, #000000 , #434343); 
        }
        ul{
            font-size: 20px;
        }
        li, a{
            color: white;
        }
        li:hover{
            font-size: 25px;
        }
        </style>
    `

// renderListing writes names verbatim, without HTML escaping.
func renderListing(t resolver.Target) string {
	var b strings.Builder

	fmt.Fprintf(&b, `<html><head><meta charset="UTF-8"><title>%s</title></head><body><ul>`, t.Path)

	items := lo.Map(t.Entries, func(entry string, _ int) string {
		href := lo.Ternary(t.Name == "", entry, t.Name+"/"+entry)
		return fmt.Sprintf(`<li><a href="%s">%s</a></li>`, href, entry)
	})
	b.WriteString(strings.Join(items, ""))

	b.WriteString(`</ul></body></html>`)
	b.WriteString(stylesheet)

	return b.String()
}
