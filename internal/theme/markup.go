package theme

import (
	"html"
)

const markupStyle = `<style>
    ._vardump {
        margin-bottom: 1em;
        font-family: monospace;
    }
    ._vardump pre {
        margin: 0;
    }
    ._vardump ._string {
        color: #f00;
    }
    ._vardump ._int {
        color: #008000;
    }
    ._vardump ._float {
        color: #fc7f00;
    }
    ._vardump ._bool {
        color: #f0f;
    }
    ._vardump ._null {
        color: #5c5cff;
    }
    ._vardump ._arrow,
    ._vardump ._empty,
    ._vardump ._more {
        color: #999;
    }
    ._vardump ._visibility {
        color: #888;
    }
    ._vardump ._recursion {
        color: #008000;
    }
</style>
`

var markupTags = [roleCount][2]string{
	RolePath:       {`<div class="_path">`, `</div>`},
	RoleEmpty:      {`<i class="_empty">`, `</i>`},
	RoleScalarType: {`<span class="_scalar">`, `</span>`},
	RoleString:     {`<span class="_string">`, `</span>`},
	RoleInt:        {`<span class="_int">`, `</span>`},
	RoleFloat:      {`<span class="_float">`, `</span>`},
	RoleBool:       {`<span class="_bool">`, `</span>`},
	RoleNull:       {`<span class="_null">`, `</span>`},
	RoleResource:   {`<b>`, `</b>`},
	RoleKeyword:    {`<b>`, `</b>`},
	RoleMeta:       {`<i>`, `</i>`},
	RoleArrow:      {`<span class="_arrow">`, `</span>`},
	RoleVisibility: {`<span class="_visibility">`, `</span>`},
	RoleRecursion:  {`<i class="_recursion">`, `</i>`},
	RoleMore:       {`<span class="_more">`, `</span>`},
}

// Markup returns the HTML theme. All text is escaped; the style sheet is
// emitted once per render call.
func Markup() Theme {
	return compose(NameMarkup, decorator{
		paint: func(r Role, s string) string {
			t := markupTags[r]
			return t[0] + s + t[1]
		},
		escape:   html.EscapeString,
		preamble: markupStyle + `<div class="_vardump">` + EOL,
		open:     "<pre>" + EOL,
		close:    "</pre>" + EOL + "</div>" + EOL,
	})
}
