// Package sanitize strips unsafe markup from provider-generated HTML
// before it is persisted. The policy keeps the structural tags the
// generation prompt asks for (headings, paragraphs, lists, emphasis,
// anchors) and drops everything else, including scripts, styles, and
// event-handler attributes.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "blockquote",
		"ul", "ol", "li",
		"strong", "em", "b", "i",
	)

	p.AllowStandardURLs()
	p.AllowAttrs("href", "title").OnElements("a")

	return p
}

// HTML returns body with disallowed tags and attributes removed.
func HTML(body string) string {
	return policy.Sanitize(body)
}
