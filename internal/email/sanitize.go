package email

import (
    "html"

    "github.com/microcosm-cc/bluemonday"
)

// newsletterPolicy allowlists the markup an administrator may use in a
// newsletter body. Anything else, script tags and event handlers included,
// is stripped before the body reaches a recipient's mail client.
var newsletterPolicy = buildNewsletterPolicy()

func buildNewsletterPolicy() *bluemonday.Policy {
    p := bluemonday.NewPolicy()

    p.AllowElements(
        "p", "br", "strong", "b", "em", "i", "u", "s", "strike",
        "h1", "h2", "h3", "h4", "h5", "h6",
        "ul", "ol", "li",
        "a", "blockquote", "pre", "code",
        "hr", "div", "span",
    )

    p.AllowAttrs("class").Globally()
    p.AllowAttrs("href", "target", "rel").OnElements("a")
    p.AllowAttrs("style").OnElements("div", "span", "p")
    p.AllowStyles(
        "color", "background-color",
        "font-weight", "font-style",
        "text-align", "text-decoration",
    ).Globally()

    // http/https/mailto only; javascript: URIs never survive
    p.AllowURLSchemes("http", "https", "mailto")
    p.RequireParseableURLs(true)

    // every surviving anchor opens in a new context; target=_blank implies
    // rel=noopener in bluemonday, noreferrer is required explicitly
    p.AddTargetBlankToFullyQualifiedLinks(true)
    p.RequireNoReferrerOnLinks(true)

    return p
}

// SanitizeNewsletterHTML cleans administrator-authored rich content.
func SanitizeNewsletterHTML(raw string) string {
    return newsletterPolicy.Sanitize(raw)
}

// EscapeHTML escapes plain text for interpolation into an HTML template.
func EscapeHTML(text string) string {
    return html.EscapeString(text)
}
