package email

import (
    "net/url"
    "strings"
    "testing"
)

func TestRenderNewsletterHTMLEscapesSubject(t *testing.T) {
    out := RenderNewsletterHTML(NewsletterData{
        Subject:          `Roses & <Thorns>`,
        BodyHTML:         "<p>Hello</p>",
        BodyText:         "Hello",
        UnsubscribeEmail: "reader@x.com",
    })
    if strings.Contains(out, "<Thorns>") {
        t.Error("subject reached the document unescaped")
    }
    if !strings.Contains(out, "Roses &amp; &lt;Thorns&gt;") {
        t.Error("escaped subject missing from the document")
    }
}

func TestRenderNewsletterHTMLSanitizesBody(t *testing.T) {
    out := RenderNewsletterHTML(NewsletterData{
        Subject:          "Spring",
        BodyHTML:         `<p>Hello</p><script>alert(1)</script>`,
        BodyText:         "Hello",
        UnsubscribeEmail: "reader@x.com",
    })
    if strings.Contains(out, "<script") {
        t.Error("script tag survived into the rendered document")
    }
    if !strings.Contains(out, "<p>Hello</p>") {
        t.Error("body markup missing from the rendered document")
    }
}

func TestRenderNewsletterHTMLUnsubscribeLink(t *testing.T) {
    out := RenderNewsletterHTML(NewsletterData{
        Subject:          "Spring",
        BodyHTML:         "<p>Hello</p>",
        BodyText:         "Hello",
        UnsubscribeEmail: "reader+poetry@x.com",
    })
    want := "/api/unsubscribe?email=" + url.QueryEscape("reader+poetry@x.com")
    if !strings.Contains(out, want) {
        t.Errorf("document does not contain unsubscribe link %q", want)
    }
}

func TestRenderNewsletterHTMLPoemSection(t *testing.T) {
    out := RenderNewsletterHTML(NewsletterData{
        Subject:  "Spring",
        BodyHTML: "<p>Hello</p>",
        BodyText: "Hello",
        Poem: &PoemBlock{
            Title:   "Spring Rain",
            Content: "The rain arrives\n\nlike an old friend",
            Slug:    "spring-rain",
        },
        UnsubscribeEmail: "reader@x.com",
    })
    if !strings.Contains(out, "Spring Rain") {
        t.Error("poem title missing")
    }
    if !strings.Contains(out, "/poem/spring-rain") {
        t.Error("poem link missing")
    }
    if !strings.Contains(out, "The rain arrives") || !strings.Contains(out, "like an old friend") {
        t.Error("poem lines missing")
    }
    // the blank line between stanzas renders as a break
    if !strings.Contains(out, "<br>") {
        t.Error("stanza break missing")
    }
}

func TestRenderNewsletterText(t *testing.T) {
    data := NewsletterData{
        Subject:  "Spring",
        BodyText: "Hello reader",
        Poem: &PoemBlock{
            Title:   "Spring Rain",
            Content: "The rain arrives",
            Slug:    "spring-rain",
        },
        UnsubscribeEmail: "reader@x.com",
    }
    out := RenderNewsletterText(data)

    for _, want := range []string{
        "Spring",
        "Hello reader",
        "Spring Rain",
        "The rain arrives",
        "/poem/spring-rain",
        "Unsubscribe: ",
        url.QueryEscape("reader@x.com"),
    } {
        if !strings.Contains(out, want) {
            t.Errorf("plain-text render missing %q", want)
        }
    }
    if strings.Contains(out, "<p>") {
        t.Error("plain-text render contains markup")
    }
}

func TestFormatLinesEscapesAndBreaks(t *testing.T) {
    out := formatLines("first & second\n\n<third>")
    if !strings.Contains(out, "first &amp; second") {
        t.Errorf("line was not escaped: %q", out)
    }
    if !strings.Contains(out, "&lt;third&gt;") {
        t.Errorf("markup in a line was not escaped: %q", out)
    }
    if !strings.Contains(out, "<br>") {
        t.Errorf("blank line did not become a break: %q", out)
    }
}
