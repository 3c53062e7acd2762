package email

import (
    "fmt"
    "net/url"
    "strings"

    "github.com/blumenous/poetry-backend/internal/util"
)

// PoemBlock is the optional poem attached to a newsletter.
type PoemBlock struct {
    Title   string
    Content string
    Slug    string
}

// NewsletterData carries everything needed to render one recipient's copy.
// UnsubscribeEmail is the recipient's own address so the unsubscribe link is
// recipient-specific.
type NewsletterData struct {
    Subject          string
    BodyHTML         string
    BodyText         string
    Poem             *PoemBlock
    UnsubscribeEmail string
}

const fontStack = "'Crimson Text', Georgia, 'Times New Roman', serif"

func unsubscribeURL(email string) string {
    return util.SiteURL() + "/api/unsubscribe?email=" + url.QueryEscape(email)
}

func poemURL(slug string) string {
    return util.SiteURL() + "/poem/" + slug
}

// formatLines turns plain text into escaped paragraph markup, one <p> per
// line, blank lines becoming <br>.
func formatLines(text string) string {
    lines := strings.Split(text, "\n")
    out := make([]string, 0, len(lines))
    for _, line := range lines {
        if strings.TrimSpace(line) == "" {
            out = append(out, "<br>")
            continue
        }
        out = append(out, `<p style="margin: 0; line-height: 1.8;">`+EscapeHTML(line)+`</p>`)
    }
    return strings.Join(out, "\n")
}

// RenderNewsletterHTML produces the HTML document for one recipient. All
// human-authored text is escaped; the rich body passes through the
// sanitizer allowlist.
func RenderNewsletterHTML(d NewsletterData) string {
    safeSubject := EscapeHTML(d.Subject)
    safeBody := SanitizeNewsletterHTML(d.BodyHTML)

    poemSection := ""
    if d.Poem != nil {
        poemSection = fmt.Sprintf(`
      <div style="margin-top: 32px; padding-top: 24px; border-top: 1px solid #e4e4e7;">
        <h2 style="color: #09090b; font-size: 20px; font-weight: normal; margin: 0 0 16px 0;">
          %s
        </h2>
        <div style="color: #09090b; font-size: 16px; line-height: 1.8;">
          %s
        </div>
        <div style="margin-top: 24px;">
          <a href="%s" style="color: #2563eb; text-decoration: none;">
            Read on Blumenous Poetry &rarr;
          </a>
        </div>
      </div>`,
            EscapeHTML(d.Poem.Title), formatLines(d.Poem.Content), poemURL(d.Poem.Slug))
    }

    return strings.TrimSpace(fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s</title>
</head>
<body style="font-family: %s; background-color: #f8f8f8; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; padding: 40px 20px;">
    <div style="background-color: #ffffff; padding: 40px; border-radius: 8px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.06);">
      <h1 style="color: #09090b; font-size: 24px; font-weight: normal; margin: 0 0 24px 0; border-bottom: 1px solid #e4e4e7; padding-bottom: 16px;">
        %s
      </h1>

      <div style="color: #09090b; font-size: 16px; line-height: 1.6;">
        %s
      </div>
%s
    </div>

    <div style="text-align: center; margin-top: 24px; color: #52525b; font-size: 12px;">
      <p style="margin: 0 0 8px 0;">
        Blumenous Poetry
      </p>
      <p style="margin: 0;">
        <a href="%s" style="color: #52525b; text-decoration: underline;">
          Unsubscribe
        </a>
      </p>
    </div>
  </div>
</body>
</html>`,
        safeSubject, fontStack, safeSubject, safeBody, poemSection, unsubscribeURL(d.UnsubscribeEmail)))
}

// RenderNewsletterText produces the plain-text fallback document.
func RenderNewsletterText(d NewsletterData) string {
    var b strings.Builder
    b.WriteString(d.Subject)
    b.WriteString("\n\n")
    b.WriteString(d.BodyText)
    b.WriteString("\n")
    if d.Poem != nil {
        b.WriteString("\n---\n\n")
        b.WriteString(d.Poem.Title)
        b.WriteString("\n\n")
        b.WriteString(d.Poem.Content)
        b.WriteString("\n\nRead on Blumenous Poetry: ")
        b.WriteString(poemURL(d.Poem.Slug))
        b.WriteString("\n")
    }
    b.WriteString("\n---\n\nUnsubscribe: ")
    b.WriteString(unsubscribeURL(d.UnsubscribeEmail))
    return b.String()
}
