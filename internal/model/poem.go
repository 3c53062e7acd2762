// internal/model/poem.go
package model

import "time"

type Poem struct {
    ID          string     `db:"id" json:"id"`
    Slug        string     `db:"slug" json:"slug"`
    Title       string     `db:"title" json:"title"`
    Subtitle    *string    `db:"subtitle" json:"subtitle,omitempty"`
    Content     string     `db:"content" json:"content"`
    PlainText   *string    `db:"plain_text" json:"plain_text,omitempty"`
    Status      string     `db:"status" json:"status"` // draft, published
    PublishedAt time.Time  `db:"published_at" json:"published_at"`
    UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
    URL         *string    `db:"url" json:"url,omitempty"`
}
