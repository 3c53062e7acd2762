// internal/model/comment.go
package model

import "time"

type Comment struct {
    ID         string    `db:"id" json:"id"`
    PoemID     string    `db:"poem_id" json:"poem_id"`
    VisitorID  string    `db:"visitor_id" json:"-"`
    AuthorName string    `db:"author_name" json:"author_name"`
    Content    string    `db:"content" json:"content"`
    CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
