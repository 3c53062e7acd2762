package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/blumenous/poetry-backend/internal/errors"
    "github.com/blumenous/poetry-backend/internal/model"
)

type CommentRepositoryInterface interface {
    ListByPoem(poemID string) ([]model.Comment, error)
    Create(c *model.Comment) error
    Delete(id string) error
}

type CommentRepository struct {
    DB *sql.DB
}

func (r *CommentRepository) ListByPoem(poemID string) ([]model.Comment, error) {
    query := `
        SELECT id, poem_id, visitor_id, author_name, content, created_at
        FROM comments
        WHERE poem_id=$1
        ORDER BY created_at DESC
    `
    rows, err := r.DB.Query(query, poemID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    comments := []model.Comment{}
    for rows.Next() {
        var c model.Comment
        if err := rows.Scan(&c.ID, &c.PoemID, &c.VisitorID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
            return nil, err
        }
        comments = append(comments, c)
    }
    return comments, rows.Err()
}

func (r *CommentRepository) Create(c *model.Comment) error {
    if c.ID == "" {
        c.ID = uuid.NewString()
    }
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO comments (id, poem_id, visitor_id, author_name, content, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
    _, err := r.DB.Exec(query, c.ID, c.PoemID, c.VisitorID, c.AuthorName, c.Content, c.CreatedAt)
    return err
}

func (r *CommentRepository) Delete(id string) error {
    res, err := r.DB.Exec(`DELETE FROM comments WHERE id=$1`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return appErrors.NewNotFoundError("comment", id)
    }
    return nil
}

var _ CommentRepositoryInterface = (*CommentRepository)(nil)
