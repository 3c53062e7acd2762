package repository

import (
    "database/sql"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/blumenous/poetry-backend/internal/errors"
    "github.com/blumenous/poetry-backend/internal/model"
)

type PoemRepositoryInterface interface {
    ListPublished() ([]model.Poem, error)
    ListAll() ([]model.Poem, error)
    GetByID(id string) (*model.Poem, error)
    GetBySlug(slug string) (*model.Poem, error)
    Create(p *model.Poem) error
    Update(p *model.Poem) error
    Delete(id string) error
}

type PoemRepository struct {
    DB *sql.DB
}

const poemColumns = `id, slug, title, subtitle, content, plain_text, status, published_at, updated_at, url`

func scanPoem(row interface{ Scan(...any) error }) (*model.Poem, error) {
    var p model.Poem
    err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Subtitle, &p.Content, &p.PlainText,
        &p.Status, &p.PublishedAt, &p.UpdatedAt, &p.URL)
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// ListPublished returns published poems, newest first.
func (r *PoemRepository) ListPublished() ([]model.Poem, error) {
    query := `SELECT ` + poemColumns + ` FROM poems WHERE status='published' ORDER BY published_at DESC`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    poems := []model.Poem{}
    for rows.Next() {
        p, err := scanPoem(rows)
        if err != nil {
            return nil, err
        }
        poems = append(poems, *p)
    }
    return poems, rows.Err()
}

// ListAll returns every poem, drafts included, for the admin screens.
func (r *PoemRepository) ListAll() ([]model.Poem, error) {
    query := `SELECT ` + poemColumns + ` FROM poems ORDER BY published_at DESC`
    rows, err := r.DB.Query(query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    poems := []model.Poem{}
    for rows.Next() {
        p, err := scanPoem(rows)
        if err != nil {
            return nil, err
        }
        poems = append(poems, *p)
    }
    return poems, rows.Err()
}

func (r *PoemRepository) GetByID(id string) (*model.Poem, error) {
    query := `SELECT ` + poemColumns + ` FROM poems WHERE id=$1`
    p, err := scanPoem(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewNotFoundError("poem", id)
        }
        return nil, err
    }
    return p, nil
}

func (r *PoemRepository) GetBySlug(slug string) (*model.Poem, error) {
    query := `SELECT ` + poemColumns + ` FROM poems WHERE slug=$1 AND status='published'`
    p, err := scanPoem(r.DB.QueryRow(query, slug))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewNotFoundError("poem", slug)
        }
        return nil, err
    }
    return p, nil
}

func (r *PoemRepository) Create(p *model.Poem) error {
    if p.ID == "" {
        p.ID = uuid.NewString()
    }
    if p.Status == "" {
        p.Status = "draft"
    }
    if p.PublishedAt.IsZero() {
        p.PublishedAt = time.Now()
    }
    query := `
        INSERT INTO poems (id, slug, title, subtitle, content, plain_text, status, published_at, url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
    _, err := r.DB.Exec(query, p.ID, p.Slug, p.Title, p.Subtitle, p.Content, p.PlainText,
        p.Status, p.PublishedAt, p.URL)
    return err
}

func (r *PoemRepository) Update(p *model.Poem) error {
    query := `
        UPDATE poems
        SET slug=$1, title=$2, subtitle=$3, content=$4, plain_text=$5, status=$6, url=$7, updated_at=NOW()
        WHERE id=$8
    `
    res, err := r.DB.Exec(query, p.Slug, p.Title, p.Subtitle, p.Content, p.PlainText, p.Status, p.URL, p.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return appErrors.NewNotFoundError("poem", p.ID)
    }
    return nil
}

func (r *PoemRepository) Delete(id string) error {
    res, err := r.DB.Exec(`DELETE FROM poems WHERE id=$1`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return appErrors.NewNotFoundError("poem", id)
    }
    return nil
}

var _ PoemRepositoryInterface = (*PoemRepository)(nil)
