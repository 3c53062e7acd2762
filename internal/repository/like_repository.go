package repository

import (
    "database/sql"

    "github.com/google/uuid"

    "github.com/blumenous/poetry-backend/internal/model"
)

type LikeRepositoryInterface interface {
    CountByPoem(poemID string) (int, error)
    Exists(poemID, visitorID string) (bool, error)
    Create(l *model.Like) error
    Delete(poemID, visitorID string) error
}

type LikeRepository struct {
    DB *sql.DB
}

func (r *LikeRepository) CountByPoem(poemID string) (int, error) {
    var n int
    err := r.DB.QueryRow(`SELECT COUNT(*) FROM likes WHERE poem_id=$1`, poemID).Scan(&n)
    return n, err
}

func (r *LikeRepository) Exists(poemID, visitorID string) (bool, error) {
    var tmp int
    err := r.DB.QueryRow(
        `SELECT 1 FROM likes WHERE poem_id=$1 AND visitor_id=$2 LIMIT 1`,
        poemID, visitorID,
    ).Scan(&tmp)
    if err != nil {
        if err == sql.ErrNoRows {
            return false, nil
        }
        return false, err
    }
    return true, nil
}

func (r *LikeRepository) Create(l *model.Like) error {
    if l.ID == "" {
        l.ID = uuid.NewString()
    }
    query := `INSERT INTO likes (id, poem_id, visitor_id, created_at) VALUES ($1, $2, $3, NOW())`
    _, err := r.DB.Exec(query, l.ID, l.PoemID, l.VisitorID)
    return err
}

func (r *LikeRepository) Delete(poemID, visitorID string) error {
    _, err := r.DB.Exec(`DELETE FROM likes WHERE poem_id=$1 AND visitor_id=$2`, poemID, visitorID)
    return err
}

var _ LikeRepositoryInterface = (*LikeRepository)(nil)
