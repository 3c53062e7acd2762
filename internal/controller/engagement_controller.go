package controller

import (
    "encoding/json"
    "net/http"
    "strings"

    "github.com/go-chi/chi/v5"

    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/repository"
)

const (
    maxAuthorNameLen = 50
    maxCommentLen    = 1000
)

// EngagementController serves the visitor-facing like and comment routes.
type EngagementController struct {
    PoemRepo    repository.PoemRepositoryInterface
    CommentRepo repository.CommentRepositoryInterface
    LikeRepo    repository.LikeRepositoryInterface
}

func (c *EngagementController) poemBySlug(w http.ResponseWriter, r *http.Request) *model.Poem {
    slug := chi.URLParam(r, "slug")
    poem, err := c.PoemRepo.GetBySlug(slug)
    if err != nil {
        writeServiceError(w, err)
        return nil
    }
    return poem
}

func (c *EngagementController) ListComments(w http.ResponseWriter, r *http.Request) {
    poem := c.poemBySlug(w, r)
    if poem == nil {
        return
    }

    comments, err := c.CommentRepo.ListByPoem(poem.ID)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

func (c *EngagementController) AddComment(w http.ResponseWriter, r *http.Request) {
    poem := c.poemBySlug(w, r)
    if poem == nil {
        return
    }

    var body struct {
        VisitorID  string `json:"visitorId"`
        AuthorName string `json:"authorName"`
        Content    string `json:"content"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    body.AuthorName = strings.TrimSpace(body.AuthorName)
    body.Content = strings.TrimSpace(body.Content)
    switch {
    case body.VisitorID == "":
        writeError(w, http.StatusBadRequest, "Visitor ID required")
        return
    case body.AuthorName == "" || body.Content == "":
        writeError(w, http.StatusBadRequest, "Name and comment are required")
        return
    case len(body.AuthorName) > maxAuthorNameLen:
        writeError(w, http.StatusBadRequest, "Name too long")
        return
    case len(body.Content) > maxCommentLen:
        writeError(w, http.StatusBadRequest, "Comment too long")
        return
    }

    comment := &model.Comment{
        PoemID:     poem.ID,
        VisitorID:  body.VisitorID,
        AuthorName: body.AuthorName,
        Content:    body.Content,
    }
    if err := c.CommentRepo.Create(comment); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, comment)
}

func (c *EngagementController) DeleteComment(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if err := c.CommentRepo.Delete(id); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// GetLikes reports the like count and whether the calling visitor liked.
func (c *EngagementController) GetLikes(w http.ResponseWriter, r *http.Request) {
    poem := c.poemBySlug(w, r)
    if poem == nil {
        return
    }

    count, err := c.LikeRepo.CountByPoem(poem.ID)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    hasLiked := false
    if visitorID := r.Header.Get("x-visitor-id"); visitorID != "" {
        hasLiked, err = c.LikeRepo.Exists(poem.ID, visitorID)
        if err != nil {
            writeServiceError(w, err)
            return
        }
    }

    writeJSON(w, http.StatusOK, map[string]any{"count": count, "hasLiked": hasLiked})
}

// ToggleLike likes the poem for this visitor, or unlikes when already liked.
func (c *EngagementController) ToggleLike(w http.ResponseWriter, r *http.Request) {
    poem := c.poemBySlug(w, r)
    if poem == nil {
        return
    }

    var body struct {
        VisitorID string `json:"visitorId"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.VisitorID == "" {
        writeError(w, http.StatusBadRequest, "Visitor ID required")
        return
    }

    liked, err := c.LikeRepo.Exists(poem.ID, body.VisitorID)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    if liked {
        if err := c.LikeRepo.Delete(poem.ID, body.VisitorID); err != nil {
            writeServiceError(w, err)
            return
        }
        writeJSON(w, http.StatusOK, map[string]bool{"liked": false})
        return
    }

    if err := c.LikeRepo.Create(&model.Like{PoemID: poem.ID, VisitorID: body.VisitorID}); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]bool{"liked": true})
}
