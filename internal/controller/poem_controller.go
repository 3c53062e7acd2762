package controller

import (
    "encoding/json"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/blumenous/poetry-backend/internal/model"
    "github.com/blumenous/poetry-backend/internal/repository"
    "github.com/blumenous/poetry-backend/internal/service"
)

type PoemController struct {
    PoemService *service.PoemService
    PoemRepo    repository.PoemRepositoryInterface
}

func (c *PoemController) ListPoems(w http.ResponseWriter, r *http.Request) {
    poems, err := c.PoemService.ListPublished()
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"poems": poems})
}

func (c *PoemController) SearchPoems(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query().Get("q")
    if q == "" {
        writeError(w, http.StatusBadRequest, "Query required")
        return
    }
    poems, err := c.PoemService.Search(q)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"poems": poems})
}

func (c *PoemController) GetPoemTree(w http.ResponseWriter, r *http.Request) {
    tree, err := c.PoemService.BuildTree()
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"tree": tree})
}

func (c *PoemController) GetPoem(w http.ResponseWriter, r *http.Request) {
    slug := chi.URLParam(r, "slug")
    poem, prev, next, err := c.PoemService.GetWithNeighbors(slug)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "poem": poem,
        "prev": prev,
        "next": next,
    })
}

// ---- admin CRUD ----

type poemBody struct {
    Slug      string  `json:"slug"`
    Title     string  `json:"title"`
    Subtitle  *string `json:"subtitle"`
    Content   string  `json:"content"`
    PlainText *string `json:"plain_text"`
    Status    string  `json:"status"`
    URL       *string `json:"url"`
}

func (c *PoemController) ListAllPoems(w http.ResponseWriter, r *http.Request) {
    poems, err := c.PoemRepo.ListAll()
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"poems": poems})
}

func (c *PoemController) CreatePoem(w http.ResponseWriter, r *http.Request) {
    var body poemBody
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }
    if body.Slug == "" || body.Title == "" || body.Content == "" {
        writeError(w, http.StatusBadRequest, "slug, title and content are required")
        return
    }

    poem := &model.Poem{
        Slug:      body.Slug,
        Title:     body.Title,
        Subtitle:  body.Subtitle,
        Content:   body.Content,
        PlainText: body.PlainText,
        Status:    body.Status,
        URL:       body.URL,
    }
    if err := c.PoemRepo.Create(poem); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusCreated, poem)
}

func (c *PoemController) UpdatePoem(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    poem, err := c.PoemRepo.GetByID(id)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    var body poemBody
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    if body.Slug != "" {
        poem.Slug = body.Slug
    }
    if body.Title != "" {
        poem.Title = body.Title
    }
    if body.Content != "" {
        poem.Content = body.Content
    }
    if body.Status != "" {
        poem.Status = body.Status
    }
    if body.Subtitle != nil {
        poem.Subtitle = body.Subtitle
    }
    if body.PlainText != nil {
        poem.PlainText = body.PlainText
    }
    if body.URL != nil {
        poem.URL = body.URL
    }

    if err := c.PoemRepo.Update(poem); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, poem)
}

func (c *PoemController) DeletePoem(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if err := c.PoemRepo.Delete(id); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Poem deleted"})
}
