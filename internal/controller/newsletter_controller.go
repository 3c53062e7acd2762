// internal/controller/newsletter_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/blumenous/poetry-backend/internal/repository"
    "github.com/blumenous/poetry-backend/internal/service"
)

type NewsletterController struct {
    NewsletterService *service.NewsletterService
    EmailLogRepo      repository.EmailLogRepositoryInterface
    EmailEventRepo    repository.EmailEventRepositoryInterface
}

// SendEmail is the administrator's dispatch trigger.
func (c *NewsletterController) SendEmail(w http.ResponseWriter, r *http.Request) {
    var body service.SendNewsletterInput
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    result, err := c.NewsletterService.SendNewsletter(body)
    if err != nil {
        writeServiceError(w, err)
        return
    }

    writeJSON(w, http.StatusOK, result)
}

// ListEmailLogs backs the analytics screen: every dispatch with its
// open/click counters.
func (c *NewsletterController) ListEmailLogs(w http.ResponseWriter, r *http.Request) {
    logs, err := c.EmailLogRepo.List()
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

// ListEmailLogEvents returns the raw delivery events behind one log entry.
func (c *NewsletterController) ListEmailLogEvents(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    events, err := c.EmailEventRepo.ListByEmailLog(id)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
