package controller

import (
    "encoding/json"
    "net/http"

    "github.com/go-chi/chi/v5"

    "github.com/blumenous/poetry-backend/internal/service"
    "github.com/blumenous/poetry-backend/internal/util"
)

type SubscriberController struct {
    SubscriberService *service.SubscriberService
}

type emailBody struct {
    Email string `json:"email"`
}

func (c *SubscriberController) Subscribe(w http.ResponseWriter, r *http.Request) {
    var body emailBody
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    msg, err := c.SubscriberService.Subscribe(body.Email)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (c *SubscriberController) Unsubscribe(w http.ResponseWriter, r *http.Request) {
    var body emailBody
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    if err := c.SubscriberService.Unsubscribe(body.Email); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully unsubscribed"})
}

// UnsubscribeLink serves the unsubscribe anchor embedded in every outgoing
// email: flips the subscriber and redirects to the confirmation page.
func (c *SubscriberController) UnsubscribeLink(w http.ResponseWriter, r *http.Request) {
    emailAddr := r.URL.Query().Get("email")
    if emailAddr == "" {
        writeError(w, http.StatusBadRequest, "Email required")
        return
    }

    if err := c.SubscriberService.Unsubscribe(emailAddr); err != nil {
        writeServiceError(w, err)
        return
    }
    http.Redirect(w, r, util.SiteURL()+"/unsubscribe", http.StatusFound)
}

func (c *SubscriberController) ListSubscribers(w http.ResponseWriter, r *http.Request) {
    subs, err := c.SubscriberService.List()
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"subscribers": subs})
}

func (c *SubscriberController) DeleteSubscriber(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if err := c.SubscriberService.Delete(id); err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"message": "Subscriber deleted"})
}
