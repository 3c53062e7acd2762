package controller

import (
    "io"
    "log"
    "net/http"

    "github.com/blumenous/poetry-backend/internal/service"
    "github.com/blumenous/poetry-backend/internal/util"
    "github.com/blumenous/poetry-backend/internal/webhook"
)

type WebhookController struct {
    EventService *service.EventService
}

// HandleEmailEvent ingests one provider webhook call. Signature failure is
// the only hard rejection; any processing failure after that point is
// logged and swallowed so the provider never enters a re-delivery storm
// over a dropped analytics event.
func (c *WebhookController) HandleEmailEvent(w http.ResponseWriter, r *http.Request) {
    payload, err := io.ReadAll(r.Body)
    if err != nil {
        writeError(w, http.StatusBadRequest, "unreadable body")
        return
    }

    secret := util.GetEnv("RESEND_WEBHOOK_SECRET", "")
    if !webhook.VerifySignature(payload, r.Header.Get("svix-signature"), secret) {
        log.Println("⚠️ invalid webhook signature")
        writeError(w, http.StatusUnauthorized, "Invalid signature")
        return
    }

    if err := c.EventService.Ingest(payload); err != nil {
        log.Println("⚠️ webhook event not recorded:", err)
    }

    writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
