package controller

import (
    "encoding/json"
    "errors"
    "log"
    "net/http"

    appErrors "github.com/blumenous/poetry-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
    writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// validation and empty-audience failures are the caller's to fix, a missing
// referenced resource is 404, everything else is a 500 with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
    var validation *appErrors.ValidationError
    var notFound *appErrors.NotFoundError
    var noRecipients *appErrors.NoRecipientsError
    var allFailed *appErrors.AllSendsFailedError

    switch {
    case errors.As(err, &validation):
        writeError(w, http.StatusBadRequest, validation.Message)
    case errors.As(err, &notFound):
        writeError(w, http.StatusNotFound, err.Error())
    case errors.As(err, &noRecipients):
        writeError(w, http.StatusBadRequest, "No active subscribers")
    case errors.As(err, &allFailed):
        writeError(w, http.StatusInternalServerError,
            err.Error()+". Check your email configuration.")
    default:
        log.Println("⚠️ unexpected error:", err)
        writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
    }
}
