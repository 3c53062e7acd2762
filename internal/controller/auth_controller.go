package controller

import (
    "crypto/subtle"
    "encoding/json"
    "net/http"

    "github.com/blumenous/poetry-backend/internal/middleware"
    "github.com/blumenous/poetry-backend/internal/util"
)

type AuthController struct{}

// Login authenticates the single configured administrator and returns a
// session token for the admin routes.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Email    string `json:"email"`
        Password string `json:"password"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        writeError(w, http.StatusBadRequest, "invalid body")
        return
    }

    admin := util.AdminEmail()
    password := util.GetEnv("ADMIN_PASSWORD", "")
    if admin == "" || password == "" {
        writeError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    emailOK := subtle.ConstantTimeCompare([]byte(body.Email), []byte(admin)) == 1
    passwordOK := subtle.ConstantTimeCompare([]byte(body.Password), []byte(password)) == 1
    if !emailOK || !passwordOK {
        writeError(w, http.StatusUnauthorized, "Unauthorized")
        return
    }

    token, err := middleware.IssueAdminToken(admin)
    if err != nil {
        writeServiceError(w, err)
        return
    }
    writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
