package middleware

import (
    "encoding/json"
    "net/http"
    "strings"
    "time"

    "github.com/golang-jwt/jwt/v5"

    "github.com/blumenous/poetry-backend/internal/util"
)

func sessionSecret() []byte {
    return []byte(util.GetEnv("SESSION_SECRET", ""))
}

// IssueAdminToken mints the session token returned by the login endpoint.
func IssueAdminToken(email string) (string, error) {
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "sub": email,
        "exp": time.Now().Add(24 * time.Hour).Unix(),
        "iat": time.Now().Unix(),
    })
    return token.SignedString(sessionSecret())
}

func unauthorized(w http.ResponseWriter) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusUnauthorized)
    json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
}

// AdminAuth admits only a bearer of a valid session token whose subject is
// the single configured administrator address. Everyone else gets 401.
func AdminAuth(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
        if !found {
            unauthorized(w)
            return
        }

        token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
            if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
                return nil, jwt.ErrSignatureInvalid
            }
            return sessionSecret(), nil
        })
        if err != nil || !token.Valid {
            unauthorized(w)
            return
        }

        subject, err := token.Claims.GetSubject()
        admin := util.AdminEmail()
        if err != nil || admin == "" || subject != admin {
            unauthorized(w)
            return
        }

        next.ServeHTTP(w, r)
    })
}
