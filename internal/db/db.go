// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"
    "log"
    "os"

    _ "github.com/lib/pq"

    "github.com/blumenous/poetry-backend/internal/util"
)

var DB *sql.DB

func Init() {
    dsn := os.Getenv("DATABASE_URL")
    if dsn == "" {
        dsn = fmt.Sprintf(
            "postgres://%s:%s@%s:%s/%s?sslmode=disable",
            util.GetEnv("DB_USER", "postgres"),
            util.GetEnv("DB_PASSWORD", "postgres"),
            util.GetEnv("DB_HOST", "localhost"),
            util.GetEnv("DB_PORT", "5432"),
            util.GetEnv("DB_NAME", "blumenous"),
        )
    }

    var err error
    DB, err = sql.Open("postgres", dsn)
    if err != nil {
        log.Fatalf("failed to connect to DB: %v", err)
    }

    if err = DB.Ping(); err != nil {
        log.Fatalf("failed to ping DB: %v", err)
    }

    log.Println("✅ Connected to database")
}
