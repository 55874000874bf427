package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/petwell/petwell-api/config"
	"github.com/petwell/petwell-api/pkg/helpers"
)

// Seeds the primary admin account. Run once after migrations; safe to re-run.
// The account's role is forced back to admin in case it was ever touched
// directly in the database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword(cfg.PrimaryAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (email) DO UPDATE SET role = 'admin'
		RETURNING id
	`, "Admin", cfg.PrimaryAdminEmail, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed primary admin: %v", err)
	}
	fmt.Printf("primary admin ensured: id=%d email=%s\n", id, cfg.PrimaryAdminEmail)
}
