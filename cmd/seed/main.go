// seed inserts one admin and one regular user into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/almasbek/auth-gateway/internal/infrastructure/postgres"
	"github.com/almasbek/auth-gateway/internal/security"
)

const bcryptCost = 10 // lighter than production, this is throwaway dev data

type userSpec struct {
	email    string
	password string
	role     string
}

var users = []userSpec{
	{"admin@test.local", "admin-password-1", "admin"},
	{"user@test.local", "user-password-1", "user"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hasher := security.NewHasher(bcryptCost)

	var inserted, skipped int
	for _, spec := range users {
		hash, err := hasher.Hash(spec.password)
		if err != nil {
			log.Fatalf("hash password for %s: %v", spec.email, err)
		}

		// Idempotent re-runs: existing users are left untouched.
		tag, err := pool.Exec(ctx, `
			INSERT INTO users (email, password_hash, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO NOTHING`,
			spec.email, hash, spec.role,
		)
		if err != nil {
			log.Fatalf("insert user %s: %v", spec.email, err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Users created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in as the admin:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/login \\")
	fmt.Println("      -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"email\":\"admin@test.local\",\"password\":\"admin-password-1\"}'")
	fmt.Println("    # → {\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — hit the gated routes:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/user  -H \"Authorization: Bearer $JWT\"   # 200")
	fmt.Println("    curl -s http://localhost:8080/admin -H \"Authorization: Bearer $JWT\"   # 200")
	fmt.Println()
	fmt.Println("  Step 3 — repeat with user@test.local / user-password-1:")
	fmt.Println()
	fmt.Println("    /user  → 200")
	fmt.Println("    /admin → 403 (role claim is \"user\")")
}
