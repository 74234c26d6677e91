// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (devuser) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"account-service/internal/config"
	"account-service/internal/db"
	"account-service/internal/security"
	"account-service/internal/user/domain"
	"account-service/internal/user/repository"
)

const (
	devUsername = "devuser"
	devEmail    = "dev@example.com"
	devPhone    = "01012345678"
	devPassword = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; copy .env.example to .env or export DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := repository.NewPostgresUserRepository(pool)
	roles := repository.NewPostgresRoleRepository(pool)

	existing, err := users.FindByUsername(ctx, devUsername)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (devuser exists). Skipping.")
		os.Exit(0)
	}

	role, err := roles.Find(ctx, domain.RoleUser)
	if err != nil {
		log.Fatalf("find role: %v", err)
	}
	if role == nil {
		log.Fatal("ROLE_USER is not seeded; run migrations first")
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	if _, err := users.Save(ctx, &domain.User{
		Username:     devUsername,
		Email:        devEmail,
		PhoneNumber:  devPhone,
		PasswordHash: passwordHash,
		Name:         "Dev User",
		Nickname:     "dev",
		RoleIDs:      []int64{role.ID},
	}); err != nil {
		log.Fatalf("create dev user: %v", err)
	}

	log.Println("Seed completed successfully.")
	fmt.Printf("Dev login: %s / %s\n", devUsername, devPassword)
}
