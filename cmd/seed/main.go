package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"chirp/internal/config"
	"chirp/internal/db"
	apperrors "chirp/internal/errors"
	"chirp/internal/model"
	"chirp/internal/repository"
)

// SeedUserData is one entry of the seed file: a JSON array of users with
// plaintext passwords that get hashed before insert.
type SeedUserData struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func main() {
	file := flag.String("file", "seed/users.json", "path to JSON file with users to seed")
	flag.Parse()

	log := logrus.New()
	log.Info("Starting seed script...")

	cfg := config.Load()

	mongoDB, err := db.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Connected to database")

	userRepo := repository.NewUserRepository(mongoDB)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	seedUsers, err := loadSeedUsers(*file)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Infof("Loaded %d users from %s", len(seedUsers), *file)

	created, skipped := 0, 0
	for _, su := range seedUsers {
		if su.Name == "" || su.Username == "" || su.Email == "" || su.Password == "" {
			log.Warnf("Skipping incomplete entry %q", su.Email)
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Email, err)
		}

		user := &model.User{
			Name:         su.Name,
			Username:     su.Username,
			Email:        su.Email,
			PasswordHash: string(hashed),
		}
		if err := userRepo.Create(context.Background(), user); err != nil {
			if errors.Is(err, apperrors.ErrUserAlreadyExists) {
				skipped++
				continue
			}
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		created++
	}

	log.Infof("Seed complete: %d created, %d skipped", created, skipped)
}

func loadSeedUsers(path string) ([]SeedUserData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var users []SeedUserData
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}
