package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"alumnidir/internal/auth"
	"alumnidir/internal/config"
	"alumnidir/internal/db"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/repository"
	"alumnidir/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, nil)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Connected to %s database", cfg.DBDriver)

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	store := repository.NewStore(gormDB)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	courses := service.NewCourseService(store.Courses, store, nil)

	if cfg.SeedCoursesURL != "" {
		log.Printf("Fetching courses from: %s", cfg.SeedCoursesURL)
		names, err := fetchCourses(ctx, cfg.SeedCoursesURL)
		if err != nil {
			log.Fatalf("Failed to fetch courses: %v", err)
		}
		saved, err := courses.Replace(ctx, names)
		if err != nil {
			log.Fatalf("Failed to replace courses: %v", err)
		}
		log.Printf("Installed %d courses", len(saved))
	} else {
		seeded, err := courses.EnsureDefaults(ctx)
		if err != nil {
			log.Fatalf("Failed to seed default courses: %v", err)
		}
		if seeded {
			log.Println("Installed default course list")
		}
	}

	if cfg.SeedAdminUsername == "" || cfg.SeedAdminPassword == "" {
		log.Println("SEED_ADMIN_USERNAME/SEED_ADMIN_PASSWORD not set, skipping admin and invite")
		return
	}

	admin, err := ensureAdmin(ctx, service.NewAuthService(store.Profiles, store.Admins, hasher), store.Admins, cfg)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	invite, err := service.NewInviteService(store.Invites, store, hasher).Issue(ctx, admin.ID)
	if err != nil {
		log.Fatalf("Failed to issue invite: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Admin: %s (%s)", admin.Username, admin.ID)
	log.Printf("  - Invite code: %s", invite.Code)
	log.Printf("  - Signup link: %s", service.InviteLink(cfg.InviteBaseURL, invite.Code))
}

// ensureAdmin creates the bootstrap admin, or returns it when it already exists.
func ensureAdmin(ctx context.Context, authService service.AuthService, admins repository.AdminRepository, cfg *config.Config) (*model.Admin, error) {
	admin, err := authService.RegisterAdmin(ctx, service.RegisterAdminInput{
		Name:     cfg.SeedAdminUsername,
		Username: cfg.SeedAdminUsername,
		Password: cfg.SeedAdminPassword,
		Role:     "owner",
	})
	if err == nil {
		log.Printf("Created admin %s", admin.Username)
		return admin, nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return nil, err
	}
	log.Printf("Admin %s already exists", cfg.SeedAdminUsername)
	return admins.FindByUsername(ctx, cfg.SeedAdminUsername)
}

// fetchCourses downloads a JSON array of course names.
func fetchCourses(ctx context.Context, url string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return names, nil
}
