package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"chamber/internal/bookings"
	"chamber/internal/locations"
	"chamber/internal/shared/config"
	"chamber/internal/shared/database"
	"chamber/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Chamber Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"bookings",
		"locations",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedLocations(); err != nil {
		return fmt.Errorf("failed to seed locations: %w", err)
	}

	if err := s.SeedBookings(userIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 1 admin and 2 regular accounts
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	dob := time.Date(1991, time.March, 14, 0, 0, 0, 0, time.UTC)

	usersData := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      users.Role
		gender    string
		race      string
		education string
		job       string
		age       string
		dob       *time.Time
	}{
		{"admin", "Admin", "User", "admin@atmoshbot.com", users.RoleAdmin, "", "", "", "", "", nil},
		{"user1", "Jordan", "Reyes", "jordan.reyes@example.com", users.RoleUser, "male", "hispanic", "bachelors", "athlete", "25-34", nil},
		{"user2", "Sam", "Okafor", "sam.okafor@example.com", users.RoleUser, "female", "black", "masters", "healthcare", "", &dob},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:          uuid.New(),
			FirstName:   userData.firstName,
			LastName:    userData.lastName,
			Email:       userData.email,
			Password:    string(hashedPassword),
			Role:        userData.role,
			Gender:      userData.gender,
			Race:        userData.race,
			Education:   userData.education,
			Profession:  userData.job,
			Age:         userData.age,
			DateOfBirth: userData.dob,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedLocations creates the live chamber site plus a coming-soon one
func (s *Seeder) SeedLocations() error {
	fmt.Println("  📍 Seeding locations...")

	locationsData := []locations.Location{
		{
			ID:         uuid.New(),
			Slug:       locations.DefaultSlug,
			Name:       "Atmos Hyperbaric",
			City:       "Austin",
			State:      "TX",
			Address:    "2400 E Cesar Chavez St, Austin, TX 78702",
			ChamberCap: 4,
			Active:     true,
			ComingSoon: false,
		},
		{
			ID:         uuid.New(),
			Slug:       "atmos-dallas",
			Name:       "Atmos Hyperbaric Dallas",
			City:       "Dallas",
			State:      "TX",
			ChamberCap: 4,
			Active:     true,
			ComingSoon: true,
		},
	}

	for _, site := range locationsData {
		if err := s.db.PostgreSQL.Create(&site).Error; err != nil {
			return fmt.Errorf("failed to create location %s: %w", site.Slug, err)
		}
		fmt.Printf("    ✅ Created location: %s\n", site.Name)
	}

	return nil
}

// SeedBookings creates sample bookings across dates, slots, demographics,
// and statuses so the analytics endpoints have something to aggregate
func (s *Seeder) SeedBookings(userIDs map[string]uuid.UUID) error {
	fmt.Println("  📅 Seeding bookings...")

	user1 := userIDs["user1"]
	user2 := userIDs["user2"]

	date := func(daysFromNow int) *time.Time {
		d := time.Now().UTC().AddDate(0, 0, daysFromNow)
		d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}

	bookingsData := []bookings.Booking{
		{
			UserID:          &user1,
			FirstName:       "Jordan",
			LastName:        "Reyes",
			Email:           "jordan.reyes@example.com",
			Phone:           "5125550101",
			Gender:          "male",
			Race:            "hispanic",
			Education:       "bachelors",
			Profession:      "athlete",
			Age:             "25-34",
			Date:            date(-21),
			TimeSlot:        "9:00 AM",
			DurationMinutes: 60,
			Location:        locations.DefaultSlug,
			GroupSize:       1,
			Amount:          120,
			SeatNames:       "Jordan Reyes",
			BookingReason:   "post-training recovery",
			Status:          bookings.StatusCompleted,
		},
		{
			UserID:          &user2,
			FirstName:       "Sam",
			LastName:        "Okafor",
			Email:           "sam.okafor@example.com",
			Phone:           "5125550102",
			Date:            date(-14),
			TimeSlot:        "1:00 PM",
			DurationMinutes: 90,
			Location:        locations.DefaultSlug,
			GroupSize:       2,
			Amount:          340,
			SeatNames:       "Sam Okafor,Ada Okafor",
			Status:          bookings.StatusCompleted,
		},
		{
			FirstName:       "Priya",
			LastName:        "Nair",
			Email:           "priya.nair@example.com",
			Phone:           "5125550103",
			Gender:          "female",
			Race:            "asian",
			Education:       "doctorate",
			Profession:      "healthcare",
			Age:             "42",
			Date:            date(-7),
			TimeSlot:        "11:00 AM",
			DurationMinutes: 120,
			Location:        locations.DefaultSlug,
			GroupSize:       3,
			Amount:          510,
			SeatNames:       "Priya Nair,Dev Nair,Anika Nair",
			Notes:           "first visit",
			Status:          bookings.StatusCompleted,
		},
		{
			FirstName:       "Walt",
			LastName:        "Hendricks",
			Email:           "walt.hendricks@example.com",
			Phone:           "5125550104",
			Gender:          "male",
			Race:            "white",
			Education:       "high_school",
			Profession:      "retired",
			Age:             "65+",
			Date:            date(-2),
			TimeSlot:        "3:00 PM",
			DurationMinutes: 60,
			Location:        locations.DefaultSlug,
			GroupSize:       1,
			Amount:          120,
			SeatNames:       "Walt Hendricks",
			Status:          bookings.StatusNoShow,
		},
		{
			UserID:          &user1,
			FirstName:       "Jordan",
			LastName:        "Reyes",
			Email:           "jordan.reyes@example.com",
			Phone:           "5125550101",
			Gender:          "male",
			Race:            "hispanic",
			Education:       "bachelors",
			Profession:      "athlete",
			Age:             "25-34",
			Date:            date(3),
			TimeSlot:        "9:00 AM",
			DurationMinutes: 60,
			Location:        locations.DefaultSlug,
			GroupSize:       4,
			Amount:          480,
			SeatNames:       "Jordan Reyes,Marco Diaz,Lena Diaz,Tom Ruiz",
			BookingReason:   "team recovery session",
			Status:          bookings.StatusConfirmed,
		},
		{
			FirstName:       "Elaine",
			LastName:        "Moss",
			Email:           "elaine.moss@example.com",
			Phone:           "5125550105",
			Gender:          "female",
			Race:            "white",
			Education:       "masters",
			Profession:      "education",
			Age:             "55-64",
			Date:            date(5),
			TimeSlot:        "5:00 PM",
			DurationMinutes: 90,
			Location:        locations.DefaultSlug,
			GroupSize:       2,
			Amount:          340,
			SeatNames:       "Elaine Moss,Gerald Moss",
			Status:          bookings.StatusConfirmed,
		},
		{
			FirstName:       "Noah",
			LastName:        "Kim",
			Email:           "noah.kim@example.com",
			Phone:           "5125550106",
			Date:            date(1),
			TimeSlot:        "10:00 AM",
			DurationMinutes: 60,
			Location:        locations.DefaultSlug,
			GroupSize:       1,
			Amount:          120,
			SeatNames:       "Noah Kim",
			Status:          bookings.StatusCancelled,
		},
	}

	for i := range bookingsData {
		booking := &bookingsData[i]
		booking.ID = uuid.New()
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = time.Now()

		if err := s.db.PostgreSQL.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking for %s: %w", booking.Email, err)
		}
		fmt.Printf("    ✅ Created booking: %s on %s %s (%d seats, %s)\n",
			booking.Email, booking.Date.Format("2006-01-02"), booking.TimeSlot,
			booking.GroupSize, booking.Status)
	}

	return nil
}
