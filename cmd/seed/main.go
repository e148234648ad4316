package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/adewale-oss/timetable-api/internal/models"
	"github.com/adewale-oss/timetable-api/internal/repository"
	"github.com/adewale-oss/timetable-api/pkg/config"
	"github.com/adewale-oss/timetable-api/pkg/database"
	"github.com/adewale-oss/timetable-api/pkg/logger"
)

type lecturerRow struct {
	Name           string `csv:"name"`
	Email          string `csv:"email"`
	Department     string `csv:"department"`
	MaxHoursPerDay int    `csv:"max_hours_per_day"`
}

type venueRow struct {
	Name     string `csv:"name"`
	Capacity int    `csv:"capacity"`
	Type     string `csv:"type"`
}

type courseRow struct {
	Code          string `csv:"code"`
	Title         string `csv:"title"`
	Level         int    `csv:"level"`
	CreditHours   int    `csv:"credit_hours"`
	LecturerEmail string `csv:"lecturer_email"`
	Department    string `csv:"department"`
	Enrollment    int    `csv:"enrollment"`
	Semester      int    `csv:"semester"`
}

func main() {
	fixtures := flag.String("fixtures", "fixtures", "directory containing lecturers.csv, venues.csv, and courses.csv")
	adminEmail := flag.String("admin-email", "admin@timetable.local", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required on first run)")
	slotStart := flag.Int("slot-start", 8, "first teaching hour (24h clock)")
	slotEnd := flag.Int("slot-end", 18, "hour after the last teaching period")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	lecturerRepo := repository.NewLecturerRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	userRepo := repository.NewUserRepository(db)

	seedTimeSlots(ctx, logr, timeSlotRepo, *slotStart, *slotEnd)
	lecturersByEmail := seedLecturers(ctx, logr, lecturerRepo, filepath.Join(*fixtures, "lecturers.csv"))
	seedVenues(ctx, logr, venueRepo, filepath.Join(*fixtures, "venues.csv"))
	seedCourses(ctx, logr, courseRepo, lecturersByEmail, filepath.Join(*fixtures, "courses.csv"))
	seedAdmin(ctx, logr, userRepo, *adminEmail, *adminPassword)

	logr.Info("seed complete")
}

// seedTimeSlots registers the hourly Monday-Friday teaching periods. Existing
// periods are left untouched.
func seedTimeSlots(ctx context.Context, logr *zap.Logger, repo *repository.TimeSlotRepository, startHour, endHour int) {
	days := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	slots := make([]models.TimeSlot, 0, len(days)*(endHour-startHour))
	for _, day := range days {
		for hour := startHour; hour < endHour; hour++ {
			slots = append(slots, models.TimeSlot{
				Day:       day,
				StartTime: fmt.Sprintf("%02d:00:00", hour),
				EndTime:   fmt.Sprintf("%02d:00:00", hour+1),
			})
		}
	}

	inserted, err := repo.BulkCreate(ctx, slots)
	if err != nil {
		logr.Fatal("failed to seed time slots", zap.Error(err))
	}
	logr.Info("time slots seeded", zap.Int("inserted", inserted), zap.Int("total", len(slots)))
}

func seedLecturers(ctx context.Context, logr *zap.Logger, repo *repository.LecturerRepository, path string) map[string]string {
	byEmail := make(map[string]string)

	existing, err := repo.List(ctx)
	if err != nil {
		logr.Fatal("failed to list lecturers", zap.Error(err))
	}
	for _, lecturer := range existing {
		byEmail[lecturer.Email] = lecturer.ID
	}

	rows, ok := readCSV[lecturerRow](logr, path)
	if !ok {
		return byEmail
	}

	created := 0
	for _, row := range rows {
		if _, seen := byEmail[row.Email]; seen {
			continue
		}
		lecturer := &models.Lecturer{
			Name:           row.Name,
			Email:          row.Email,
			Department:     row.Department,
			MaxHoursPerDay: row.MaxHoursPerDay,
		}
		if err := repo.Create(ctx, lecturer); err != nil {
			logr.Warn("failed to create lecturer", zap.String("email", row.Email), zap.Error(err))
			continue
		}
		byEmail[lecturer.Email] = lecturer.ID
		created++
	}
	logr.Info("lecturers seeded", zap.Int("created", created), zap.Int("rows", len(rows)))
	return byEmail
}

func seedVenues(ctx context.Context, logr *zap.Logger, repo *repository.VenueRepository, path string) {
	rows, ok := readCSV[venueRow](logr, path)
	if !ok {
		return
	}

	existing, err := repo.List(ctx)
	if err != nil {
		logr.Fatal("failed to list venues", zap.Error(err))
	}
	seen := make(map[string]bool, len(existing))
	for _, venue := range existing {
		seen[venue.Name] = true
	}

	created := 0
	for _, row := range rows {
		if seen[row.Name] {
			continue
		}
		venue := &models.Venue{
			Name:     row.Name,
			Capacity: row.Capacity,
			Type:     models.VenueType(row.Type),
		}
		if err := repo.Create(ctx, venue); err != nil {
			logr.Warn("failed to create venue", zap.String("name", row.Name), zap.Error(err))
			continue
		}
		created++
	}
	logr.Info("venues seeded", zap.Int("created", created), zap.Int("rows", len(rows)))
}

func seedCourses(ctx context.Context, logr *zap.Logger, repo *repository.CourseRepository, lecturersByEmail map[string]string, path string) {
	rows, ok := readCSV[courseRow](logr, path)
	if !ok {
		return
	}

	created := 0
	for _, row := range rows {
		if _, err := repo.FindByCode(ctx, row.Code); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			logr.Fatal("failed to check course code", zap.String("code", row.Code), zap.Error(err))
		}

		course := &models.Course{
			Code:        row.Code,
			Title:       row.Title,
			Level:       row.Level,
			CreditHours: row.CreditHours,
			Department:  row.Department,
			Enrollment:  row.Enrollment,
			Semester:    row.Semester,
		}
		if row.LecturerEmail != "" {
			if id, found := lecturersByEmail[row.LecturerEmail]; found {
				course.LecturerID = &id
			} else {
				logr.Warn("unknown lecturer email, leaving course unassigned",
					zap.String("code", row.Code), zap.String("email", row.LecturerEmail))
			}
		}
		if err := repo.Create(ctx, course); err != nil {
			logr.Warn("failed to create course", zap.String("code", row.Code), zap.Error(err))
			continue
		}
		created++
	}
	logr.Info("courses seeded", zap.Int("created", created), zap.Int("rows", len(rows)))
}

func seedAdmin(ctx context.Context, logr *zap.Logger, repo *repository.UserRepository, email, password string) {
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		logr.Info("admin account already exists", zap.String("email", email))
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logr.Fatal("failed to check admin account", zap.Error(err))
	}

	if password == "" {
		logr.Fatal("admin-password is required to create the admin account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logr.Fatal("failed to hash admin password", zap.Error(err))
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Timetable Administrator",
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := repo.Create(ctx, user); err != nil {
		logr.Fatal("failed to create admin account", zap.Error(err))
	}
	logr.Info("admin account created", zap.String("email", email))
}

// readCSV loads fixture rows, returning ok=false when the file is absent so
// callers can treat each fixture as optional.
func readCSV[T any](logr *zap.Logger, path string) ([]T, bool) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logr.Info("fixture not found, skipping", zap.String("path", path))
			return nil, false
		}
		logr.Fatal("failed to open fixture", zap.String("path", path), zap.Error(err))
	}
	defer file.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		logr.Fatal("failed to parse fixture", zap.String("path", path), zap.Error(err))
	}
	return rows, true
}
