package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"dockplan/config"
	"dockplan/database"
	definitionRepo "dockplan/database/repository/definition"
	scheduleRepo "dockplan/database/repository/schedule"
	userRepo "dockplan/database/repository/user"
	"dockplan/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo planner account with sample definitions and a saved board so
// the UI has something to show on a fresh database. Run against a disposable
// database only; it wipes the demo user's existing data.
func main() {
	config.LoadConfig()
	database.InitDB()

	users := userRepo.NewMongoUserRepo()
	definitions := definitionRepo.NewMongoDefinitionRepo()
	schedules := scheduleRepo.NewMongoScheduleRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Recreate the demo account.
	if existing, err := users.GetByUsername("demo"); err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else if existing != nil {
		if err := definitions.DeleteAll(ctx, existing.ID); err != nil {
			log.Fatalf("Failed to clear demo definitions: %v", err)
		}
		if err := schedules.DeleteAll(ctx, existing.ID); err != nil {
			log.Fatalf("Failed to clear demo schedules: %v", err)
		}
		if err := users.Delete(existing.ID); err != nil {
			log.Fatalf("Failed to remove demo user: %v", err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("$Password1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	demo := models.User{
		ID:           uuid.New().String(),
		Username:     "demo",
		PasswordHash: string(hashed),
	}
	if err := users.Create(&demo); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	// One-off appointments across the next two days.
	day1 := time.Now().AddDate(0, 0, 1)
	day2 := time.Now().AddDate(0, 0, 2)

	specific := []models.SpecificAppointment{
		specificAppointment("A100", "North Grocery", "North", 500, 1200, day1, 7, 0, 9, 0),
		specificAppointment("A101", "Harbor Foods", "Harbor", 800, 2000, day1, 9, 30, 11, 0),
		specificAppointment("A102", "Eastside Pantry", "East", 0, 900, day2, 7, 0, 8, 30),
		specificAppointment("A103", "Mill Creek Co-op", "West", 250, 750, day2, 11, 0, 13, 0),
	}
	if err := definitions.SaveSpecific(ctx, demo.ID, specific); err != nil {
		log.Fatalf("Failed to seed specific definitions: %v", err)
	}

	recurring := []models.RecurringAppointment{
		recurringAppointment("A200", "Valley Distributors", "North", 600, 1500, "Monday", "First", "07:00", "09:00"),
		recurringAppointment("A201", "Summit Wholesale", "South", 400, 1000, "Monday", "Second", "09:30", "11:30"),
		recurringAppointment("A202", "Lakeside Market", "East", 0, 800, "Wednesday", "First", "08:00", "10:00"),
		recurringAppointment("A203", "Prairie Goods", "West", 300, 950, "Friday", "Third", "11:00", "13:30"),
	}
	if err := definitions.SaveRecurring(ctx, demo.ID, recurring); err != nil {
		log.Fatalf("Failed to seed recurring definitions: %v", err)
	}

	// Park a few appointments on the boards so the grids render populated.
	dateKey := day1.Format("2006-01-02")
	specificBoard := models.AssignmentMap{
		dateKey: {
			models.SlotKey("Trailer 1", "A"): {specific[0].ID},
			models.SlotKey("Straight 1", "B"): {specific[1].ID},
		},
	}
	if err := schedules.SaveSpecific(ctx, demo.ID, specificBoard); err != nil {
		log.Fatalf("Failed to seed specific board: %v", err)
	}

	recurringBoard := models.AssignmentMap{
		models.PatternLabel("First", "Monday"): {
			models.SlotKey("Trailer 2", "A"): {recurring[0].ID},
		},
		models.PatternLabel("Third", "Friday"): {
			models.SlotKey("Straight 2", "B"): {recurring[3].ID},
		},
	}
	if err := schedules.SaveRecurring(ctx, demo.ID, recurringBoard); err != nil {
		log.Fatalf("Failed to seed recurring board: %v", err)
	}

	fmt.Printf("Seeded demo user %s with %d specific and %d recurring appointments\n",
		demo.ID, len(specific), len(recurring))
}

func specificAppointment(agency, account, area string, minW, maxW float64, day time.Time, sh, sm, eh, em int) models.SpecificAppointment {
	start := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, time.UTC)
	return models.SpecificAppointment{
		ID:           uuid.New().String(),
		AgencyNumber: agency,
		AccountName:  account,
		Area:         area,
		MinWeight:    minW,
		MaxWeight:    maxW,
		StartTime:    start,
		EndTime:      end,
		StartHour:    float64(sh) + float64(sm)/60.0,
	}
}

func recurringAppointment(agency, account, area string, minW, maxW float64, day, frequency, startStr, endStr string) models.RecurringAppointment {
	start := clockHour(startStr)
	end := clockHour(endStr)
	return models.RecurringAppointment{
		ID:           uuid.New().String(),
		AgencyNumber: agency,
		AccountName:  account,
		Area:         area,
		MinWeight:    minW,
		MaxWeight:    maxW,
		Day:          day,
		Frequency:    frequency,
		StartHour:    start,
		EndHour:      end,
		StartTimeStr: startStr,
		EndTimeStr:   endStr,
	}
}

func clockHour(s string) float64 {
	t, err := time.Parse("15:04", s)
	if err != nil {
		log.Fatalf("bad clock literal %q: %v", s, err)
	}
	return float64(t.Hour()) + float64(t.Minute())/60.0
}
