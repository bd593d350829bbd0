package main

import (
	"fmt"
	"os"

	"coworkspace/internal/database"
	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type options struct {
	dsn           string
	reset         bool
	adminEmail    string
	adminPassword string
	userBalance   int64
}

func main() {
	log := logger.New("info", "text")

	opts, err := parseFlags(os.Args[1:])
	if err == pflag.ErrHelp {
		return
	}
	if err != nil {
		log.WithError(err).Fatal("flags")
	}

	db, err := database.Connect(opts.dsn, log)
	if err != nil {
		log.WithError(err).Fatal("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate")
	}

	if opts.reset {
		if err := reset(db); err != nil {
			log.WithError(err).Fatal("reset")
		}
		log.Info("old data removed")
	}
	if err := seed(db, opts, log); err != nil {
		log.WithError(err).Fatal("seed")
	}
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	fs.StringVar(&opts.dsn, "dsn", envOr("DATABASE_URL", "coworkspace.db"), "database DSN (postgres URL or sqlite file)")
	fs.BoolVar(&opts.reset, "reset", false, "delete existing bookings, spaces and users first")
	fs.StringVar(&opts.adminEmail, "admin-email", "admin@coworkspace.local", "admin account email")
	fs.StringVar(&opts.adminPassword, "admin-password", "admin123", "admin account password")
	fs.Int64Var(&opts.userBalance, "user-balance", 500, "starting balance of the sample members")
	help := fs.BoolP("help", "h", false, "show usage")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if *help {
		fmt.Fprintln(os.Stderr, "Usage: seed [flags]")
		fs.PrintDefaults()
		return opts, pflag.ErrHelp
	}
	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func reset(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"ledger_entries", "collects", "bookings", "working_spaces", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func seed(db *gorm.DB, opts options, log logrus.FieldLogger) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(opts.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	memberHash, err := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []domain.User{
		{Name: "Administrator", Email: opts.adminEmail, Telephone: "0800000000", PasswordHash: string(adminHash), Role: domain.RoleAdmin},
		{Name: "Nok", Email: "nok@coworkspace.local", Telephone: "081-234-5678", PasswordHash: string(memberHash), Role: domain.RoleUser, Balance: opts.userBalance},
		{Name: "Ploy", Email: "ploy@coworkspace.local", Telephone: "089-876-5432", PasswordHash: string(memberHash), Role: domain.RoleUser, Balance: opts.userBalance},
	}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).Create(&users).Error; err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	log.WithField("email", opts.adminEmail).Info("admin ready")

	weekdays := domain.DefaultWeeklySchedule()
	weekdays.Saturday = domain.DaySchedule{ClosedAllDay: true}
	weekdays.Sunday = domain.DaySchedule{ClosedAllDay: true}

	spaces := []domain.WorkingSpace{
		{Name: "Riverside Hub", Address: "12 Charoen Krung Rd", Telephone: "022345678", Price: 150, Schedule: domain.DefaultWeeklySchedule()},
		{Name: "Quiet Loft", Address: "48 Sukhumvit Soi 11", Telephone: "(02) 345 6789", Price: 220, Schedule: weekdays},
		{Name: "Garden Desk", Address: "7 Nimman Rd", Telephone: "053-111-2222", Price: 90, Schedule: domain.DefaultWeeklySchedule()},
	}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).Create(&spaces).Error; err != nil {
		return fmt.Errorf("create working spaces: %w", err)
	}
	log.WithFields(logrus.Fields{"users": len(users), "working_spaces": len(spaces)}).Info("seed complete")
	return nil
}
