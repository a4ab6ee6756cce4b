package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// Deployment
	Env      string // "dev" | "prod"
	DBPath   string // e.g. "./data/clockin.db"
	RedisURL string // optional; enables the Redis OTP backend when set

	// Schedule window
	ShiftOffsetHours int      // operational day starts this many hours after midnight
	SundayWrap       bool     // wrap Sunday to day index 6 instead of -1
	MorningWindow    string   // "HH:MM-HH:MM"
	NightWindow      string   // "HH:MM-HH:MM"
	HourSlots        []string // ordered "HH:MM-HH:MM" ranges, one per working hour-slot
	ExcludedRooms    []string // rooms that don't count toward presence

	// One-time codes
	OTPTTLMinutes      int
	OTPRetentionDays   int // 0 = keep forever
	PruneIntervalHours int // how often the pruner runs (default 6)

	// Notification delivery
	SMTPAddr string // host:port; empty = log-only email delivery
	SMTPFrom string
}

func FromEnv() Config {
	addr := getenvDefault("CLOCKIN_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("CLOCKIN_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	slots := splitCSV(os.Getenv("CLOCKIN_HOUR_SLOTS"))
	if len(slots) == 0 {
		// Default school day: four morning slots, four night slots.
		slots = []string{
			"08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00",
			"14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00",
		}
	}

	excluded := splitCSV(os.Getenv("CLOCKIN_EXCLUDED_ROOMS"))
	if len(excluded) == 0 {
		excluded = []string{"Break Room", "Cafeteria"}
	}

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   getenvDefault("CLOCKIN_DB_PATH", "./data/clockin.db"),
		RedisURL: os.Getenv("CLOCKIN_REDIS_URL"),

		ShiftOffsetHours: getenvInt("CLOCKIN_SHIFT_OFFSET_HOURS", 4),
		SundayWrap:       getenvBool("CLOCKIN_SUNDAY_WRAP", true),
		MorningWindow:    getenvDefault("CLOCKIN_MORNING_WINDOW", "08:00-14:00"),
		NightWindow:      getenvDefault("CLOCKIN_NIGHT_WINDOW", "14:00-21:00"),
		HourSlots:        slots,
		ExcludedRooms:    excluded,

		OTPTTLMinutes:      getenvInt("CLOCKIN_OTP_TTL_MINUTES", 10),
		OTPRetentionDays:   getenvInt("CLOCKIN_OTP_RETENTION_DAYS", 7),
		PruneIntervalHours: getenvInt("CLOCKIN_PRUNE_INTERVAL_HOURS", 6),

		SMTPAddr: os.Getenv("CLOCKIN_SMTP_ADDR"),
		SMTPFrom: getenvDefault("CLOCKIN_SMTP_FROM", "noreply@clock-in-out.com"),
	}
}

// IsDev gates development-only behavior such as returning issued OTP codes
// in API responses and seeding the demo roster.
func (c Config) IsDev() bool { return c.Env == "dev" }

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
