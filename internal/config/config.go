package config // package config loads application configuration from environment variables

import (
	"log"     // report configuration errors and halt execution
	"os"      // access to environment variables
	"strconv" // string conversion helpers
	"time"    // durations for booking knobs

	"github.com/dojoroom/room-booking/internal/booking"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Required variables halt startup when missing;
// the booking rule knobs fall back to the house defaults.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host address
	DBPort          string        // database port number
	DBName          string        // database name
	DBMaxConns      int           // connection pool cap (open and idle)
	DBConnMaxLife   time.Duration // recycle connections older than this
	JWTSecret       string        // secret used to sign JWTs
	AccessTTLMin    int           // access token time-to-live in minutes
	RefreshTTLDays  int           // refresh token time-to-live in days
	BcryptCost      int           // bcrypt cost for password hashing
	AuthEmailDomain string        // when set, registration is limited to this email domain

	DefaultRoom      string         // room assumed when a request names none
	ScheduleCacheTTL time.Duration  // lifetime of cached schedule responses
	Booking          booking.Config // booking rule parameters
}

// Load reads configuration from environment variables. Required variables
// are enforced by must() and missing values cause a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		DBMaxConns:      envInt("DB_MAX_CONNS", 25),
		DBConnMaxLife:   envDur("DB_CONN_MAX_LIFE", 30*time.Minute),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays:  mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:      mustInt("BCRYPT_COST"),
		AuthEmailDomain: os.Getenv("AUTH_EMAIL_DOMAIN"),

		DefaultRoom:      getenv("DEFAULT_ROOM", "4c"),
		ScheduleCacheTTL: envDur("SCHEDULE_CACHE_TTL", 30*time.Second),
		Booking:          loadBooking(),
	}
}

// loadBooking builds the booking rule set, starting from the defaults and
// overriding from the environment where set.
func loadBooking() booking.Config {
	cfg := booking.DefaultConfig()
	cfg.SlotLength = envDur("BOOKING_SLOT_LENGTH", cfg.SlotLength)
	cfg.MinGap = envDur("BOOKING_MIN_GAP", cfg.MinGap)
	cfg.MaxAdvanceDays = envInt("BOOKING_MAX_ADVANCE_DAYS", cfg.MaxAdvanceDays)
	cfg.MaxSlots = envInt("BOOKING_MAX_SLOTS", cfg.MaxSlots)
	cfg.DaySlots = envInt("BOOKING_DAY_SLOTS", cfg.DaySlots)
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application exits with a fatal log.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func envDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
