package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "carrental"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultTokenTTL   = 24 * time.Hour
	DefaultBcryptCost = 10

	DefaultMinPasswordLength = 8

	DefaultUploadDir     = "uploads"
	DefaultMaxUploadSize = 5 * 1024 * 1024 // 5MB

	// Faithful to the source system: a cancelled booking still blocks the
	// slot unless this is switched off.
	DefaultBlockCancelledBookings = true

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultLogLevel = "info"

	DefaultBookingEventsTopic = "booking-events"
)
