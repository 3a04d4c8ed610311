package config

import "time"

// Database and Performance Constants
const (
	// Timeouts
	DefaultQueryTimeout = 30 * time.Second
	SweepTimeout        = 2 * time.Minute
	ReportUploadTimeout = 30 * time.Second
	NotifyTimeout       = 5 * time.Second
	ShutdownTimeout     = 15 * time.Second
	StartupTimeout      = 2 * time.Minute

	// Cache settings
	StrengthCacheSize       = 10000
	StrengthCacheExpiration = 5 * time.Minute

	// Batch processing
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	TeamScoreWorkers    = 8
)

// Quest Constants
const (
	DefaultDailyQuestCount = 3
	DefaultQuestDuration   = 24 * time.Hour
	DefaultQuestCooldown   = 72 * time.Hour
	MaxReflectionNoteLen   = 2000
	SweepLeaseKey          = "strengthforge:sweep:lease"
	SweepLeaseTTL          = 5 * time.Minute
)

// Discord embed colors
const (
	LevelUpColor = 0x00FF00
	BadgeColor   = 0xFFD700
)
