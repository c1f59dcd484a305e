package config

import "time"

// Screen dimensions in logical units. Every frontend maps these onto its
// own pixels (terminal half-blocks or an Ebiten window).
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Asteroids
const (
	AsteroidMinRadius = 20
	AsteroidKinds     = 3
	AsteroidSpawnRate = 0.8 // Seconds between field spawns
	AsteroidMinSpeed  = 40
	AsteroidMaxSpeed  = 100
	AsteroidSpawnSkew = 30 // Max degrees of deviation from the inward normal
)

// Player
const (
	PlayerRadius        = 20
	PlayerTurnSpeed     = 300.0 // Degrees per second
	PlayerSpeed         = 200.0
	PlayerShootSpeed    = 500.0
	PlayerShootCooldown = 0.3 // Seconds
	ShieldRingPadding   = 5
)

// Shots
const (
	ShotRadius = 5
)

// Power-ups
const (
	PowerUpDropChance = 0.2
	PowerUpDuration   = 5.0 // Seconds
	SpreadShotAngle   = 15.0
	RapidFireFactor   = 0.5
)

// Scoring
const (
	ScorePerHit    = 1
	HighScoreLimit = 5
)

// Broad-phase cell size. Must cover the largest asteroid plus a shot.
const CollisionCellSize = 80

// Inactivity (SSH sessions)
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)

// Shown to connected sessions before the host goes down.
const ShutdownDisplay = 10 * time.Second

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal rendering caps. Larger terminals are letterboxed.
const (
	MaxRenderCols = 240
	MaxRenderRows = 68
)
