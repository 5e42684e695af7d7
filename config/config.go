// Package config holds every tunable constant for the gameplay simulation
// core. Nothing outside this package should hard-code a physics or timing
// number from spec section 6 — components take a Config and read from it,
// the way the teacher's utils.Config threads one struct through every actor
// producer.
package config

import "time"

// Config holds all configurable gameplay parameters.
type Config struct {
	// Tick rates.
	SkaterTickPeriod time.Duration // ~50 Hz
	SampleTickPeriod time.Duration // ~20 Hz goal/boundary sampling

	Ice      IceConfig
	Stop     HockeyStopConfig
	Slide    GoalieSlideConfig
	Spin     SpinConfig
	Dash     DashConfig
	Body     BodyCheckConfig
	Stick    StickCheckConfig
	Puck     PuckForceConfig
	Goalie   GoalieConfig
	Match    MatchConfig
	Boundary BoundaryConfig

	// PuckOffset is the forward distance (m) the puck sits from a
	// controlling skater; LateralOffset is the additional sideways
	// offset applied while strafing.
	PuckOffset     float64
	LateralOffset  float64
	StunDuration   time.Duration
	PickupCooldown time.Duration

	// PuckPickupRadius is how close a skater must be to a loose puck
	// for the tick loop's collision signal to attempt try_pickup.
	PuckPickupRadius float64
}

// IceConfig governs the low-friction skating model (spec 4.2).
type IceConfig struct {
	WalkSpeed              float64 // base max speed, m/s, non-sprint
	RunSpeed               float64 // base max speed, m/s, sprint
	Acceleration            float64 // ICE_ACCELERATION: low-pass blend factor per reference tick
	Deceleration            float64 // ICE_DECELERATION: multiplicative glide decay per reference tick
	MaxSpeedMultiplier      float64 // ICE_MAX_SPEED_MULTIPLIER
	DirectionChangePenalty  float64 // DIRECTION_CHANGE_PENALTY
	SprintAccelerationRate  float64 // SPRINT_ACCELERATION_RATE
	SprintDecelerationRate  float64 // SPRINT_DECELERATION_RATE
	MinSpeedFactor          float64 // MIN_SPEED_FACTOR
	AccelerationCurvePower  float64 // ACCELERATION_CURVE_POWER
	ReferenceTickRate       float64 // Hz the blend/decay factors above were tuned against
}

type HockeyStopConfig struct {
	Duration     time.Duration
	Deceleration float64
	MinSpeed     float64
	Cooldown     time.Duration
	MaxAngleDeg  float64
}

type GoalieSlideConfig struct {
	Duration     time.Duration
	Deceleration float64
	MinSpeed     float64
	Cooldown     time.Duration
	MaxAngleDeg  float64
	DashForce    float64
}

type SpinConfig struct {
	Duration             time.Duration
	Cooldown             time.Duration
	MinSpeed             float64
	MomentumPreservation float64
	BoostMultiplier      float64
	BoostDuration        time.Duration
}

type DashConfig struct {
	Duration     time.Duration
	Force        float64
	Cooldown     time.Duration
	InitialBoost float64
}

type BodyCheckConfig struct {
	Cooldown time.Duration
	Duration time.Duration
	Debounce time.Duration
	DashForce float64
	UIRange   float64 // not read by the tick loop; no BodyCheckAvailable event is emitted
	AngleDeg  float64
	Range     float64
	// ContactRadius is how close the lunging attacker must get to the
	// locked target before the hit actually resolves (distinct from
	// Range, which only gates whether a lunge may be *triggered*).
	ContactRadius float64
}

type StickCheckConfig struct {
	Cooldown time.Duration
	Debounce time.Duration
	// Range/AngleDeg gate whether a steal attempt is even worth making: a
	// defender facing outside this cone, or further than Range from the
	// puck, cannot reach it regardless of the tip/radius check below.
	Range    float64
	AngleDeg float64
	// TipOffset (PUCK_STICK_OFFSET) and Radius (STICK_RADIUS) are the
	// scenario-grounded constants (spec 8 scenario 3) driving the actual
	// steal distance test: a stick tip TipOffset ahead of the defender
	// must land within Radius of the puck's position.
	TipOffset float64
	Radius    float64
	// ArmingDelay is the interval between a successful steal and the
	// new controller actually being allowed to take possession, so the
	// dislodge/steal impulse cannot be immediately re-attached.
	ArmingDelay time.Duration
}

type PuckForceConfig struct {
	MinPass   float64
	MaxPass   float64
	MinShot   float64
	MaxShot   float64
	ShotLift  float64
	SaucerLift float64
}

type GoalieConfig struct {
	PuckControlLimit  time.Duration // I6 / P3: auto-pass at 5s
	WarningTime       time.Duration // UI warning before auto-pass
	CountdownThreshold time.Duration
	AutoPassPower     float64 // 15% power per spec scenario 2
	SaveVelocityThreshold float64 // open question (b): configurable save heuristic
}

type MatchConfig struct {
	CountdownStepDuration    time.Duration // per 3-2-1 tick
	GoDisplayDuration        time.Duration
	GoalCelebrationDuration  time.Duration
	FaceoffRotationPreserve  time.Duration
	ShootoutCountdown        time.Duration
	ShootoutGoDisplay        time.Duration
	ShootoutShotTimeout      time.Duration
	ShootoutRounds           int
	ShootoutShotsPerRound    int
	OwnGoalWindow            time.Duration
	TouchHistoryTTL          time.Duration
	TouchHistoryMax          int
	GoalAttributionWindow    time.Duration
	MinPlayersToStart        int
	MaxPlayersPerTeam        int
}

type BoundaryConfig struct {
	OutOfBoundsTimeout time.Duration // >2s motionless below ice -> reset
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		SkaterTickPeriod: 20 * time.Millisecond, // 50 Hz
		SampleTickPeriod: 50 * time.Millisecond, // 20 Hz

		Ice: IceConfig{
			WalkSpeed:              4.0,
			RunSpeed:               7.0,
			Acceleration:           0.12,
			Deceleration:           0.98,
			MaxSpeedMultiplier:     1.0,
			DirectionChangePenalty: 0.7,
			SprintAccelerationRate: 0.08,
			SprintDecelerationRate: 0.05,
			MinSpeedFactor:         0.5,
			AccelerationCurvePower: 2.0,
			ReferenceTickRate:      50.0,
		},
		Stop: HockeyStopConfig{
			Duration:     450 * time.Millisecond,
			Deceleration: 0.82,
			MinSpeed:     4.5,
			Cooldown:     1200 * time.Millisecond,
			MaxAngleDeg:  45.0,
		},
		Slide: GoalieSlideConfig{
			Duration:     500 * time.Millisecond,
			Deceleration: 0.90,
			MinSpeed:     4.0,
			Cooldown:     1500 * time.Millisecond,
			MaxAngleDeg:  40.0,
			DashForce:    8.0,
		},
		Spin: SpinConfig{
			Duration:             500 * time.Millisecond,
			Cooldown:             3000 * time.Millisecond,
			MinSpeed:             7.0,
			MomentumPreservation: 0.6,
			BoostMultiplier:      1.15,
			BoostDuration:        800 * time.Millisecond,
		},
		Dash: DashConfig{
			Duration:     250 * time.Millisecond,
			Force:        12.0,
			Cooldown:     2000 * time.Millisecond,
			InitialBoost: 1.0,
		},
		Body: BodyCheckConfig{
			Cooldown:      3000 * time.Millisecond,
			Duration:      400 * time.Millisecond,
			Debounce:      250 * time.Millisecond,
			DashForce:     14.0,
			UIRange:       3.0,
			AngleDeg:      35.0,
			Range:         2.5,
			ContactRadius: 0.9,
		},
		Stick: StickCheckConfig{
			Cooldown:    500 * time.Millisecond,
			Debounce:    250 * time.Millisecond,
			Range:       2.2,
			AngleDeg:    60.0,
			TipOffset:   1.0,
			Radius:      0.8,
			ArmingDelay: 100 * time.Millisecond,
		},
		Puck: PuckForceConfig{
			MinPass:    10,
			MaxPass:    25,
			MinShot:    15,
			MaxShot:    35,
			ShotLift:   0.4,
			SaucerLift: 0.1,
		},
		Goalie: GoalieConfig{
			PuckControlLimit:      5000 * time.Millisecond,
			WarningTime:           4000 * time.Millisecond,
			CountdownThreshold:    1000 * time.Millisecond,
			AutoPassPower:         0.15,
			SaveVelocityThreshold: 8.0,
		},
		Match: MatchConfig{
			CountdownStepDuration:   1000 * time.Millisecond,
			GoDisplayDuration:       1000 * time.Millisecond,
			GoalCelebrationDuration: 6000 * time.Millisecond,
			FaceoffRotationPreserve: 3000 * time.Millisecond,
			ShootoutCountdown:       3000 * time.Millisecond,
			ShootoutGoDisplay:       2000 * time.Millisecond,
			ShootoutShotTimeout:     10000 * time.Millisecond,
			ShootoutRounds:          5,
			ShootoutShotsPerRound:   2,
			OwnGoalWindow:           60 * time.Second,
			TouchHistoryTTL:         60 * time.Second,
			TouchHistoryMax:         5,
			GoalAttributionWindow:   60 * time.Second,
			MinPlayersToStart:       2,
			MaxPlayersPerTeam:       6,
		},
		Boundary: BoundaryConfig{
			OutOfBoundsTimeout: 2 * time.Second,
		},
		PuckOffset:       0.8,
		LateralOffset:    0.4,
		StunDuration:     2 * time.Second,
		PickupCooldown:   1 * time.Second,
		PuckPickupRadius: 1.0,
	}
}

// Fast returns a configuration with compressed timers, for tests that need
// to observe whistle/timeout behavior without waiting out full durations —
// mirrors the teacher's FastGameConfig used by the stress/e2e test suite.
func Fast() Config {
	cfg := Default()
	cfg.Goalie.PuckControlLimit = 50 * time.Millisecond
	cfg.Goalie.WarningTime = 40 * time.Millisecond
	cfg.Match.GoalCelebrationDuration = 60 * time.Millisecond
	cfg.Match.CountdownStepDuration = 10 * time.Millisecond
	cfg.Match.GoDisplayDuration = 10 * time.Millisecond
	cfg.Match.FaceoffRotationPreserve = 30 * time.Millisecond
	cfg.Match.ShootoutCountdown = 30 * time.Millisecond
	cfg.Match.ShootoutGoDisplay = 20 * time.Millisecond
	cfg.Match.ShootoutShotTimeout = 100 * time.Millisecond
	cfg.Match.TouchHistoryTTL = 600 * time.Millisecond
	cfg.Boundary.OutOfBoundsTimeout = 20 * time.Millisecond
	cfg.PickupCooldown = 10 * time.Millisecond
	cfg.StunDuration = 20 * time.Millisecond
	return cfg
}
