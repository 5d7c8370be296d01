package world

import (
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/heavy-boxes/constant"
	"github.com/lixenwraith/heavy-boxes/physics"
)

// Hooks observe the object lifecycle, nil members are skipped
type Hooks struct {
	OnAdd     func(id int, shape physics.ShapeKind)
	OnCollect func(id int)
}

type options struct {
	engine        physics.Factory
	gravity       physics.Vec2
	scaleVelocity bool
	interval      time.Duration
	lower, upper  physics.Vec2
	hooks         Hooks
	log           *zap.Logger
}

// Option configures a Manager
type Option func(*options)

func defaultOptions() options {
	return options{
		engine:   physics.NewBox2D,
		gravity:  physics.Vec2{X: constant.GravityX, Y: constant.GravityY},
		interval: constant.TickInterval,
		lower:    physics.Vec2{X: -constant.WorldBound, Y: -constant.WorldBound},
		upper:    physics.Vec2{X: constant.WorldBound, Y: constant.WorldBound},
		log:      zap.NewNop(),
	}
}

// WithEngine selects the physics backend
func WithEngine(f physics.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.engine = f
		}
	}
}

// WithGravity overrides the gravity vector in world units/s²
func WithGravity(x, y float64) Option {
	return func(o *options) {
		o.gravity = physics.Vec2{X: x, Y: y}
	}
}

// WithVelocityScaling converts initial velocities from visual to world units
// Without it velocities are handed to the engine unconverted
func WithVelocityScaling(enabled bool) Option {
	return func(o *options) {
		o.scaleVelocity = enabled
	}
}

// WithTickInterval overrides the run loop cadence; the physics step stays fixed
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithBounds overrides the simulated region in world units
// Bodies whose center leaves it are frozen by the engine
func WithBounds(lower, upper physics.Vec2) Option {
	return func(o *options) {
		o.lower, o.upper = lower, upper
	}
}

// WithHooks installs lifecycle observers
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
