package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/lixenwraith/heavy-boxes/audio"
	"github.com/lixenwraith/heavy-boxes/clock"
	"github.com/lixenwraith/heavy-boxes/config"
	"github.com/lixenwraith/heavy-boxes/feed"
	"github.com/lixenwraith/heavy-boxes/physics"
	"github.com/lixenwraith/heavy-boxes/render"
	"github.com/lixenwraith/heavy-boxes/surface"
	"github.com/lixenwraith/heavy-boxes/timeago"
	"github.com/lixenwraith/heavy-boxes/world"
)

const (
	rootID     = "heavy-boxes"
	labelWidth = 28

	// Horizontal launch speed range in world units per second
	launchSpeed = 0.5
)

// demo wires the world, the terminal and the feed together
// Everything except construction runs on the scheduler goroutine
type demo struct {
	cfg    *config.Config
	log    *zap.Logger
	screen tcell.Screen
	sched  clock.Scheduler
	sounds *audio.SoundManager
	quit   func()

	tree     *surface.Tree
	host     surface.Surface
	world    *world.Manager
	renderer *render.TerminalRenderer
	emitter  *feed.Emitter

	frame clock.Handle
	rng   *rand.Rand

	// Object ids in creation order, pruned lazily
	order   []int
	spawned int
}

func newDemo(cfg *config.Config, log *zap.Logger, screen tcell.Screen, sched clock.Scheduler, sounds *audio.SoundManager, quit func()) (*demo, error) {
	factory, err := physics.Lookup(cfg.World.Engine)
	if err != nil {
		return nil, err
	}

	d := &demo{
		cfg:    cfg,
		log:    log,
		screen: screen,
		sched:  sched,
		sounds: sounds,
		quit:   quit,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	cols, rows := screen.Size()
	w, h := render.TreeSize(cols, rows, cfg.Render.CellWidth, cfg.Render.CellHeight)
	d.tree = surface.NewTree(rootID, w, h,
		surface.TextMetrics{CellWidth: cfg.Render.CellWidth, CellHeight: cfg.Render.CellHeight},
		"transform")
	d.host = d.tree

	d.world = world.New(d.tree.Root(), sched,
		world.WithEngine(factory),
		world.WithBounds(world.CoverBounds(w, h)),
		world.WithGravity(cfg.World.GravityX, cfg.World.GravityY),
		world.WithVelocityScaling(cfg.World.ScaleVelocity),
		world.WithTickInterval(cfg.Loop.TickInterval),
		world.WithLogger(log.Named("world")),
		world.WithHooks(world.Hooks{
			OnAdd:     func(int, physics.ShapeKind) { d.sounds.PlayDrop() },
			OnCollect: func(int) { d.sounds.PlayPop() },
		}),
	)

	d.renderer = render.NewTerminalRenderer(screen, d.tree, cfg.Render.CellWidth, cfg.Render.CellHeight)
	if p, ok := d.world.TransformProperty(); ok {
		d.renderer.SetRotationProperty(p)
	}
	d.renderer.SetStatus(d.status)

	if cfg.Feed.Enabled() {
		d.emitter = feed.NewEmitter(sched,
			feed.WithBaseURL(cfg.Feed.BaseURL),
			feed.WithRefreshInterval(cfg.Feed.RefreshInterval),
			feed.WithEmitterLogger(log.Named("feed")))
		for _, user := range cfg.Feed.Users {
			d.emitter.AddUser(user)
		}
		if cfg.Feed.PublicTimeline {
			d.emitter.AddPublicTimeline()
		}
		if cfg.Feed.File != "" {
			d.emitter.AddSource(&feed.FileSource{Path: cfg.Feed.File})
		}
	}

	return d, nil
}

// start runs the simulation, the frame callback and the feed
func (d *demo) start() {
	d.world.Run()
	if d.frame == nil {
		d.frame = d.sched.Every(d.cfg.Loop.FrameInterval, d.renderer.RenderFrame)
	}
	if d.emitter != nil {
		d.emitter.Emit(d.onItem, d.cfg.Feed.EmitInterval)
	}
	d.log.Info("demo started",
		zap.String("engine", d.cfg.World.Engine),
		zap.Bool("feed", d.emitter != nil))
}

// stop halts everything start began
func (d *demo) stop() {
	if d.emitter != nil {
		d.emitter.Stop()
	}
	d.world.Stop()
	if d.frame != nil {
		d.frame.Cancel()
		d.frame = nil
	}
}

// handleEvent dispatches one terminal event
func (d *demo) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			d.quit()
			return
		case tcell.KeyRune:
		default:
			return
		}

		switch ev.Rune() {
		case 'q':
			d.quit()
		case 'b':
			d.spawn(physics.ShapeBox, d.nextLabel("box"))
		case 'o':
			d.spawn(physics.ShapeCircle, d.nextLabel("ball"))
		case 'd':
			d.detachOldest()
		case 'p':
			d.toggle()
		}

	case *tcell.EventResize:
		d.screen.Sync()
	}
}

// spawn drops an object at a random column of the top edge
func (d *demo) spawn(shape physics.ShapeKind, content string) int {
	w, _ := d.tree.Root().Dimensions()
	left := d.rng.Float64() * w * 0.75
	velocity := physics.Vec2{X: (d.rng.Float64()*2 - 1) * launchSpeed}
	if d.cfg.World.ScaleVelocity {
		velocity = physics.Vec2{X: world.W2V(velocity.X), Y: world.W2V(velocity.Y)}
	}

	id := d.world.AddElement(shape, left, 0, content, velocity)
	d.order = append(d.order, id)
	return id
}

// detachOldest removes the element of the oldest live object from the tree
// The world collects the object on its next tick
func (d *demo) detachOldest() bool {
	for len(d.order) > 0 {
		id := d.order[0]
		d.order = d.order[1:]

		obj, ok := d.world.Object(id)
		if !ok {
			continue
		}
		if el, ok := d.host.Element(obj.Element.ID()); ok && el.Attached() {
			el.Remove()
			return true
		}
	}
	return false
}

// toggle pauses or resumes the simulation
func (d *demo) toggle() {
	if d.world.Running() {
		d.world.Stop()
		return
	}
	d.world.Run()
}

// onItem turns a feed item into a falling object, refused while paused
func (d *demo) onItem(it feed.Item) bool {
	if !d.world.Running() {
		return false
	}

	shape := physics.ShapeBox
	switch d.cfg.Feed.Shape {
	case "ball":
		shape = physics.ShapeCircle
	case "mixed":
		if d.rng.IntN(2) == 1 {
			shape = physics.ShapeCircle
		}
	}
	d.spawn(shape, itemLabel(it))
	return true
}

func (d *demo) nextLabel(kind string) string {
	d.spawned++
	return fmt.Sprintf("%s %d", kind, d.spawned)
}

func (d *demo) status() string {
	state := "running"
	if !d.world.Running() {
		state = "paused"
	}
	return fmt.Sprintf(" %s | %s | objects: %d | b box  o ball  d detach  p pause  q quit",
		d.cfg.World.Engine, state, d.world.ObjectCount())
}

// itemLabel formats an item as "@author: text (time ago)" wrapped to the label width
func itemLabel(it feed.Item) string {
	text := fmt.Sprintf("@%s: %s", it.Author, strings.Join(strings.Fields(it.Text), " "))
	if !it.CreatedAt.IsZero() {
		text += " (" + timeago.Since(it.CreatedAt) + ")"
	}
	return wrap(text, labelWidth)
}

// wrap breaks text at spaces so no line exceeds width display columns
// Words wider than width are cut
func wrap(text string, width int) string {
	var lines []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if ww > width {
			word = runewidth.Truncate(word, width, "")
			ww = runewidth.StringWidth(word)
		}
		if lineWidth > 0 && lineWidth+1+ww > width {
			flush()
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(word)
		lineWidth += ww
	}
	if lineWidth > 0 || len(lines) == 0 {
		flush()
	}
	return strings.Join(lines, "\n")
}
