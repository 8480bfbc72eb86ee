package track

import (
	"log/slog"
	"reflect"

	"github.com/mlange-42/ark/ecs"
)

// System is a unit of simulation logic run once per step.
type System interface {
	Update()
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func()

// Update calls f.
func (f SystemFunc) Update() { f() }

// App owns the world, the deferred command queue, the stat event bus, and
// the ordered systems of one simulation. Scheduling is single-threaded
// and cooperative: each Step runs user systems in order, flushes the
// queue, then runs the stat listeners. Direct handle mutations therefore
// land strictly before deferred commands issued in the same step, and
// event-driven mutations land last, once per cycle.
type App struct {
	world *ecs.World
	queue *Queue
	bus   *Bus
	log   *slog.Logger

	systems    []System
	listeners  []System
	registered map[reflect.Type]struct{}
}

// NewApp creates an app with a fresh world.
func NewApp() *App {
	return &App{
		world:      ecs.NewWorld(),
		queue:      NewQueue(),
		bus:        NewBus(),
		log:        slog.Default(),
		registered: map[reflect.Type]struct{}{},
	}
}

// SetLogger replaces the app's logger.
func (a *App) SetLogger(l *slog.Logger) {
	if l != nil {
		a.log = l
	}
}

// World returns the app's world.
func (a *App) World() *ecs.World { return a.world }

// Queue returns the deferred command queue flushed each step.
func (a *App) Queue() *Queue { return a.queue }

// Bus returns the stat event bus drained each step.
func (a *App) Bus() *Bus { return a.bus }

// AddSystem appends s to the user systems run each step, in order of
// addition.
func (a *App) AddSystem(s System) {
	a.systems = append(a.systems, s)
}

// Step runs one scheduling cycle to completion: user systems in order,
// the command flush, then the stat event listeners.
func (a *App) Step() {
	for _, s := range a.systems {
		s.Update()
	}
	a.queue.Flush(a.world)
	for _, l := range a.listeners {
		l.Update()
	}
}

// RegisterStatResource inserts res as the world's R singleton and
// installs the listener that drains R-targeted stat events once per step,
// applying them in receipt order. Registration is setup-time only and
// idempotent: repeated calls for the same R install nothing further and
// never double-apply events.
func RegisterStatResource[R any, P interface {
	*R
	Holder
}](a *App, res *R) {
	t := typeOf[R]()
	if _, ok := a.registered[t]; ok {
		return
	}
	a.registered[t] = struct{}{}
	ecs.AddResource(a.world, res)

	a.listeners = append(a.listeners, SystemFunc(func() {
		ops := a.bus.take(t)
		if len(ops) == 0 {
			return
		}
		r := ecs.GetResource[R](a.world)
		if r == nil {
			a.log.Debug("stat events dropped, resource missing",
				"resource", t.String(), "count", len(ops))
			return
		}
		table := P(r).Stats()
		for _, op := range ops {
			table.Apply(op)
		}
	}))
	a.log.Debug("stat resource registered", "resource", t.String())
}
