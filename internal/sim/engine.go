package sim

import (
	"fmt"

	"github.com/gravitas-games/foundry/internal/config"
	"github.com/gravitas-games/foundry/internal/craft"
	"github.com/gravitas-games/foundry/internal/facility"
	"github.com/gravitas-games/foundry/internal/fuel"
	"github.com/gravitas-games/foundry/internal/item"
	"github.com/gravitas-games/foundry/internal/power"
	"github.com/gravitas-games/foundry/internal/recipe"
)

// Engine is one independent simulation instance. Every collaborator is
// injected through the constructor and held by reference; nothing is global,
// so tests can run as many engines side by side as they like.
//
// The engine has no timer of its own. An external driver calls Advance with
// whatever time deltas it wants, real or synthetic.
type Engine struct {
	cfg        *config.Config
	items      *item.Registry
	store      *item.Store
	recipes    *recipe.Index
	facilities *facility.Registry

	instances []*facility.Instance
	power     *power.Calculator
	fuel      *fuel.Simulator
	queue     *craft.Queue
	resolver  *craft.Resolver
	bus       *Bus

	now         float64
	lastBalance power.Balance
	balanceInit bool
}

// New wires an engine from its collaborators. The bus may be nil when no
// listener cares about events.
func New(cfg *config.Config, items *item.Registry, recipes *recipe.Index, facilities *facility.Registry, bus *Bus) *Engine {
	store := item.NewStore(items)
	return &Engine{
		cfg:        cfg,
		items:      items,
		store:      store,
		recipes:    recipes,
		facilities: facilities,
		power:      power.NewCalculator(facilities, cfg.Power.Thresholds()),
		fuel:       fuel.NewSimulator(facilities, items),
		queue:      craft.NewQueue(recipes, store, cfg.Crafting.MaxQueueSize),
		resolver:   craft.NewResolver(recipes, cfg.Crafting.ManualEfficiency, cfg.Crafting.MaxChainDepth),
		bus:        bus,
	}
}

// Store exposes the shared inventory store.
func (e *Engine) Store() *item.Store { return e.store }

// Queue exposes the crafting queue.
func (e *Engine) Queue() *craft.Queue { return e.queue }

// Fuel exposes the fuel simulator.
func (e *Engine) Fuel() *fuel.Simulator { return e.fuel }

// Now returns the simulation clock in seconds.
func (e *Engine) Now() float64 { return e.now }

// Balance returns the grid state from the most recent tick.
func (e *Engine) Balance() power.Balance { return e.lastBalance }

// Instances returns the placed facility instances.
func (e *Engine) Instances() []*facility.Instance { return e.instances }

// PlaceFacility adds count facilities of the given type and initializes a
// fuel buffer when the type burns fuel.
func (e *Engine) PlaceFacility(id string, typeID facility.TypeID, count int) (*facility.Instance, error) {
	inst, err := e.facilities.NewInstance(id, typeID, count)
	if err != nil {
		return nil, err
	}
	e.instances = append(e.instances, inst)
	e.fuel.InitBuffer(inst)
	return inst, nil
}

// AssignRecipe points a facility instance at a recipe it is allowed to run
// automatically.
func (e *Engine) AssignRecipe(facilityID string, recipeID recipe.ID) error {
	inst := e.instance(facilityID)
	if inst == nil {
		return fmt.Errorf("unknown facility %s", facilityID)
	}
	r := e.recipes.ByID(recipeID)
	if r == nil {
		return fmt.Errorf("unknown recipe %s", recipeID)
	}
	if !producerAllowed(r, string(inst.TypeID)) {
		return fmt.Errorf("recipe %s cannot run on facility type %s", recipeID, inst.TypeID)
	}
	inst.Production = &facility.Production{RecipeID: recipeID}
	if inst.Status == facility.StatusIdle {
		inst.Status = facility.StatusRunning
	}
	return nil
}

func producerAllowed(r *recipe.Recipe, typeID string) bool {
	for _, p := range r.Producers {
		if p == typeID {
			return true
		}
	}
	return false
}

func (e *Engine) instance(id string) *facility.Instance {
	for _, inst := range e.instances {
		if inst.ID == id {
			return inst
		}
	}
	return nil
}

// Advance runs one simulation step. Ordering within the tick is a hard
// contract: the power balance is computed first because efficiency feeds
// the burn-rate math, fuel is consumed before any production advances, and
// inventory commits happen only at completion, never speculatively.
func (e *Engine) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	e.now += dt

	// 1. Grid state for this tick.
	bal := e.power.Calculate(e.instances, e.steamSupplyKW())
	if !e.balanceInit || bal.Status != e.lastBalance.Status {
		e.bus.Publish(Event{
			Type: EventPowerStatusChanged,
			Time: e.now,
			Data: map[string]any{
				"status": bal.Status.String(),
				"ratio":  bal.SatisfactionRatio,
			},
		})
	}
	e.lastBalance = bal
	e.balanceInit = true

	// 2. Scarcity propagates into per-facility efficiency.
	for _, inst := range e.instances {
		e.power.Apply(inst, bal)
	}

	// 3. Burners draw fuel, gated by power-scaled efficiency and by input
	// availability so fuel is never wasted on blocked production.
	fuelOK := make(map[string]bool, len(e.instances))
	for _, inst := range e.instances {
		if e.fuel.Buffer(inst.ID) == nil {
			fuelOK[inst.ID] = true
			continue
		}
		active := e.activeRecipe(inst)
		producing := active != nil && inst.Status.Active()
		res := e.fuel.Consume(inst, dt, producing, active, e.store)
		fuelOK[inst.ID] = res.OK
		if !res.OK {
			if inst.Status != facility.StatusNoFuel {
				e.bus.Publish(Event{Type: EventFuelExhausted, Time: e.now, FacilityID: inst.ID})
			}
			inst.Status = facility.StatusNoFuel
		}
	}

	// 4. Scarce fuel goes to high-priority producers first.
	e.fuel.AutoRefuel(e.instances, e.store, e.cfg.Fuel.MaxRefuelPasses)

	// 5. Facilities convert inputs to outputs.
	for _, inst := range e.instances {
		e.stepFacility(inst, dt, fuelOK[inst.ID])
	}

	// 6. The crafting queue advances its head task.
	for _, c := range e.queue.Advance(dt) {
		typ := EventTaskCompleted
		if c.ChainCompleted {
			typ = EventChainCompleted
		}
		e.bus.Publish(Event{
			Type:    typ,
			Time:    e.now,
			TaskID:  c.Task.ID,
			ChainID: c.ChainID,
			Item:    c.Task.ItemID,
		})
	}
}

// steamSupplyKW is the power the boiler fleet can currently back: running
// boilers with fuel in their buffers, scaled by count and efficiency. The
// full steam network lives outside this core; this figure is its interface.
func (e *Engine) steamSupplyKW() float64 {
	total := 0.0
	for _, inst := range e.instances {
		t := e.facilities.Lookup(inst.TypeID)
		if t == nil || t.Class != facility.ClassBoiler || !inst.Status.Active() {
			continue
		}
		b := e.fuel.Buffer(inst.ID)
		if b == nil || b.Slots[0].Empty() {
			continue
		}
		total += t.PowerOutputKW * float64(inst.Count) * inst.Efficiency
	}
	return total
}

func (e *Engine) activeRecipe(inst *facility.Instance) *recipe.Recipe {
	if inst.Production == nil {
		return nil
	}
	return e.recipes.ByID(inst.Production.RecipeID)
}

// stepFacility advances automated production for one instance. A stalled
// facility (no fuel, no power, missing inputs) holds at its current progress
// indefinitely; that is backpressure, not failure.
func (e *Engine) stepFacility(inst *facility.Instance, dt float64, fuelOK bool) {
	if inst.Status == facility.StatusStopped {
		return
	}
	r := e.activeRecipe(inst)
	if r == nil {
		if inst.Status != facility.StatusIdle && inst.Status != facility.StatusNoPower {
			inst.Status = facility.StatusIdle
		}
		return
	}
	t := e.facilities.Lookup(inst.TypeID)
	if t == nil || r.Time <= 0 {
		return
	}
	if t.Energy == facility.SourceBurner && !fuelOK {
		return
	}
	if inst.Status == facility.StatusNoPower {
		return
	}
	if !e.store.HasAll(r.In) {
		inst.Status = facility.StatusInsufficientInput
		return
	}
	inst.Status = facility.StatusRunning

	speed := t.CraftingSpeed
	if speed <= 0 {
		speed = 1
	}
	inst.Production.Progress += dt * speed * inst.Efficiency * float64(inst.Count) / r.Time
	for inst.Production.Progress >= 1 {
		if !e.store.ConsumeAll(r.In) {
			inst.Status = facility.StatusInsufficientInput
			break
		}
		e.store.AddAll(r.Out)
		inst.Production.Progress -= 1
	}
}
