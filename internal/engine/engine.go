// Package engine implements the fleet alerting and cross-entity consistency
// core: threshold rules with per-(rule,truck) cooldowns, evaluated on truck
// mutations, on a periodic sweep, and once shortly after startup.
package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"fleet-admin/internal/config"
	"fleet-admin/internal/models"
)

// Sink receives the notifications generated from alert events. Implementations
// append to a durable user-visible list; deduplication stays here in the
// engine, never in the sink.
type Sink interface {
	Notify(n models.Notification) error
}

// Engine owns all alert evaluation state and scheduling. Construct with New,
// then Start/Stop; there is no ambient package-level state. A single run
// goroutine performs every evaluation, so a sweep in progress is never
// re-entered and a mutation-triggered evaluation is observed before the next
// sweep touches the same truck.
type Engine struct {
	store     FleetReader
	cooldowns CooldownStore
	sink      Sink
	rules     []Rule
	cfg       config.EngineConfig

	now     func() time.Time
	updates chan models.Truck

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func New(store FleetReader, cooldowns CooldownStore, sink Sink, cfg config.EngineConfig) *Engine {
	return &Engine{
		store:     store,
		cooldowns: cooldowns,
		sink:      sink,
		rules:     Rules(cfg),
		cfg:       cfg,
		now:       time.Now,
		updates:   make(chan models.Truck, 256),
	}
}

// Start launches the evaluation loop: one deferred pass after InitialDelay to
// catch pre-existing threshold breaches, then a full sweep every
// SweepInterval. Calling Start twice is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.started = true
	go e.run(ctx)
	log.Printf("Alert engine started (sweep every %v, initial check in %v)", e.cfg.SweepInterval, e.cfg.InitialDelay)
}

// Stop cancels the periodic sweep and the deferred initial check and waits
// for the evaluation loop to drain.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	cancel()
	<-done
	log.Println("Alert engine stopped")
}

// TruckUpdated hands a mutated truck to the evaluation loop. Only the
// low-fuel rule runs on this path; the periodic sweep covers the rest. The
// call never blocks: if the queue is full the update is dropped and the next
// sweep picks the truck up.
func (e *Engine) TruckUpdated(t models.Truck) {
	select {
	case e.updates <- t:
	default:
		log.Printf("Alert engine update queue full, deferring truck %s to next sweep", t.ID.Hex())
	}
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	initial := time.NewTimer(e.cfg.InitialDelay)
	defer initial.Stop()
	ticker := time.NewTicker(e.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-initial.C:
			e.Sweep()
		case <-ticker.C:
			e.Sweep()
		case t := <-e.updates:
			e.evaluateTruck(t, func(r Rule) bool { return r.Kind == RuleLowFuel })
		}
	}
}

// Sweep evaluates every rule for every truck in the store. Failures are
// isolated per (rule, truck): a bad date or a cooldown-store error for one
// pair never stops the rest of the pass.
func (e *Engine) Sweep() {
	for _, t := range e.store.Trucks() {
		e.evaluateTruck(t, nil)
	}
}

func (e *Engine) evaluateTruck(t models.Truck, include func(Rule) bool) {
	id := t.ID.Hex()
	for _, rule := range e.rules {
		if include != nil && !include(rule) {
			continue
		}

		msg, fired := rule.Evaluate(t, e.now())
		if !fired {
			continue
		}

		cooling, err := e.cooldowns.InCooldown(rule.Kind, id)
		if err != nil {
			log.Printf("Cooldown check failed for %s/%s: %v", rule.Kind, id, err)
			continue
		}
		if cooling {
			continue
		}

		event := AlertEvent{
			Rule:        rule.Kind,
			TruckID:     id,
			TruckName:   t.Name,
			Message:     msg,
			Severity:    rule.Severity,
			GeneratedAt: e.now(),
		}
		e.emit(event, rule.Cooldown)
	}
}

func (e *Engine) emit(event AlertEvent, window time.Duration) {
	if err := e.sink.Notify(notificationFor(event)); err != nil {
		// no cooldown on delivery failure, the next pass retries
		log.Printf("Failed to deliver %s alert for truck %s: %v", event.Rule, event.TruckID, err)
		return
	}
	if err := e.cooldowns.MarkEmitted(event.Rule, event.TruckID, window); err != nil {
		log.Printf("Failed to record cooldown for %s: %v", event.CooldownKey(), err)
	}
}

func notificationFor(event AlertEvent) models.Notification {
	title := "Maintenance Overdue"
	if event.Rule == RuleLowFuel {
		title = "Low Fuel Warning"
	}

	name := event.TruckName
	if name == "" {
		name = event.TruckID
	}

	return models.Notification{
		Title:     title,
		Message:   name + ": " + event.Message,
		Type:      event.Severity,
		URL:       "/trucks/" + event.TruckID,
		CreatedAt: event.GeneratedAt,
	}
}
