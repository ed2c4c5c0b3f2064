package estimate

import (
	"sync"

	"github.com/gantty/gantty/internal/event_bus"
)

// Cache holds computed day estimates per project. Entries are dropped when
// any of the inputs change: holidays and the weekly schedule affect every
// project, so those changes clear the whole cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[int][]DayEstimate
}

func NewCache() *Cache {
	return &Cache{entries: make(map[int][]DayEstimate)}
}

func (c *Cache) Get(projectID int) ([]DayEstimate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	estimates, ok := c.entries[projectID]
	return estimates, ok
}

func (c *Cache) Put(projectID int, estimates []DayEstimate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectID] = estimates
}

func (c *Cache) Invalidate(projectID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, projectID)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int][]DayEstimate)
}

// RegisterInvalidation wires the cache to the event bus so that domain
// changes evict stale projections.
func (c *Cache) RegisterInvalidation(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.ProjectChanged](bus, event_bus.TypeProjectChanged,
		func(e event_bus.EventT[event_bus.ProjectChanged]) error {
			c.Invalidate(e.Data.Id)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.MilestoneChanged](bus, event_bus.TypeMilestoneChanged,
		func(e event_bus.EventT[event_bus.MilestoneChanged]) error {
			c.Invalidate(e.Data.ProjectId)
			return nil
		})
	event_bus.SubscribeTyped[event_bus.CalendarEventChanged](bus, event_bus.TypeCalendarEventChanged,
		func(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
			if e.Data.ProjectId != 0 {
				c.Invalidate(e.Data.ProjectId)
			}
			return nil
		})
	bus.Subscribe(event_bus.TypeHolidayChanged, func(event_bus.Event) error {
		c.Clear()
		return nil
	})
	bus.Subscribe(event_bus.TypeScheduleChanged, func(event_bus.Event) error {
		c.Clear()
		return nil
	})
}
