package estimate

import (
	"context"
	"testing"

	"github.com/gantty/gantty/internal/event_bus"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	t.Run("should return stored estimates", func(t *testing.T) {
		cache := NewCache()
		estimates := []DayEstimate{{ProjectID: 1, Hours: 2}}

		cache.Put(1, estimates)

		got, ok := cache.Get(1)
		assert.True(t, ok)
		assert.Equal(t, estimates, got)
	})

	t.Run("should miss after invalidation", func(t *testing.T) {
		cache := NewCache()
		cache.Put(1, []DayEstimate{{ProjectID: 1}})

		cache.Invalidate(1)

		_, ok := cache.Get(1)
		assert.False(t, ok)
	})
}

func TestCache_RegisterInvalidation(t *testing.T) {
	ctx := context.Background()

	setup := func() (*Cache, *event_bus.EventBus) {
		cache := NewCache()
		bus := event_bus.NewEventBus()
		cache.RegisterInvalidation(bus)
		cache.Put(1, []DayEstimate{{ProjectID: 1}})
		cache.Put(2, []DayEstimate{{ProjectID: 2}})
		return cache, bus
	}

	t.Run("should evict one project on a milestone change", func(t *testing.T) {
		cache, bus := setup()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeMilestoneChanged, event_bus.MilestoneChanged{Id: 5, ProjectId: 1}))

		assert.NoError(t, err)
		_, ok := cache.Get(1)
		assert.False(t, ok)
		_, ok = cache.Get(2)
		assert.True(t, ok)
	})

	t.Run("should evict one project on a project change", func(t *testing.T) {
		cache, bus := setup()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeProjectChanged, event_bus.ProjectChanged{Id: 2}))

		assert.NoError(t, err)
		_, ok := cache.Get(2)
		assert.False(t, ok)
	})

	t.Run("should clear everything on a holiday change", func(t *testing.T) {
		cache, bus := setup()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeHolidayChanged, event_bus.HolidayChanged{Id: 3}))

		assert.NoError(t, err)
		_, ok := cache.Get(1)
		assert.False(t, ok)
		_, ok = cache.Get(2)
		assert.False(t, ok)
	})

	t.Run("should clear everything on a schedule change", func(t *testing.T) {
		cache, bus := setup()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeScheduleChanged, event_bus.ScheduleChanged{}))

		assert.NoError(t, err)
		_, ok := cache.Get(1)
		assert.False(t, ok)
	})

	t.Run("should evict the linked project on a calendar event change", func(t *testing.T) {
		cache, bus := setup()

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.TypeCalendarEventChanged, event_bus.CalendarEventChanged{UID: "abc", ProjectId: 1}))

		assert.NoError(t, err)
		_, ok := cache.Get(1)
		assert.False(t, ok)
		_, ok = cache.Get(2)
		assert.True(t, ok)
	})
}
