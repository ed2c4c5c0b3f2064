package app

import (
	"database/sql"

	"github.com/gantty/gantty/internal/config"
	"github.com/gantty/gantty/internal/event_bus"
	"github.com/gantty/gantty/internal/utils"
	"github.com/gantty/gantty/pkg/calendar"
	"github.com/gantty/gantty/pkg/estimate"
	"github.com/gantty/gantty/pkg/holiday"
	"github.com/gantty/gantty/pkg/milestone"
	"github.com/gantty/gantty/pkg/project"
	"github.com/gantty/gantty/pkg/schedule"
	"github.com/gantty/gantty/pkg/timeline"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	ProjectRepo    project.Repository
	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	MilestoneRepo    milestone.Repository
	MilestoneService *milestone.ServiceImpl
	MilestoneHandler *milestone.Handler

	HolidayRepo    holiday.Repository
	HolidayService *holiday.ServiceImpl
	HolidayHandler *holiday.Handler

	ScheduleRepo    schedule.Repository
	ScheduleService *schedule.ServiceImpl
	ScheduleHandler *schedule.Handler

	CalendarRepo    calendar.Repository
	CalendarService *calendar.ServiceImpl
	CalendarHandler *calendar.Handler

	EstimateCache   *estimate.Cache
	EstimateService *estimate.ServiceImpl
	EstimateHandler *estimate.Handler

	TimelineHandler *timeline.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo, deps.EventBus)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.MilestoneRepo = milestone.NewRepository(db)
	deps.MilestoneService = milestone.NewService(deps.MilestoneRepo, deps.ProjectService, deps.EventBus)
	deps.MilestoneHandler = milestone.NewHandler(deps.MilestoneService)

	deps.HolidayRepo = holiday.NewRepository(db)
	deps.HolidayService = holiday.NewService(deps.HolidayRepo, deps.EventBus)
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayService)

	deps.ScheduleRepo = schedule.NewRepository(db)
	deps.ScheduleService = schedule.NewService(deps.ScheduleRepo, deps.EventBus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.CalendarRepo = calendar.NewRepository(db)
	deps.CalendarService = calendar.NewService(deps.CalendarRepo, deps.EventBus)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	deps.EstimateCache = estimate.NewCache()
	deps.EstimateCache.RegisterInvalidation(deps.EventBus)
	deps.EstimateService = estimate.NewService(
		deps.ProjectService,
		deps.MilestoneService,
		deps.HolidayService,
		deps.ScheduleService,
		deps.CalendarService,
		deps.EstimateCache,
	)
	deps.EstimateHandler = estimate.NewHandler(deps.EstimateService, deps.Clock)

	deps.TimelineHandler = timeline.NewHandler()

	return deps
}
