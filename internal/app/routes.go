package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/project/{id}/estimates", deps.EstimateHandler.GetProjectEstimates).Methods("GET")

	// Milestones
	r.HandleFunc("/api/project/{id}/milestone", deps.MilestoneHandler.GetAllForProject).Methods("GET")
	r.HandleFunc("/api/project/{id}/milestone", deps.MilestoneHandler.Create).Methods("POST")
	r.HandleFunc("/api/project/{id}/milestone-allocations", deps.MilestoneHandler.ValidateAllocations).Methods("GET")
	r.HandleFunc("/api/milestone/{id}", deps.MilestoneHandler.Update).Methods("PUT")
	r.HandleFunc("/api/milestone/{id}", deps.MilestoneHandler.Delete).Methods("DELETE")

	// Holidays
	r.HandleFunc("/api/holiday", deps.HolidayHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/holiday", deps.HolidayHandler.Create).Methods("POST")
	r.HandleFunc("/api/holiday/{id}", deps.HolidayHandler.Update).Methods("PUT")
	r.HandleFunc("/api/holiday/{id}", deps.HolidayHandler.Delete).Methods("DELETE")

	// Weekly schedule
	r.HandleFunc("/api/settings/schedule", deps.ScheduleHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/settings/schedule", deps.ScheduleHandler.UpdateSchedule).Methods("PUT")

	// Working days
	r.HandleFunc("/api/calendar/working-day", deps.EstimateHandler.GetWorkingDay).Methods("GET")

	// Calendar events
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/calendar/event", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventUid}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Timeline interaction
	r.HandleFunc("/api/timeline/drag", deps.TimelineHandler.ResolveDrag).Methods("POST")
}
