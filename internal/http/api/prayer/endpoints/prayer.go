package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minaret-app/minaret/internal/db"
	"github.com/minaret-app/minaret/internal/http/api"
	"github.com/minaret-app/minaret/internal/http/api/prayer/packets"
	"github.com/minaret-app/minaret/internal/model"
	"github.com/minaret-app/minaret/internal/prayer"
)

type PrayerController struct {
	tracker *prayer.Tracker
	store   db.Store
}

func NewPrayerController(tracker *prayer.Tracker, store db.Store) *PrayerController {
	return &PrayerController{tracker: tracker, store: store}
}

func PrayerModule(tracker *prayer.Tracker, store db.Store) api.Module {
	ctl := NewPrayerController(tracker, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayer/today", ctl.today)
		c.POST("/prayer/track", ctl.track)
		c.GET("/prayer/qibla", ctl.qibla)
		c.GET("/prayer/history", ctl.history)
	})
}

// GET /api/prayer/today?lat=&lng=
func (p *PrayerController) today(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.TodayQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	view, err := p.tracker.LoadToday(ctx.Request.Context(), user.ID, *query.Lat, *query.Lng, tzOffset(query.TZOffset))
	if err != nil {
		return nil, mapPrayerError(err)
	}
	return view, nil
}

// POST /api/prayer/track
func (p *PrayerController) track(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.TrackRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	var (
		view prayer.TrackerView
		err  error
	)
	if request.Completed != nil {
		view, err = p.tracker.SetCompleted(ctx.Request.Context(), user.ID, request.PrayerID, *request.Completed, tzOffset(request.TZOffset))
	} else {
		view, err = p.tracker.Toggle(ctx.Request.Context(), user.ID, request.PrayerID, tzOffset(request.TZOffset))
	}
	if err != nil {
		return nil, mapPrayerError(err)
	}
	return view, nil
}

// GET /api/prayer/qibla?lat=&lng=
func (p *PrayerController) qibla(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.QiblaQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	direction, err := prayer.QiblaDirection(*query.Lat, *query.Lng)
	if err != nil {
		return nil, mapPrayerError(err)
	}
	return gin.H{"direction": direction}, nil
}

// GET /api/prayer/history?from=&to=
func (p *PrayerController) history(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var query packets.HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	days, err := p.store.ListPrayerDays(ctx.Request.Context(), user.ID, query.From, query.To)
	if err != nil {
		return nil, mapPrayerError(err)
	}
	if days == nil {
		days = []model.PrayerDay{}
	}
	return gin.H{"days": days}, nil
}

func tzOffset(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// mapPrayerError turns domain errors into user-visible responses.
// Persistence failures are never swallowed: the client needs to know a
// toggle did not stick so it can roll back its optimistic state.
func mapPrayerError(err error) *api.APIError {
	switch {
	case errors.Is(err, prayer.ErrInvalidCoordinates):
		return &api.APIError{Code: http.StatusUnprocessableEntity, Message: "invalid coordinates"}
	case errors.Is(err, prayer.ErrPersistenceWrite):
		return &api.APIError{Code: http.StatusBadGateway, Message: "couldn't save your prayer status, try again"}
	case errors.Is(err, prayer.ErrPersistenceRead):
		return &api.APIError{Code: http.StatusBadGateway, Message: "couldn't load your prayer history, try again"}
	case errors.Is(err, prayer.ErrScheduleUnavailable):
		return &api.APIError{Code: http.StatusServiceUnavailable, Message: "prayer times unavailable"}
	default:
		return &api.APIError{Code: http.StatusInternalServerError, Message: "internal error"}
	}
}
