package packets

// TodayQuery carries the device coordinates. Pointers keep zero values
// (the equator/prime meridian) distinguishable from missing params.
type TodayQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lng *float64 `form:"lng" binding:"required"`

	// device offset in minutes east of UTC; absent keeps server time
	TZOffset *int `form:"tz_offset" binding:"omitempty,min=-720,max=840"`
}

// TrackRequest marks one prayer. When Completed is present the state is
// set explicitly; when absent the current state is flipped.
type TrackRequest struct {
	PrayerID  string `json:"prayer_id" binding:"required"`
	Completed *bool  `json:"completed"`
	TZOffset  *int   `json:"tz_offset" binding:"omitempty,min=-720,max=840"`
}

type QiblaQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lng *float64 `form:"lng" binding:"required"`
}

type HistoryQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}
