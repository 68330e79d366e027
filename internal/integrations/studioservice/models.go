package studioservice

// Room модель комнаты из StudioService
type Room struct {
	ID         int64        `json:"id"`
	StudioID   int64        `json:"studio_id"`
	Name       string       `json:"name"`
	HourlyRate float64      `json:"hourly_rate"`
	Capacity   int          `json:"capacity"`
	Hours      WeekSchedule `json:"business_hours"`
}

// WeekSchedule расписание работы комнаты по дням недели
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule расписание работы на один день недели
// OpenTime и CloseTime в формате "HH:MM", nil когда комната закрыта
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`
	CloseTime *string `json:"close_time,omitempty"`
}

// ErrorResponse модель ошибки от StudioService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
