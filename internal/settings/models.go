package settings

import (
	"fmt"
	"strings"

	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/timeutil"
)

// SettingsDTO — wire-представление настроек напоминаний.
type SettingsDTO struct {
	IntervalMinutes int                `json:"interval_minutes"`
	QuietHours      storage.QuietHours `json:"quiet_hours"`
	Meals           []storage.MealSlot `json:"meals"`
}

type SettingsResponse struct {
	OK        bool        `json:"ok"`
	Settings  SettingsDTO `json:"settings"`
	IsDefault bool        `json:"is_default"`
}

func (s SettingsDTO) Validate() error {
	if s.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive")
	}

	if _, err := timeutil.MinutesOfDay(s.QuietHours.Start); err != nil {
		return fmt.Errorf("quiet_hours.start: must be HH:MM")
	}
	if _, err := timeutil.MinutesOfDay(s.QuietHours.End); err != nil {
		return fmt.Errorf("quiet_hours.end: must be HH:MM")
	}

	if len(s.Meals) == 0 {
		return fmt.Errorf("meals must not be empty")
	}

	seen := make(map[string]bool, len(s.Meals))
	for i, m := range s.Meals {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return fmt.Errorf("meals[%d].id is required", i)
		}
		if seen[id] {
			return fmt.Errorf("meals[%d].id %q is duplicated", i, id)
		}
		seen[id] = true

		if _, err := timeutil.MinutesOfDay(m.Time); err != nil {
			return fmt.Errorf("meals[%d].time: must be HH:MM", i)
		}
		if m.WindowMinutes < 0 {
			return fmt.Errorf("meals[%d].window_minutes must not be negative", i)
		}
	}

	return nil
}

func dtoFromStorage(s storage.Settings) SettingsDTO {
	meals := s.Meals
	if meals == nil {
		meals = []storage.MealSlot{}
	}
	return SettingsDTO{
		IntervalMinutes: s.IntervalMinutes,
		QuietHours:      s.QuietHours,
		Meals:           meals,
	}
}

func dtoToStorage(dto SettingsDTO) storage.Settings {
	return storage.Settings{
		IntervalMinutes: dto.IntervalMinutes,
		QuietHours:      dto.QuietHours,
		Meals:           dto.Meals,
	}
}
