// Package nag реализует движок напоминаний о приёмах пищи.
// Движок не хранит состояние между тиками, кроме дебаунс-меток
// в NagStateStorage, поэтому источник периодичности свободно заменяем.
package nag

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fdg312/meal-hub/internal/dailylog"
	"github.com/fdg312/meal-hub/internal/push"
	"github.com/fdg312/meal-hub/internal/settings"
	"github.com/fdg312/meal-hub/internal/storage"
	"github.com/fdg312/meal-hub/internal/targets"
	"github.com/fdg312/meal-hub/internal/timeutil"
)

type Engine struct {
	settings *settings.Service
	targets  *targets.Service
	dailyLog *dailylog.Service
	push     *push.Service
	nagState storage.NagStateStorage
	now      func() time.Time
}

func NewEngine(
	settingsService *settings.Service,
	targetsService *targets.Service,
	dailyLogService *dailylog.Service,
	pushService *push.Service,
	nagState storage.NagStateStorage,
	now func() time.Time,
) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		settings: settingsService,
		targets:  targetsService,
		dailyLog: dailyLogService,
		push:     pushService,
		nagState: nagState,
		now:      now,
	}
}

// TickResult — итог одного тика движка.
type TickResult struct {
	Skipped    string `json:"skipped,omitempty"` // not_configured | quiet_hours
	Dispatched int    `json:"dispatched"`
	Sent       int    `json:"sent"`
	Pruned     int    `json:"pruned"`
}

// Tick выполняет один проход движка. Корректен при любой периодичности
// вызова, включая нерегулярную.
func (e *Engine) Tick(ctx context.Context) (TickResult, error) {
	if !e.push.IsConfigured() {
		return TickResult{Skipped: "not_configured"}, nil
	}

	st, err := e.settings.Current(ctx)
	if err != nil {
		return TickResult{}, fmt.Errorf("load settings: %w", err)
	}
	tg, err := e.targets.Current(ctx)
	if err != nil {
		return TickResult{}, fmt.Errorf("load targets: %w", err)
	}

	now := e.now()
	nowMin := timeutil.NowMinutes(now)

	quietStart, err := timeutil.MinutesOfDay(st.QuietHours.Start)
	if err != nil {
		return TickResult{}, fmt.Errorf("quiet start: %w", err)
	}
	quietEnd, err := timeutil.MinutesOfDay(st.QuietHours.End)
	if err != nil {
		return TickResult{}, fmt.Errorf("quiet end: %w", err)
	}
	if timeutil.IsQuietNow(nowMin, quietStart, quietEnd) {
		return TickResult{Skipped: "quiet_hours"}, nil
	}

	date := timeutil.DateKey(now)
	dl, err := e.dailyLog.EnsureLog(ctx, date)
	if err != nil {
		return TickResult{}, fmt.Errorf("ensure log: %w", err)
	}

	remaining := targets.Remaining(tg, dl.Consumed)

	interval := time.Duration(st.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 20 * time.Minute
	}

	var result TickResult
	for _, slot := range st.Meals {
		slotStart, err := timeutil.MinutesOfDay(slot.Time)
		if err != nil {
			log.Printf("WARN nag: slot %s has bad time %q, skipping", slot.ID, slot.Time)
			continue
		}
		slotEnd := slotStart + slot.WindowMinutes

		// Окно слота включает обе границы.
		if nowMin < slotStart || nowMin > slotEnd {
			continue
		}
		if dl.Checkins[slot.ID] {
			continue
		}

		lastSent, found, err := e.nagState.GetLastSent(ctx, date, slot.ID)
		if err != nil {
			return result, fmt.Errorf("nag state for %s: %w", slot.ID, err)
		}
		if found && now.Sub(lastSent) < interval {
			continue
		}

		payload := buildPayload(slot, remaining)
		dispatch, err := e.push.Dispatch(ctx, payload)
		if err != nil {
			log.Printf("WARN nag: dispatch for slot %s failed: %v", slot.ID, err)
		} else {
			result.Sent += dispatch.Sent
			result.Pruned += dispatch.Pruned
		}
		result.Dispatched++

		// Метка ставится независимо от исхода доставки, иначе сбойный
		// транспорт превращается в шторм уведомлений.
		if err := e.nagState.SetLastSent(ctx, date, slot.ID, now); err != nil {
			return result, fmt.Errorf("record nag state for %s: %w", slot.ID, err)
		}
	}

	return result, nil
}

func buildPayload(slot storage.MealSlot, remaining storage.NutritionSummary) push.Payload {
	label := strings.TrimSpace(slot.Label)
	if label == "" {
		label = slot.ID
	}

	return push.Payload{
		Title: "Пора поесть: " + label,
		Body: fmt.Sprintf("Осталось: белок %s, овощи %s, гарнир %s",
			formatAmount(remaining.ProteinServings),
			formatAmount(remaining.VegServings),
			formatAmount(remaining.CarbServings),
		),
		Tag: "meal-" + slot.ID,
	}
}

// formatAmount печатает число с одним знаком после запятой,
// целые значения без хвостового ".0".
func formatAmount(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
