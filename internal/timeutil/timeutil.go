package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadTime means an HH:MM string could not be parsed.
var ErrBadTime = errors.New("invalid HH:MM time")

// MinutesOfDay парсит "HH:MM" в минуты от полуночи [0, 1440).
func MinutesOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, hhmm)
	}

	return h*60 + m, nil
}

// NowMinutes возвращает минуты от полуночи для t по локальным часам.
func NowMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// IsQuietNow сообщает, попадает ли current в тихие часы [start, end).
// start == end — тихие часы выключены (всегда false).
// start > end — интервал переходит через полночь.
func IsQuietNow(current, start, end int) bool {
	if start == end {
		return false
	}
	if start < end {
		return current >= start && current < end
	}
	return current >= start || current < end
}

// DateKey возвращает ключ календарной даты YYYY-MM-DD для t.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
