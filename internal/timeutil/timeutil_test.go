package timeutil

import (
	"errors"
	"testing"
)

func TestMinutesOfDay(t *testing.T) {
	m, err := MinutesOfDay("13:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != 785 {
		t.Fatalf("expected 785, got %d", m)
	}

	m, err = MinutesOfDay("00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != 0 {
		t.Fatalf("expected 0, got %d", m)
	}

	m, err = MinutesOfDay("23:59")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != 1439 {
		t.Fatalf("expected 1439, got %d", m)
	}
}

func TestMinutesOfDayMalformed(t *testing.T) {
	for _, bad := range []string{"", "13", "13:5x", "25:00", "12:60", "ab:cd", "-1:00"} {
		if _, err := MinutesOfDay(bad); !errors.Is(err, ErrBadTime) {
			t.Fatalf("expected ErrBadTime for %q, got %v", bad, err)
		}
	}
}

func TestIsQuietNowDisabled(t *testing.T) {
	// start == end means quiet hours are off for every minute of the day
	for m := 0; m < 1440; m += 60 {
		if IsQuietNow(m, 480, 480) {
			t.Fatalf("expected quiet=false at minute %d with start==end", m)
		}
	}
}

func TestIsQuietNowSameDay(t *testing.T) {
	// 13:00-14:00 → quiet exactly for [780, 840)
	if !IsQuietNow(780, 780, 840) {
		t.Fatalf("expected quiet at 13:00")
	}
	if !IsQuietNow(839, 780, 840) {
		t.Fatalf("expected quiet at 13:59")
	}
	if IsQuietNow(840, 780, 840) {
		t.Fatalf("expected not quiet at 14:00")
	}
	if IsQuietNow(779, 780, 840) {
		t.Fatalf("expected not quiet at 12:59")
	}
}

func TestIsQuietNowWrapsMidnight(t *testing.T) {
	// 22:00-07:00
	start, end := 22*60, 7*60
	if !IsQuietNow(23*60, start, end) {
		t.Fatalf("expected quiet at 23:00")
	}
	if !IsQuietNow(6*60, start, end) {
		t.Fatalf("expected quiet at 06:00")
	}
	if IsQuietNow(12*60, start, end) {
		t.Fatalf("expected not quiet at 12:00")
	}
	if !IsQuietNow(start, start, end) {
		t.Fatalf("expected quiet at the start boundary")
	}
	if IsQuietNow(end, start, end) {
		t.Fatalf("expected not quiet at the end boundary")
	}
}
