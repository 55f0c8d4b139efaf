package booking

import (
	"time"

	"gmpwellness/config"
)

// BusinessHours is the clinic's weekly template for the slot grid. All values
// are minutes from midnight, clinic-local.
type BusinessHours struct {
	WeekdayOpen   int
	WeekdayClose  int
	SaturdayOpen  int
	SaturdayClose int
	BreakStart    int // break interval [BreakStart, BreakEnd) is removed from the grid
	BreakEnd      int
	StepMinutes   int
	HorizonDays   int
}

// HoursFromConfig builds the template from the loaded application config.
func HoursFromConfig() BusinessHours {
	cfg := config.AppConfig
	return BusinessHours{
		WeekdayOpen:   cfg.WeekdayOpenMinute,
		WeekdayClose:  cfg.WeekdayCloseMinute,
		SaturdayOpen:  cfg.SaturdayOpenMinute,
		SaturdayClose: cfg.SaturdayCloseMinute,
		BreakStart:    cfg.BreakStartMinute,
		BreakEnd:      cfg.BreakEndMinute,
		StepMinutes:   cfg.SlotStepMinutes,
		HorizonDays:   cfg.BookingHorizonDays,
	}
}

// openClose returns the opening window for a weekday; ok is false on closed days.
func (bh BusinessHours) openClose(day time.Weekday) (open, close int, ok bool) {
	switch day {
	case time.Sunday:
		return 0, 0, false
	case time.Saturday:
		return bh.SaturdayOpen, bh.SaturdayClose, true
	default:
		return bh.WeekdayOpen, bh.WeekdayClose, true
	}
}

// Grid produces the ordered sequence of candidate start minutes for one date.
// Dates outside [today, today+horizon], closed weekdays and break slots yield
// nothing; for today, starts that have already elapsed are dropped. An empty
// result is a valid answer ("fully booked out" or "day over"), distinct from
// an error.
func (bh BusinessHours) Grid(date string, now time.Time) ([]int, error) {
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) || day.After(today.AddDate(0, 0, bh.HorizonDays)) {
		return nil, nil
	}

	open, close, ok := bh.openClose(day.Weekday())
	if !ok {
		return nil, nil
	}

	nowMinute := -1
	if day.Equal(today) {
		nowMinute = now.Hour()*60 + now.Minute()
	}

	var grid []int
	for start := open; start+bh.StepMinutes <= close; start += bh.StepMinutes {
		// A slot whose step would overlap the break interval can never be
		// claimed, not even partially.
		if start < bh.BreakEnd && start+bh.StepMinutes > bh.BreakStart {
			continue
		}
		if start <= nowMinute {
			continue
		}
		grid = append(grid, start)
	}
	return grid, nil
}
