package calculation

import (
	"sort"
	"time"

	"github.com/nrtax/nra-tax-calculator/internal/domain"
	"github.com/nrtax/nra-tax-calculator/pkg/dateutil"
	"github.com/rotisserie/eris"
)

// PresenceDayCounter counts the days a traveler was physically present in the
// U.S. during one calendar year. Both the departure day and the return day
// count as present.
type PresenceDayCounter struct {
	Logger Logger
}

// NewPresenceDayCounter creates a new presence day counter
func NewPresenceDayCounter() *PresenceDayCounter {
	return &PresenceDayCounter{Logger: NopLogger{}}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (p *PresenceDayCounter) SetLogger(l Logger) {
	p.Logger = orNop(l)
}

// trip is a parsed exit/re-entry interval
type trip struct {
	exit  time.Time
	entry time.Time
}

// Count returns the number of days present in q.Year. A missing year or an
// unusable initial entry date is a malformed query; unusable trips and an
// unusable program end date are skipped.
func (p *PresenceDayCounter) Count(q domain.PresenceQuery) (*domain.PresenceResult, error) {
	if q.Year <= 0 {
		return nil, eris.Wrapf(ErrInvalidPresenceQuery, "year %d", q.Year)
	}
	entered, err := dateutil.ParseISODate(q.InitialEntryDate)
	if err != nil {
		return nil, eris.Wrapf(ErrInvalidPresenceQuery, "initial entry date %q", q.InitialEntryDate)
	}
	log := orNop(p.Logger)

	yearStart, yearEnd := dateutil.BeginningOfYear(q.Year), dateutil.EndOfYear(q.Year)
	windowStart := dateutil.MaxDate(entered, yearStart)
	windowEnd := yearEnd
	if q.ProgramEndDate != "" {
		if end, err := dateutil.ParseISODate(q.ProgramEndDate); err == nil {
			windowEnd = dateutil.MinDate(end, yearEnd)
		} else {
			log.Debugf("presence: program end date %q ignored: %v", q.ProgramEndDate, err)
		}
	}

	trips, skipped := parseTrips(q.Intervals, log)
	result := &domain.PresenceResult{
		Year:             q.Year,
		DaysInYear:       dateutil.DaysInYear(q.Year),
		SkippedIntervals: skipped,
	}
	if entered.After(yearEnd) || windowEnd.Before(windowStart) {
		return result, nil
	}

	result.DaysPresent = countWindow(windowStart, windowEnd, trips)
	log.Debugf("presence: year=%d window=%s..%s trips=%d skipped=%d days=%d",
		q.Year, windowStart.Format(dateutil.ISODate), windowEnd.Format(dateutil.ISODate), len(trips), skipped, result.DaysPresent)
	return result, nil
}

// parseTrips keeps the intervals with a usable exit date strictly before a
// usable re-entry date. Everything else, including a trip with no re-entry
// date, is skipped and counted.
func parseTrips(intervals []domain.ExitEntryInterval, log Logger) ([]trip, int) {
	trips := make([]trip, 0, len(intervals))
	skipped := 0
	for i, iv := range intervals {
		exit, err := dateutil.ParseISODate(iv.ExitDate)
		if err != nil {
			log.Debugf("presence: interval %d skipped, exit date %q: %v", i, iv.ExitDate, err)
			skipped++
			continue
		}
		entry, err := dateutil.ParseISODate(iv.EntryDate)
		if err != nil || !exit.Before(entry) {
			log.Debugf("presence: interval %d skipped, entry date %q not after exit %q", i, iv.EntryDate, iv.ExitDate)
			skipped++
			continue
		}
		trips = append(trips, trip{exit: exit, entry: entry})
	}
	return trips, skipped
}

// countWindow walks the trips in departure order with a cursor marking the
// first day of the current stretch of presence. A re-entry is clamped into
// the window and no day is counted twice.
func countWindow(windowStart, windowEnd time.Time, trips []trip) int {
	if len(trips) == 0 {
		return dateutil.InclusiveDays(windowStart, windowEnd)
	}
	sort.SliceStable(trips, func(i, j int) bool { return trips[i].exit.Before(trips[j].exit) })

	total := 0
	var counted time.Time // last day already counted
	span := func(from, to time.Time) {
		if !counted.IsZero() && !from.After(counted) {
			from = counted.AddDate(0, 0, 1)
		}
		if to.Before(from) {
			return
		}
		total += dateutil.InclusiveDays(from, to)
		counted = to
	}

	cursor := windowStart
	for _, t := range trips {
		if t.exit.Before(cursor) {
			// Left before the current stretch began; only a return inside the window matters
			if t.entry.After(cursor) && !t.entry.After(windowEnd) {
				cursor = t.entry
			}
			continue
		}

		span(cursor, dateutil.MinDate(t.exit, windowEnd))
		if t.exit.After(windowEnd) {
			return total
		}
		cursor = dateutil.MinDate(dateutil.MaxDate(t.entry, windowStart), windowEnd)
	}
	span(cursor, windowEnd)
	return total
}
