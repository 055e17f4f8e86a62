package sla

import "time"

// Calculator converts between calendar time and working minutes for a fixed
// schedule. It is pure arithmetic over immutable configuration and safe for
// concurrent use.
type Calculator struct {
	schedule WorkSchedule
}

// NewCalculator builds a calculator over the given schedule.
func NewCalculator(schedule WorkSchedule) *Calculator {
	return &Calculator{schedule: schedule}
}

// Schedule exposes the configured schedule.
func (c *Calculator) Schedule() WorkSchedule {
	return c.schedule
}

// WorkingMinutesElapsed counts the whole minutes of [startUTC, endUTC) that
// fall inside the working windows of the schedule. Returns 0 when endUTC is
// not after startUTC.
func (c *Calculator) WorkingMinutesElapsed(startUTC, endUTC time.Time) int {
	if !endUTC.After(startUTC) {
		return 0
	}

	loc := c.schedule.Location
	startLocal := startUTC.In(loc)
	endLocal := endUTC.In(loc)

	startYear, startMonth, startDay := startLocal.Date()
	endYear, endMonth, endDay := endLocal.Date()

	// Noon anchors keep the date walk stable across DST transitions where
	// local midnight may not exist.
	cursor := time.Date(startYear, startMonth, startDay, 12, 0, 0, 0, loc)
	lastDate := time.Date(endYear, endMonth, endDay, 12, 0, 0, 0, loc)

	total := 0
	for !cursor.After(lastDate) {
		year, month, day := cursor.Date()
		if c.schedule.IsWorkDay(cursor.Weekday()) {
			workStart, workEnd := c.schedule.windowFor(year, month, day)

			rangeStart := workStart
			if year == startYear && month == startMonth && day == startDay {
				rangeStart = startLocal
			}
			rangeEnd := workEnd
			if year == endYear && month == endMonth && day == endDay {
				rangeEnd = endLocal
			}

			overlapStart := rangeStart
			if workStart.After(overlapStart) {
				overlapStart = workStart
			}
			overlapEnd := rangeEnd
			if workEnd.Before(overlapEnd) {
				overlapEnd = workEnd
			}

			if overlapEnd.After(overlapStart) {
				total += int(overlapEnd.Sub(overlapStart) / time.Minute)
			}
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	return total
}

// AddWorkingMinutes advances startUTC by the given number of working minutes
// and returns the resulting instant in UTC. Time spent outside working
// windows does not count; a start before the day's window snaps forward to
// the window start. Non-positive minutes return startUTC unchanged.
func (c *Calculator) AddWorkingMinutes(startUTC time.Time, minutesToAdd int) time.Time {
	if minutesToAdd <= 0 {
		return startUTC
	}

	loc := c.schedule.Location
	current := startUTC.In(loc)

	for minutesToAdd > 0 {
		year, month, day := current.Date()

		if !c.schedule.IsWorkDay(current.Weekday()) {
			current = c.nextWorkDayStart(year, month, day)
			continue
		}

		workStart, workEnd := c.schedule.windowFor(year, month, day)
		if current.Before(workStart) {
			current = workStart
		} else if !current.Before(workEnd) {
			current = c.nextWorkDayStart(year, month, day+1)
			continue
		}

		available := int(workEnd.Sub(current) / time.Minute)
		if available <= 0 {
			current = c.nextWorkDayStart(year, month, day+1)
			continue
		}

		consume := available
		if minutesToAdd < consume {
			consume = minutesToAdd
		}
		current = current.Add(time.Duration(consume) * time.Minute)
		minutesToAdd -= consume

		if minutesToAdd > 0 {
			year, month, day = current.Date()
			current = c.nextWorkDayStart(year, month, day+1)
		}
	}

	return current.UTC()
}

func (c *Calculator) nextWorkDayStart(year int, month time.Month, day int) time.Time {
	cursor := time.Date(year, month, day, 12, 0, 0, 0, c.schedule.Location)
	for !c.schedule.IsWorkDay(cursor.Weekday()) {
		cursor = cursor.AddDate(0, 0, 1)
	}
	y, m, d := cursor.Date()
	start, _ := c.schedule.windowFor(y, m, d)
	return start
}
