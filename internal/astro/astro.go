// Package astro computes the 7N9B birth bases from a birth date and
// Thai weekday. The calculation is pure: identical inputs always produce
// identical bases, and nothing here touches the catalogue.
package astro

import (
	"fmt"
	"time"

	"github.com/peeranat/chedthan/internal/model"
)

const positions = 7

// beCutoff: years above this are taken as Buddhist Era and converted.
const beCutoff = 2300

// Calculator derives birth bases from its tables.
type Calculator struct {
	tables Tables
}

// NewCalculator returns a calculator over the given tables.
func NewCalculator(t Tables) *Calculator {
	return &Calculator{tables: t}
}

// Tables exposes the calculator's lookup data for label alignment downstream.
func (c *Calculator) Tables() Tables { return c.tables }

// WeekdayOf returns the canonical Thai name for the date's weekday.
func (c *Calculator) WeekdayOf(date time.Time) string {
	return weekdayNames[int(date.Weekday())]
}

// Calculate computes the four bases for a birth date and Thai weekday.
// An empty weekday is inferred from the date; an unknown one is rejected
// with model.ErrCalculation.
func (c *Calculator) Calculate(date time.Time, weekday string) (*model.BasesResult, error) {
	if date.Year() > beCutoff {
		date = date.AddDate(-543, 0, 0)
	}
	if weekday == "" {
		weekday = c.WeekdayOf(date)
	}

	dayValue, ok := c.tables.DayValues[weekday]
	if !ok {
		return nil, fmt.Errorf("%w: invalid Thai day %q", model.ErrCalculation, weekday)
	}

	month := int(date.Month())
	animal, start, err := c.zodiac(date.Year())
	if err != nil {
		return nil, err
	}

	base1 := rotation(dayValue)
	base2 := rotation(month)
	base3 := rotation(start)

	base4 := make([]int, positions)
	for i := 0; i < positions; i++ {
		base4[i] = base1[i] + base2[i] + base3[i]
	}

	return &model.BasesResult{
		BirthInfo: model.BirthInfo{
			Date:            date,
			Day:             weekday,
			DayValue:        dayValue,
			Month:           month,
			YearAnimal:      animal,
			YearStartNumber: start,
		},
		Bases: model.Bases{Base1: base1, Base2: base2, Base3: base3, Base4: base4},
	}, nil
}

// zodiac resolves the Thai zodiac animal and its start number for a
// Gregorian year. The cycle is keyed on the Buddhist Era year mod 12.
func (c *Calculator) zodiac(year int) (string, int, error) {
	animal, ok := c.tables.ZodiacByMod[(year+543)%12]
	if !ok {
		return "", 0, fmt.Errorf("%w: no zodiac animal for year %d", model.ErrCalculation, year)
	}
	start, ok := c.tables.ZodiacStart[animal]
	if !ok {
		return "", 0, fmt.Errorf("%w: no start number for animal %q", model.ErrCalculation, animal)
	}
	return animal, start, nil
}

// Base4Name returns the auspicious name for a base4 sum, if it has one.
func (c *Calculator) Base4Name(value int) string {
	return c.tables.Base4Names[value]
}

// Labels returns the 7 house labels of base 1, 2 or 3.
func (c *Calculator) Labels(base int) []string {
	switch base {
	case 1:
		return c.tables.DayLabels
	case 2:
		return c.tables.MonthLabels
	case 3:
		return c.tables.YearLabels
	}
	return nil
}

// rotation builds the sequence 1..7 cyclically rotated so position 0 holds
// start. Starts beyond 7 (months 8-12, zodiac starts 8-12) wrap first.
func rotation(start int) []int {
	start = (start-1)%positions + 1
	seq := make([]int, positions)
	for i := 0; i < positions; i++ {
		seq[i] = (start-1+i)%positions + 1
	}
	return seq
}
