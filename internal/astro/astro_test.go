package astro

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/peeranat/chedthan/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate_Base1Rotations(t *testing.T) {
	c := NewCalculator(DefaultTables())

	tests := []struct {
		day  string
		want []int
	}{
		{"อาทิตย์", []int{1, 2, 3, 4, 5, 6, 7}},
		{"จันทร์", []int{2, 3, 4, 5, 6, 7, 1}},
		{"อังคาร", []int{3, 4, 5, 6, 7, 1, 2}},
		{"พุธ", []int{4, 5, 6, 7, 1, 2, 3}},
		{"พฤหัสบดี", []int{5, 6, 7, 1, 2, 3, 4}},
		{"ศุกร์", []int{6, 7, 1, 2, 3, 4, 5}},
		{"เสาร์", []int{7, 1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			r, err := c.Calculate(date(1990, 5, 15), tt.day)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(r.Bases.Base1, tt.want) {
				t.Errorf("base1 = %v, want %v", r.Bases.Base1, tt.want)
			}
			if r.Bases.Base1[0] != r.BirthInfo.DayValue {
				t.Errorf("base1[0] = %d, want day value %d", r.Bases.Base1[0], r.BirthInfo.DayValue)
			}
		})
	}
}

func TestCalculate_InvalidDay(t *testing.T) {
	c := NewCalculator(DefaultTables())
	_, err := c.Calculate(date(1990, 5, 15), "Monday")
	if err == nil {
		t.Fatal("expected error for non-Thai day name")
	}
	if !errors.Is(err, model.ErrCalculation) {
		t.Errorf("expected ErrCalculation, got %v", err)
	}
}

func TestCalculate_Base4IsSum(t *testing.T) {
	c := NewCalculator(DefaultTables())
	r, err := c.Calculate(date(1996, 2, 14), "พุธ")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 7; i++ {
		want := r.Bases.Base1[i] + r.Bases.Base2[i] + r.Bases.Base3[i]
		if r.Bases.Base4[i] != want {
			t.Errorf("base4[%d] = %d, want %d", i, r.Bases.Base4[i], want)
		}
	}
}

func TestCalculate_KnownChart(t *testing.T) {
	// 1996-02-14 was a Wednesday: base1 starts at 4, base2 at month 2.
	c := NewCalculator(DefaultTables())
	r, err := c.Calculate(date(1996, 2, 14), "พุธ")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r.Bases.Base1, []int{4, 5, 6, 7, 1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("base1 = %v, want %v", got, want)
	}
	if got, want := r.Bases.Base2, []int{2, 3, 4, 5, 6, 7, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("base2 = %v, want %v", got, want)
	}
	if r.BirthInfo.Month != 2 || r.BirthInfo.DayValue != 4 {
		t.Errorf("birth info month=%d day_value=%d, want 2/4", r.BirthInfo.Month, r.BirthInfo.DayValue)
	}
}

func TestCalculate_MonthWrap(t *testing.T) {
	// Months 8-12 wrap into 1-7: August rotates like January.
	c := NewCalculator(DefaultTables())
	jan, err := c.Calculate(date(1990, 1, 7), "อาทิตย์")
	if err != nil {
		t.Fatal(err)
	}
	aug, err := c.Calculate(date(1990, 8, 5), "อาทิตย์")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(jan.Bases.Base2, aug.Bases.Base2) {
		t.Errorf("august base2 %v should equal january base2 %v", aug.Bases.Base2, jan.Bases.Base2)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	c := NewCalculator(DefaultTables())
	a, err := c.Calculate(date(1988, 11, 30), "พุธ")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Calculate(date(1988, 11, 30), "พุธ")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different bases")
	}
}

func TestCalculate_BuddhistEraYear(t *testing.T) {
	c := NewCalculator(DefaultTables())
	be, err := c.Calculate(date(2539, 2, 14), "พุธ") // 2539 BE = 1996 CE
	if err != nil {
		t.Fatal(err)
	}
	ce, err := c.Calculate(date(1996, 2, 14), "พุธ")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(be.Bases, ce.Bases) {
		t.Errorf("BE year bases %v differ from CE year bases %v", be.Bases, ce.Bases)
	}
	if be.BirthInfo.YearAnimal != ce.BirthInfo.YearAnimal {
		t.Errorf("BE animal %q differs from CE animal %q", be.BirthInfo.YearAnimal, ce.BirthInfo.YearAnimal)
	}
}

func TestWeekdayOf(t *testing.T) {
	c := NewCalculator(DefaultTables())
	// 1996-02-14 was a Wednesday.
	if got := c.WeekdayOf(date(1996, 2, 14)); got != "พุธ" {
		t.Errorf("WeekdayOf = %q, want พุธ", got)
	}
	// Inference path: empty weekday resolves from the date.
	r, err := c.Calculate(date(1996, 2, 14), "")
	if err != nil {
		t.Fatal(err)
	}
	if r.BirthInfo.Day != "พุธ" || r.BirthInfo.DayValue != 4 {
		t.Errorf("inferred day = %q (%d), want พุธ (4)", r.BirthInfo.Day, r.BirthInfo.DayValue)
	}
}

func TestZodiac_CycleStability(t *testing.T) {
	c := NewCalculator(DefaultTables())
	a, _, err := c.zodiac(1990)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := c.zodiac(1990 + 12)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("animal for 1990 (%q) should repeat in 2002 (%q)", a, b)
	}
}
