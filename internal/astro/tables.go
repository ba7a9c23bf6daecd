package astro

// Tables holds the fixed lookup data the calculator works from. They are
// passed in explicitly so tests can substitute alternates.
type Tables struct {
	// DayValues maps the 7 canonical Thai weekday names to values 1-7.
	DayValues map[string]int
	// ZodiacStart maps each zodiac animal to its 1-12 start number.
	ZodiacStart map[string]int
	// ZodiacByMod maps (gregorianYear+543) mod 12 to the animal.
	ZodiacByMod map[int]string
	// DayLabels, MonthLabels, YearLabels are the 7 house names of each base,
	// index-aligned with the base sequences.
	DayLabels   []string
	MonthLabels []string
	YearLabels  []string
	// Base4Names names the auspicious base4 sums that carry one.
	Base4Names map[int]string
}

// DefaultTables returns the canonical 7N9B tables.
func DefaultTables() Tables {
	return Tables{
		DayValues: map[string]int{
			"อาทิตย์":  1, // Sunday
			"จันทร์":   2, // Monday
			"อังคาร":   3, // Tuesday
			"พุธ":      4, // Wednesday
			"พฤหัสบดี": 5, // Thursday
			"ศุกร์":    6, // Friday
			"เสาร์":    7, // Saturday
		},
		ZodiacStart: map[string]int{
			"ชวด":    1,  // Rat
			"ฉลู":    2,  // Ox
			"ขาล":    3,  // Tiger
			"เถาะ":   4,  // Rabbit
			"มะโรง":  5,  // Dragon
			"มะเส็ง": 6,  // Snake
			"มะเมีย": 7,  // Horse
			"มะแม":   8,  // Goat
			"วอก":    9,  // Monkey
			"ระกา":   10, // Rooster
			"จอ":     11, // Dog
			"กุน":    12, // Pig
		},
		ZodiacByMod: map[int]string{
			0:  "ขาล",
			1:  "เถาะ",
			2:  "มะโรง",
			3:  "มะเส็ง",
			4:  "มะเมีย",
			5:  "มะแม",
			6:  "วอก",
			7:  "ระกา",
			8:  "จอ",
			9:  "กุน",
			10: "ชวด",
			11: "ฉลู",
		},
		DayLabels:   []string{"อัตตะ", "หินะ", "ธานัง", "ปิตา", "มาตา", "โภคา", "มัชฌิมา"},
		MonthLabels: []string{"ตะนุ", "กดุมภะ", "สหัชชะ", "พันธุ", "ปุตตะ", "อริ", "ปัตนิ"},
		YearLabels:  []string{"มรณะ", "สุภะ", "กัมมะ", "ลาภะ", "พยายะ", "ทาสา", "ทาสี"},
		Base4Names: map[int]string{
			7:  "ภาคินี",
			10: "ลาภี",
			11: "ราชาโชค",
			12: "ราชู",
			13: "มหาจร",
			15: "จันทร์",
			16: "โลกบาลก",
		},
	}
}

// weekdayNames is indexed by time.Weekday (Sunday = 0).
var weekdayNames = []string{"อาทิตย์", "จันทร์", "อังคาร", "พุธ", "พฤหัสบดี", "ศุกร์", "เสาร์"}
