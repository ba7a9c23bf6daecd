package ranker

import "fmt"

// synthesizeHeading builds a pair heading from the two house names and their
// cell values when no stored combination exists. Bands: both high (5-7),
// high/low split, both moderate (3-4), both low (1-2).
func synthesizeHeading(name1, name2 string, value1, value2 int) string {
	switch {
	case value1 >= 5 && value2 >= 5:
		return fmt.Sprintf("ความสัมพันธ์ที่แข็งแกร่งระหว่าง%sและ%s", name1, name2)
	case (value1 >= 5 && value2 <= 3) || (value1 <= 3 && value2 >= 5):
		high, low := name1, name2
		if value2 > value1 {
			high, low = name2, name1
		}
		return fmt.Sprintf("อิทธิพลของ%sที่ส่งผลต่อ%s", high, low)
	case value1 >= 3 && value1 <= 4 && value2 >= 3 && value2 <= 4:
		return fmt.Sprintf("ความสมดุลระหว่าง%sและ%s", name1, name2)
	case value1 <= 2 && value2 <= 2:
		return fmt.Sprintf("การขาดอิทธิพลของ%sและ%s", name1, name2)
	default:
		return fmt.Sprintf("ความเชื่อมโยงระหว่าง%sและ%s", name1, name2)
	}
}

// influencePhrase is the per-house strength clause keyed by cell value band.
func influencePhrase(value int) string {
	switch {
	case value >= 6:
		return "มีอิทธิพลอย่างมากในเรื่อง"
	case value >= 4:
		return "มีความสำคัญพอสมควรในเรื่อง"
	default:
		return "มีผลกระทบเพียงเล็กน้อยในเรื่อง"
	}
}

// synthesizeMeaning builds a pair interpretation from Thai meanings and cell
// values when no stored combination exists. A handful of well-known house
// pairings get specific closings; everything else closes on the summed band.
func synthesizeMeaning(name1, name2, meaning1, meaning2 string, value1, value2 int) string {
	text := fmt.Sprintf("%s(%s) %sชีวิตของคุณ และ%s(%s) %sชีวิตของคุณเช่นกัน ",
		name1, meaning1, influencePhrase(value1),
		name2, meaning2, influencePhrase(value2))

	pair := map[string]bool{name1: true, name2: true}
	switch {
	case pair["ธานัง"] && pair["กดุมภะ"]:
		if value1 >= 5 && value2 >= 5 {
			text += "ทำให้คุณมีโอกาสที่ดีในการสร้างความมั่นคงทางการเงิน การลงทุนจะให้ผลตอบแทนที่ดี"
		} else {
			text += "แสดงว่าเรื่องการเงินและรายได้มีความสำคัญแต่อาจไม่ใช่ประเด็นหลักในชีวิตคุณ"
		}
	case pair["อัตตะ"] && pair["ตะนุ"]:
		if value1 >= 5 && value2 >= 5 {
			text += "แสดงถึงความมั่นใจในตัวเองสูงและมีเอกลักษณ์เฉพาะตัวที่โดดเด่น"
		} else {
			text += "แสดงว่าคุณอาจยังไม่มั่นใจในตัวเองเท่าที่ควรหรือกำลังค้นหาตัวตนที่แท้จริง"
		}
	case pair["พยายะ"]:
		if value1 >= 5 || value2 >= 5 {
			text += "ทำให้คุณต้องระวังเรื่องซ่อนเร้นหรือปัญหาที่อาจเกิดขึ้นโดยไม่คาดคิด"
		} else {
			text += "แสดงว่าคุณไม่ค่อยมีปัญหาเรื่องความลับหรือเรื่องปิดบัง"
		}
	default:
		switch sum := value1 + value2; {
		case sum >= 10:
			text += "ทำให้เห็นว่าสองด้านนี้มีความสำคัญมากในชีวิตของคุณในช่วงนี้"
		case sum >= 6:
			text += "แสดงให้เห็นว่าสองด้านนี้มีความสำคัญพอสมควรในชีวิตของคุณ"
		default:
			text += "แสดงว่าสองด้านนี้ไม่ค่อยส่งผลกระทบมากนักต่อชีวิตของคุณ"
		}
	}
	return text
}

// CategoryDetail phrases a single house's strength from its cell value.
func CategoryDetail(name, meaning string, value int) string {
	prefix := fmt.Sprintf("%s(%s) ", name, meaning)
	switch {
	case value >= 6:
		return prefix + "มีอิทธิพลสูงในชีวิตคุณ เรื่องนี้มีความสำคัญมากในช่วงนี้"
	case value >= 4:
		return prefix + "มีอิทธิพลปานกลางค่อนข้างสูงในชีวิตคุณ เรื่องนี้มีความสำคัญพอสมควร"
	case value >= 2:
		return prefix + "มีอิทธิพลค่อนข้างน้อยในชีวิตคุณ เรื่องนี้ไม่ค่อยส่งผลกระทบมากนัก"
	default:
		return prefix + "แทบไม่มีอิทธิพลในชีวิตคุณ เรื่องนี้ไม่ค่อยสำคัญในช่วงนี้"
	}
}
