package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/peeranat/chedthan/internal/model"
)

// canonicalCategories are the 21 houses of the three bases, with their Thai
// meanings, house numbers and house types. Seeded into an empty catalogue so
// name lookups work before any readings are imported.
var canonicalCategories = []model.Category{
	{Name: "กดุมภะ", ThaiName: "รายได้รายจ่าย", HouseNumber: 1, HouseType: "กาลปักษ์"},
	{Name: "กัมมะ", ThaiName: "หน้าที่การงาน", HouseNumber: 2, HouseType: "เกณฑ์ชะตา"},
	{Name: "ตะนุ", ThaiName: "ตัวท่านเอง", HouseNumber: 3, HouseType: "จร"},
	{Name: "ทาสา", ThaiName: "เหน็จเหนื่อยเพื่อคนอื่น ส่วนรวม", HouseNumber: 4, HouseType: "กาลปักษ์"},
	{Name: "ทาสี", ThaiName: "การเหน็จเหนื่อยเพื่อตัวเอง", HouseNumber: 5, HouseType: "เกณฑ์ชะตา"},
	{Name: "ธานัง", ThaiName: "เรื่องเงิน ๆ ทอง ๆ", HouseNumber: 6, HouseType: "จร"},
	{Name: "ปัตนิ", ThaiName: "คู่ครอง", HouseNumber: 7, HouseType: "กาลปักษ์"},
	{Name: "ปิตา", ThaiName: "พ่อหรือผู้ใหญ่ เรื่องนอกบ้าน", HouseNumber: 8, HouseType: "เกณฑ์ชะตา"},
	{Name: "ปุตตะ", ThaiName: "เรื่องลูก การเริ่มต้น", HouseNumber: 9, HouseType: "จร"},
	{Name: "พยายะ", ThaiName: "สิ่งไม่ดี เรื่องปิดบัง ซ่อนเร้น", HouseNumber: 10, HouseType: "กาลปักษ์"},
	{Name: "พันธุ", ThaiName: "ญาติพี่น้อง", HouseNumber: 11, HouseType: "เกณฑ์ชะตา"},
	{Name: "มรณะ", ThaiName: "เรื่องเจ็บป่วย", HouseNumber: 12, HouseType: "กาลปักษ์"},
	{Name: "มัชฌิมา", ThaiName: "เรื่องกลาง ๆ ไม่หนักหนา", HouseNumber: 1, HouseType: "กาลปักษ์"},
	{Name: "มาตา", ThaiName: "แม่หรือผู้ใหญ่ เรื่องในบ้าน เรื่องส่วนตัว", HouseNumber: 2, HouseType: "เกณฑ์ชะตา"},
	{Name: "ลาภะ", ThaiName: "ลาภยศ โชคลาภ", HouseNumber: 3, HouseType: "จร"},
	{Name: "สหัชชะ", ThaiName: "เพื่อนฝูง การติดต่อ", HouseNumber: 4, HouseType: "กาลปักษ์"},
	{Name: "สุภะ", ThaiName: "ความเจริญรุ่งเรือง", HouseNumber: 5, HouseType: "เกณฑ์ชะตา"},
	{Name: "หินะ", ThaiName: "ความผิดหวัง", HouseNumber: 6, HouseType: "กาลปักษ์"},
	{Name: "อริ", ThaiName: "ปัญหา อุปสรรค", HouseNumber: 7, HouseType: "กาลปักษ์"},
	{Name: "อัตตะ", ThaiName: "ตัวท่านเอง", HouseNumber: 8, HouseType: "กาลปักษ์"},
	{Name: "โภคา", ThaiName: "สินทรัพย์", HouseNumber: 9, HouseType: "จร"},
}

// seedCategories populates the categories table on first open.
func (s *SQLiteStore) seedCategories() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	ctx := context.Background()
	for _, c := range canonicalCategories {
		if _, err := s.PutCategory(ctx, c); err != nil {
			return err
		}
	}
	s.logger.Info("seeded canonical categories", zap.Int("count", len(canonicalCategories)))
	return nil
}
