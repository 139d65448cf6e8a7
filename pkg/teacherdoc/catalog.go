package teacherdoc

import (
	"sort"
)

// Tag describes one marker a template author can place.
type Tag struct {
	Label string
	Key   string
}

// Marker returns the text that is placed in a template.
func (t Tag) Marker() string {
	return "@" + t.Key
}

// TagGroup is a titled list of tags.
type TagGroup struct {
	Name string
	Tags []Tag
}

// Structural markers handled by the table expanders.
const (
	ContentMarker   = "@content"
	TopicMarker     = "@course_topic"
	PriceListMarker = "@price_list_table"
	PhotoGridMarker = "@weekly_photos"
)

var catalog = []TagGroup{
	{
		Name: "teacher",
		Tags: []Tag{
			{"姓名", "name"},
			{"綽號", "nickname"},
			{"大頭照", "photo"},
			{"申請單位", "unit"},
			{"出生日期", "birth"},
			{"性別", "gender"},
			{"電話", "tel"},
			{"手機", "mobile"},
			{"身分證字號", "id"},
			{"通訊地址", "address"},
			{"Email", "email"},
			{"Line ID", "line"},
			{"專長", "skill"},
			{"最高學歷", "education"},
			{"現職", "job"},
			{"教學經驗", "experience"},
			{"經歷", "history"},
			{"身分證正面（照片）", "id_front"},
			{"身分證反面（照片）", "id_back"},
			{"畢業證書（照片）", "diploma"},
			{"其他證明（照片）", "other_certs"},
		},
	},
	{
		Name: "course",
		Tags: []Tag{
			{"社團名稱", "course_name"},
			{"課程介紹", "intro"},
			{"教學目標", "target"},
			{"材料費", "material_fee"},
			{"材料內容", "reason"},
			{"課程內容（表格）", "content"},
			{"課程大綱（表格）", "course_topic"},
			{"課程照片（照片）", "photos"},
			{"每週照片（表格）", "weekly_photos"},
		},
	},
	{
		Name: "price list",
		Tags: []Tag{
			{"報價單（表格）", "price_list_table"},
			{"報價單品名", "price_list_name"},
			{"報價單單位", "price_list_unit"},
			{"報價單數量", "price_list_quantity"},
			{"報價單單價", "price_list_price"},
			{"報價單預計金額", "price_list_amount"},
			{"報價單用途說明", "price_list_usage"},
			{"公司存摺（照片）", "bank_account"},
		},
	},
}

// Catalog returns the known markers grouped as teacher, course and price
// list tags.
func Catalog() []TagGroup {
	out := make([]TagGroup, len(catalog))
	for i, g := range catalog {
		out[i] = TagGroup{Name: g.Name, Tags: append([]Tag(nil), g.Tags...)}
	}
	return out
}

// markerKeys returns the keys to scan for: the record keys and the catalog
// keys, longest first so that a key is never matched as the prefix of a
// longer one.
func markerKeys(rec Record) []string {
	set := make(map[string]bool, len(rec))
	for k := range rec {
		if k != "" {
			set[k] = true
		}
	}
	for _, g := range catalog {
		for _, t := range g.Tags {
			set[t.Key] = true
		}
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
