package core

import (
	"regexp"
	"strings"
)

// Supported catalog languages.
const (
	LangRU = "ru"
	LangEN = "en"
)

// NormalizeLang maps any input to a supported language, defaulting to ru.
func NormalizeLang(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), LangEN) {
		return LangEN
	}
	return LangRU
}

// nameEN is keyed by the lowercased, whitespace-collapsed Russian name.
var nameEN = map[string]string{
	"сосиски «из говядины» (80 г × 6 шт)":                "Beef Sausages (80g×6)",
	"сосиски «два мяса» (80 г × 6 шт)":                   "Two-Meat Sausages (80g×6)",
	"сосиски «три перца с сыром» (80 г × 6 шт)":          "Three Peppers & Cheese Sausages (80g×6)",
	"сосиски «куриные» (80 г × 6 шт)":                    "Chicken Sausages (80g×6)",
	"сосиски «с бараниной» (80 г × 6 шт)":                "Lamb Sausages (80g×6)",
	"сосиски «с травами» (130 г × 5 шт)":                 "Herb Sausages (130g×5)",
	"сосиски «с сыром» (130 г × 5 шт)":                   "Cheese Sausages (130g×5)",
	"котлета говяжья прожаренная (100 г × 3 шт)":         "Fried Beef Patty (100g×3)",
	"котлета говяжья прожаренная (150 г × 2 шт)":         "Fried Beef Patty (150g×2)",
	"ветчина из курицы в батоне":                         "Chicken Ham (whole)",
	"ветчина из курицы в нарезке":                        "Chicken Ham (sliced)",
	"ветчина из индейки в батоне":                        "Turkey Ham (whole)",
	"ветчина из индейки в нарезке":                       "Turkey Ham (sliced)",
	"пепперони вар-коп из конины":                        "Pepperoni Boiled-Smoked (horse meat)",
	"пепперони вар-коп классика":                         "Pepperoni Classic (beef & chicken)",
	"пепперони вар-коп классика целый батон":             "Pepperoni Classic Whole Stick",
	"пепперони сырокопчёный в нарезке":                   "Pepperoni Dry-Cured (sliced)",
	"пепперони сырокопчёный целый батон":                 "Pepperoni Dry-Cured Whole Stick",
	"грудка куриная варено-копченая":                     "Smoked Chicken Breast",
	"филе куриное варное":                                "Boiled Chicken Fillet",
	"фарш говяжий":                                       "Beef Mince",
	"фарш из куриной кожи":                               "Chicken Skin Mince",
	"филе бедра куриного в кубике 1х1 см":                "Diced Chicken Thigh 1×1cm",
	"филе грудки куриной в кубике 1х1 см":                "Diced Chicken Breast 1×1cm",
	"говядина 1 сорт в кубике 1х1 см":                    "Diced Beef Grade 1 1×1cm",
	"сосиски «к завтраку»":                               "Breakfast Sausages",
	"сосиски «нежные»":                                   "Tender Sausages",
	"сосиски «казанские с молоком»":                      "Kazan Milk Sausages",
	"сосиски «с сыром»":                                  "Cheese Sausages",
	"сосиски «из говядины»":                              "Beef Sausages",
	"сосиски \"из говядины\"":                            "Beef Sausages",
	"сосиски в/с премиум":                                "Premium Sausages",
	"сосиски в/с сочные":                                 "Juicy Sausages",
	"сардельки «буинские\"":                              "Buinsk Frankfurters",
	"сардельки «буинские»":                               "Buinsk Frankfurters",
	"вареная «из говядины»":                              "Boiled Beef Sausage",
	"вареная ассорти":                                    "Boiled Assorted Sausage",
	"вареная нежная":                                     "Boiled Tender Sausage",
	"ветчина из индейки":                                 "Turkey Ham",
	"ветчина мраморная с говядиной":                      "Marbled Beef Ham",
	"ветчина из курицы":                                  "Chicken Ham",
	"ветчина филейная":                                   "Fillet Ham",
	"сервелат ханский":                                   "Khan Cervelat",
	"сервелат по-татарски в/к":                           "Tatar-Style Smoked Cervelat",
	"полукопченая из индейки":                            "Semi-Smoked Turkey Sausage",
	"полукопченая из говядины":                           "Semi-Smoked Beef Sausage",
	"колбаски с сыром":                                   "Cheese Sausage Links",
	"грудка куриная":                                     "Chicken Breast",
	"филе куриное":                                       "Chicken Fillet",
	"в/к рамазан":                                        "Ramazan Smoked Sausage",
	"в/к рамазан (половинка)":                            "Ramazan Smoked (half)",
	"в/к мраморная":                                      "Marbled Smoked Sausage",
	"в/к мраморная (половинка)":                          "Marbled Smoked (half)",
	"в/к филейный":                                       "Fillet Smoked Sausage",
	"в/к филейный (половинка)":                           "Fillet Smoked (half)",
	"в/к княжеская":                                      "Knyazheskaya Smoked Sausage",
	"в/к княжеская (половинка)":                          "Knyazheskaya Smoked (half)",
	"казылык «премиум» в подарочной упаковке":            "Kazylyk Premium (gift box)",
	"казылык «премиум» в нарезке в подарочной упаковке":  "Kazylyk Premium Sliced (gift box)",
	"губадия с кортом":                                   "Gubadiya with Kort",
	"чебурек жареный":                                    "Fried Cheburek",
	"перемяч жареный":                                    "Fried Peremyach",
	"самса с курицей":                                    "Chicken Samsa",
	"эчпочмак с говядиной и картофелем":                  "Echpochmak (beef & potato)",
	"самса с говядиной":                                  "Beef Samsa",
	"элеш с курицей и картофелем":                        "Elesh (chicken & potato)",
	"чак-чак в пластиковой упаковке":                     "Chak-Chak (plastic)",
	"чак-чак в крафтовой подарочной упаковке":            "Chak-Chak (gift box)",
	"сочник с творогом":                                  "Cottage Cheese Sochnik",
	"пирожок печеный с картофелем":                       "Baked Potato Pie",
	"сырник":                                             "Syrnik",
	"пирожок с яблоком":                                  "Apple Pie",
	"пирожок с зеленым луком и яйцом":                    "Spring Onion & Egg Pie",
	"маффин апельсиновый":                                "Orange Muffin",
	"сосиска в тесте":                                    "Sausage Roll",
	"пирожок с вишней":                                   "Cherry Pie",
	"круассан с шоколадом и орехами":                     "Chocolate & Nut Croissant",
	"маффин шоколадный":                                  "Chocolate Muffin",
}

// categoryEN covers both category labels and section names.
var categoryEN = map[string]string{
	"Сосиски гриль для хот-догов":    "Grill Sausages for Hot Dogs",
	"Котлеты для бургеров":           "Burger Patties",
	"Топпинги":                       "Toppings",
	"Мясные заготовки":               "Meat Preparations",
	"Сосиски, сардельки":             "Sausages & Frankfurters",
	"Вареные":                        "Boiled Sausages",
	"Ветчины":                        "Hams",
	"Копченые":                       "Smoked Meats",
	"Премиум Казылык":                "Premium Kazylyk",
	"Национальная татарская выпечка": "Traditional Tatar Pastries",
	"Классическая выпечка":           "Classic Pastries",
	"Заморозка":                      "Frozen Products",
	"Охлаждённая продукция":          "Refrigerated Products",
	"Выпечка":                        "Bakery",
}

var shelfLifeEN = map[string]string{
	"30 суток":  "30 days",
	"60 суток":  "60 days",
	"180 суток": "180 days",
	"360 суток": "360 days",
}

var meatTypeEN = map[string]string{
	"конина":   "horse meat",
	"индейка":  "turkey",
	"баранина": "lamb",
	"говядина": "beef",
	"курица":   "chicken",
}

// storagePhrases are replaced before the word-by-word pass.
var storagePhrases = strings.NewReplacer(
	"не выше", "not above",
	"при температуре", "at",
)

var storageWords = map[string]string{
	"при":   "at",
	"от":    "from",
	"до":    "to",
	"суток": "days",
	"мес.":  "months",
}

var spaceRun = regexp.MustCompile(`\s+`)

func nameKey(name string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(strings.ToLower(name)), " ")
}

// TranslateName returns the English product name, or name when unmapped.
func TranslateName(name string) string {
	if en, ok := nameEN[nameKey(name)]; ok {
		return en
	}
	return name
}

// TranslateCategory translates a category or section label.
func TranslateCategory(c string) string {
	if en, ok := categoryEN[c]; ok {
		return en
	}
	return c
}

// TranslateShelfLife uses the lookup table, then replaces the day unit.
func TranslateShelfLife(s string) string {
	if en, ok := shelfLifeEN[s]; ok {
		return en
	}
	return strings.Replace(s, "суток", "days", 1)
}

// TranslateStorage translates the known words of a storage condition;
// temperatures and unknown words pass through.
func TranslateStorage(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(storagePhrases.Replace(s))
	for i, w := range words {
		if en, ok := storageWords[strings.ToLower(w)]; ok {
			words[i] = en
		}
	}
	return strings.Join(words, " ")
}

// Localize returns products rendered in lang. Russian is the source
// language and is returned as is. Unmapped strings pass through unchanged;
// the input slice is never modified.
func Localize(products []Product, lang string) []Product {
	if NormalizeLang(lang) != LangEN {
		return products
	}

	out := make([]Product, len(products))
	for i, p := range products {
		p.NameRU = p.Name
		p.Name = TranslateName(p.Name)
		p.Category = TranslateCategory(p.Category)
		p.Section = TranslateCategory(p.Section)
		p.ShelfLife = TranslateShelfLife(p.ShelfLife)
		p.Storage = TranslateStorage(p.Storage)
		if en, ok := meatTypeEN[p.MeatType]; ok {
			p.MeatType = en
		}
		out[i] = p
	}
	return out
}
