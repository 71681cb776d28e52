package layouts_test

import (
	"errors"
	"testing"

	"github.com/kazandelikates/catalog/internal/core"
	_ "github.com/kazandelikates/catalog/internal/core/layouts"
)

const frozenCSV = `Наименование,Вес,Цена с НДС,Цена без НДС,Срок,Хранение,ТН ВЭД,USD,KZT,UZS,KGS,BYN,AZN
Топпинги,,,,,,,,,,,,
"Пепперони вар-коп классика",1,"1 250,50","1042,08",180 суток,-18°C,1601009100,15.5,,,,,
Пепперони сырокопчёный в нарезке,0.5,990,825,180 суток,-18°C,1601009100,,,,,,
,,,,,,,,,,,,
Котлеты для бургеров,,,,,,,,,,,,
"Котлета говяжья прожаренная (100 г × 3 шт)",0.3,450,375,360 суток,-18°C,1602,,,,,,
ООО «Казанские Деликатесы»,,,,,,,,,,,,
`

const chilledCSV = `Номенклатура,Вес,Цена с НДС,Цена без НДС
Ветчина из индейки,1,620,516.67
Примечание,см. прайс,0,0
`

const bakeryCSV = `Наименование,Вес,Кол-во,Цена за шт,Цена за кор,Без НДС,Срок,Хранение,ТН ВЭД,USD
Национальная татарская выпечка,,,,,,,,,
Самса с курицей,120,20,85,1700,"1416,67",60 суток,-18°C,1905,1.1
Эчпочмак с говядиной и картофелем,150,20,95,1900,1583.33,60 суток,-18°C,1905,
`

func TestLayoutsRegistered(t *testing.T) {
	for _, key := range []string{core.LayoutStandard, core.LayoutBakery} {
		if _, ok := core.LayoutByKey(key); !ok {
			t.Errorf("layout %q not registered", key)
		}
	}
	if got := core.LayoutCount(); got != 2 {
		t.Errorf("LayoutCount() = %d, want 2", got)
	}
}

func TestAssemble_DefaultSheets(t *testing.T) {
	products, err := core.Assemble([]string{frozenCSV, chilledCSV, bakeryCSV}, core.DefaultSheets)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := []struct {
		sku, name, section, category string
	}{
		{"KD-001", "Пепперони вар-коп классика", "Заморозка", "Топпинги"},
		{"KD-002", "Пепперони сырокопчёный в нарезке", "Заморозка", "Топпинги"},
		{"KD-003", "Котлета говяжья прожаренная (100 г × 3 шт)", "Заморозка", "Котлеты для бургеров"},
		{"KD-004", "Ветчина из индейки", "Охлаждённая продукция", "Охлаждённая продукция"},
		{"KD-005", "Самса с курицей", "Выпечка", "Национальная татарская выпечка"},
		{"KD-006", "Эчпочмак с говядиной и картофелем", "Выпечка", "Национальная татарская выпечка"},
	}

	if len(products) != len(want) {
		t.Fatalf("got %d products, want %d", len(products), len(want))
	}
	for i, w := range want {
		p := products[i]
		if p.SKU != w.sku || p.Name != w.name || p.Section != w.section || p.Category != w.category {
			t.Errorf("product[%d] = {%s %q %q %q}, want %+v", i, p.SKU, p.Name, p.Section, p.Category, w)
		}
	}

	if got := products[0].Offers.Price; got != "1250.50" {
		t.Errorf("KD-001 price = %q, want 1250.50", got)
	}
	if got := products[4].Weight; got != "120 г" {
		t.Errorf("KD-005 weight = %q, want %q", got, "120 г")
	}
	if !products[4].IsBakery() || products[3].IsBakery() {
		t.Error("bakery detection mismatch")
	}
}

func TestAssemble_SequenceIsGlobalAndMonotonic(t *testing.T) {
	products, err := core.Assemble([]string{frozenCSV, chilledCSV, bakeryCSV}, core.DefaultSheets)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	for i := 1; i < len(products); i++ {
		if products[i].SKU <= products[i-1].SKU {
			t.Errorf("SKU %s after %s is not increasing", products[i].SKU, products[i-1].SKU)
		}
	}
}

func TestAssemble_OrderDeterminesNumbering(t *testing.T) {
	sheets := []core.Sheet{core.DefaultSheets[2], core.DefaultSheets[0]}
	products, err := core.Assemble([]string{bakeryCSV, frozenCSV}, sheets)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if products[0].SKU != "KD-001" || products[0].Name != "Самса с курицей" {
		t.Errorf("first product = %s %q, want KD-001 Самса с курицей", products[0].SKU, products[0].Name)
	}
}

func TestAssemble_CategoryResetsPerSheet(t *testing.T) {
	sheets := []core.Sheet{
		{GID: "a", Section: "Первый", Layout: core.LayoutStandard},
		{GID: "b", Section: "Второй", Layout: core.LayoutStandard},
	}
	texts := []string{
		"Ветчины,,,\nВетчина,1,100,90\n",
		"Ветчина,1,100,90\n",
	}
	products, err := core.Assemble(texts, sheets)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if products[1].Category != "Второй" {
		t.Errorf("second sheet category = %q, want section fallback", products[1].Category)
	}
}

func TestAssemble_Errors(t *testing.T) {
	if _, err := core.Assemble([]string{"a"}, core.DefaultSheets); err == nil {
		t.Error("Assemble with mismatched lengths succeeded")
	}

	sheets := []core.Sheet{{GID: "x", Section: "X", Layout: "nope"}}
	if _, err := core.Assemble([]string{""}, sheets); !errors.Is(err, core.ErrUnknownLayout) {
		t.Errorf("Assemble() error = %v, want ErrUnknownLayout", err)
	}
}

func TestAssembleWithStats(t *testing.T) {
	_, stats, err := core.AssembleWithStats([]string{frozenCSV, chilledCSV, bakeryCSV}, core.DefaultSheets)
	if err != nil {
		t.Fatalf("AssembleWithStats: %v", err)
	}
	frozen := stats[0]
	if frozen.Products != 3 || frozen.Categories != 2 || frozen.Rows != 8 {
		t.Errorf("frozen stats = %+v, want 3 products, 2 categories, 8 rows", frozen)
	}
	if chilled := stats[1]; chilled.Products != 1 || chilled.Noise != 2 {
		t.Errorf("chilled stats = %+v, want 1 product, 2 noise", chilled)
	}
}
