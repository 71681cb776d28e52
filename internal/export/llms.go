package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kazandelikates/catalog/internal/core"
)

type categoryGroup struct {
	name     string
	products []core.Product
}

type sectionGroup struct {
	name       string
	count      int
	categories []*categoryGroup
}

// groupProducts groups by section then category, keeping first-seen order.
func groupProducts(products []core.Product) []*sectionGroup {
	var sections []*sectionGroup
	bySection := map[string]*sectionGroup{}
	byCategory := map[[2]string]*categoryGroup{}

	for _, p := range products {
		sec, ok := bySection[p.Section]
		if !ok {
			sec = &sectionGroup{name: p.Section}
			bySection[p.Section] = sec
			sections = append(sections, sec)
		}
		key := [2]string{p.Section, p.Category}
		cat, ok := byCategory[key]
		if !ok {
			cat = &categoryGroup{name: p.Category}
			byCategory[key] = cat
			sec.categories = append(sec.categories, cat)
		}
		cat.products = append(cat.products, p)
		sec.count++
	}
	return sections
}

// WriteLLMSFull writes the markdown catalog description published as
// llms-full.txt. Bakery categories get per-unit and per-box columns.
func WriteLLMSFull(w io.Writer, site Site, products []core.Product, now time.Time) error {
	var b strings.Builder
	today := now.UTC().Format(time.DateOnly)

	fmt.Fprintf(&b, `# Pepperoni.tatar API — полная документация

> Каталог халяль продукции от ООО «%[1]s» (Kazan Delicacies).
> Последняя синхронизация: %[2]s. Всего товаров: %[3]d.

## О компании

ООО «%[1]s» — производитель халяль мясных изделий и выпечки.

- Адрес: %[4]s
- Телефон: %[5]s
- Email: %[6]s
- Сайт компании: %[7]s
- Сайт пепперони: %[8]s
- API: %[9]s
- Сертификация: Halal

## Каталог продукции (%[3]d товаров)
`, CompanyName, today, len(products), FullAddress, CompanyPhone, CompanyEmail, CompanyURL, site.SiteURL, site.URL(""))

	for _, sec := range groupProducts(products) {
		fmt.Fprintf(&b, "\n### %s (%d товаров)\n", sec.name, sec.count)

		for _, cat := range sec.categories {
			fmt.Fprintf(&b, "\n#### %s\n\n", cat.name)

			if cat.products[0].IsBakery() {
				b.WriteString("| Название | SKU | Вес | Цена/шт (₽) | Цена/кор (₽) | Срок годности |\n")
				b.WriteString("|----------|-----|-----|-------------|-------------|---------------|\n")
				for _, p := range cat.products {
					fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
						p.Name, p.SKU, p.Weight, p.Offers.PricePerUnit, p.Offers.PricePerBox, p.ShelfLife)
				}
				continue
			}

			b.WriteString("| Название | SKU | Вес | Цена с НДС (₽) | Срок годности | Хранение |\n")
			b.WriteString("|----------|-----|-----|----------------|---------------|----------|\n")
			for _, p := range cat.products {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
					p.Name, p.SKU, p.Weight, p.Offers.Price, p.ShelfLife, p.Storage)
			}
		}
	}

	codes := make([]string, len(core.Currencies))
	for i, c := range core.Currencies {
		codes[i] = string(c)
	}

	fmt.Fprintf(&b, `
## Экспортные цены

Все цены доступны в %d валютах: %s.
Условия поставки: EXW Казань, Россия.
Данные автоматически синхронизируются с Google Sheets ежедневно.

## API

### GET /api/products (LIVE)

Возвращает актуальные данные, синхронизированные с Google Sheets.
Кешируется на 1 час. Аутентификация не требуется.

### GET /products.json (статический)

Статический каталог, обновляемый ежедневно.

## Интеграция

- OpenAPI: %[3]s
- Краткая версия: %[4]s
- Прайс-лист: %[5]s

## Контакты

По вопросам закупок и сотрудничества: %[6]s, %[7]s
`, len(codes), strings.Join(codes, ", "), site.URL("/openapi.yaml"), site.URL("/llms.txt"),
		PublishedSheet, CompanyEmail, CompanyPhone)

	_, err := io.WriteString(w, b.String())
	return err
}
