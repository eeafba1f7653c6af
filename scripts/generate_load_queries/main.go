package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/brianvoe/gofakeit/v6"
)

// Генератор запросов для нагрузочного тестирования сервиса.
// Собирает реалистичные формулировки из шаблонов с подставленными
// случайными суммами, ИНН и названиями компаний.

// LoadQuery один запрос нагрузочного набора
type LoadQuery struct {
	Text     string `json:"text"`
	Detailed bool   `json:"detailed"`
}

var orgForms = []string{"ООО", "АО", "ЗАО", "ПАО", "ИП"}

var categories = []string{
	"канцтовары", "мебель", "оборудование", "компьютеры",
	"бумага", "ремонт", "уборка", "транспорт",
}

func main() {
	count := flag.Int("count", 1000, "число запросов в наборе")
	outPath := flag.String("out", "testdata/load_queries.json", "путь к выходному файлу")
	seed := flag.Int64("seed", 0, "зерно генератора (0 - детерминированный набор)")
	flag.Parse()

	gofakeit.Seed(*seed)

	queries := make([]LoadQuery, 0, *count)
	for i := 0; i < *count; i++ {
		queries = append(queries, LoadQuery{
			Text:     randomQuery(),
			Detailed: gofakeit.Bool(),
		})
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("не удалось создать каталог: %v", err)
	}

	data, err := json.MarshalIndent(queries, "", "  ")
	if err != nil {
		log.Fatalf("не удалось сериализовать набор: %v", err)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.Fatalf("не удалось записать набор: %v", err)
	}

	fmt.Printf("Сгенерировано %d запросов: %s\n", len(queries), *outPath)
}

func randomQuery() string {
	company := fmt.Sprintf("%s %s",
		orgForms[gofakeit.Number(0, len(orgForms)-1)],
		gofakeit.LastName(),
	)
	category := categories[gofakeit.Number(0, len(categories)-1)]
	amount := gofakeit.Number(10, 900)
	inn := gofakeit.Numerify("##########")

	templates := []string{
		fmt.Sprintf("создай контракт на %s %d тысяч рублей", category, amount),
		fmt.Sprintf("создай кс на %s на сумму %d000", category, amount),
		fmt.Sprintf("найди контракты по 44-ФЗ на %s", category),
		fmt.Sprintf("найди компанию %s", company),
		fmt.Sprintf("создай профиль компании %s ИНН %s", company, inn),
		fmt.Sprintf("покажи сессии на %s", category),
		"что ты умеешь",
	}
	return templates[gofakeit.Number(0, len(templates)-1)]
}
