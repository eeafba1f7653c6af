package extraction

// DefaultCategories возвращает встроенный лексикон категорий закупок.
// Порядок имеет значение: первый найденный в тексте термин побеждает
func DefaultCategories() []string {
	return []string{
		"канцтовары",
		"канцелярские товары",
		"мебель",
		"оборудование",
		"компьютеры",
		"оргтехника",
		"программное обеспечение",
		"бумага",
		"ремонт",
		"строительство",
		"уборка",
		"охрана",
		"транспорт",
		"медикаменты",
		"продукты питания",
		"хозтовары",
		"услуги связи",
		"обучение",
	}
}
