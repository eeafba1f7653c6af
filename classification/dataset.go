package classification

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// LoadDataset загружает обучающую выборку из файла.
// Поддерживаются форматы: JSON (список объектов {text, intent} или пар
// [text, intent]), CSV (utf-8 или cp1251) и XLSX
func LoadDataset(path string) ([]Sample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSONDataset(path)
	case ".csv":
		return loadCSVDataset(path)
	case ".xlsx":
		return loadExcelDataset(path)
	default:
		return nil, fmt.Errorf("неподдерживаемый формат выборки: %s", filepath.Ext(path))
	}
}

func loadJSONDataset(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать выборку: %w", err)
	}

	// Формат различается по результату разбора: список пар не
	// раскладывается в []Sample, а список объектов - в [][]string
	var samples []Sample
	if err := json.Unmarshal(data, &samples); err == nil {
		return validateSamples(samples)
	}

	// Альтернативный формат: список пар ["текст", "намерение"]
	var pairs [][]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("не удалось разобрать выборку: %w", err)
	}
	samples = make([]Sample, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("строка %d выборки содержит %d элементов вместо 2", i, len(pair))
		}
		samples = append(samples, Sample{Text: pair[0], Intent: pair[1]})
	}
	return validateSamples(samples)
}

func validateSamples(samples []Sample) ([]Sample, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("выборка не содержит ни одного примера")
	}
	for i, s := range samples {
		if strings.TrimSpace(s.Text) == "" || strings.TrimSpace(s.Intent) == "" {
			return nil, fmt.Errorf("пример %d выборки не заполнен: text=%q, intent=%q", i, s.Text, s.Intent)
		}
	}
	return samples, nil
}

func loadCSVDataset(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать выборку: %w", err)
	}

	// Выгрузки из офисных программ часто приходят в cp1251
	if !utf8.Valid(data) {
		decoded, decodeErr := charmap.Windows1251.NewDecoder().Bytes(data)
		if decodeErr != nil {
			return nil, fmt.Errorf("не удалось декодировать cp1251: %w", decodeErr)
		}
		data = decoded
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать CSV: %w", err)
	}

	return samplesFromRows(rows)
}

func loadExcelDataset(path string) ([]Sample, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл Excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("файл Excel не содержит листов")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать лист %q: %w", sheets[0], err)
	}

	return samplesFromRows(rows)
}

func samplesFromRows(rows [][]string) ([]Sample, error) {
	samples := make([]Sample, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		text := strings.TrimSpace(row[0])
		intent := strings.TrimSpace(row[1])
		if text == "" || intent == "" {
			continue
		}
		// Пропускаем строку заголовка
		if i == 0 && strings.EqualFold(text, "text") && strings.EqualFold(intent, "intent") {
			continue
		}
		samples = append(samples, Sample{Text: text, Intent: intent})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("выборка не содержит ни одного примера")
	}
	return samples, nil
}
