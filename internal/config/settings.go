package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings статическая конфигурация текстового конвейера:
// словарь исправлений, лексикон категорий и порог нечеткого поиска.
// Загружается один раз при старте и далее не меняется
type Settings struct {
	CorrectionDict       map[string]string `json:"correction_dict"`
	Categories           []string          `json:"categories"`
	LevenshteinThreshold float64           `json:"levenshtein_threshold"`
}

// DefaultSettings возвращает встроенные настройки конвейера.
// Используются, когда файл настроек отсутствует
func DefaultSettings() *Settings {
	return &Settings{
		CorrectionDict: map[string]string{
			"создй":     "создай",
			"саздай":    "создай",
			"создать":   "создай",
			"сделай":    "создай",
			"найд":      "найди",
			"найти":     "найди",
			"поиск":     "найди",
			"покажи":    "найди",
			"контракт":  "контракт",
			"контрак":   "контракт",
			"кантракт":  "контракт",
			"договор":   "контракт",
			"договора":  "контракт",
			"катировка": "котировка",
			"китировка": "котировка",
			"сессия":    "сессия",
			"сесия":     "сессия",
			"кампания":  "компания",
			"компани":   "компания",
			"канцтовар": "канцтовары",
			"помощь":    "помощь",
			"помош":     "помощь",
			"справка":   "помощь",
		},
		LevenshteinThreshold: 0.6,
	}
}

// LoadSettings читает настройки из JSON-файла.
// Отсутствующие поля дополняются встроенными значениями
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл настроек: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("не удалось разобрать файл настроек: %w", err)
	}

	defaults := DefaultSettings()
	if len(settings.CorrectionDict) == 0 {
		settings.CorrectionDict = defaults.CorrectionDict
	}
	if settings.LevenshteinThreshold <= 0 {
		settings.LevenshteinThreshold = defaults.LevenshteinThreshold
	}
	return &settings, nil
}

// LoadSettingsOrDefault читает настройки, при отсутствии файла
// возвращает встроенные значения
func LoadSettingsOrDefault(path string) *Settings {
	settings, err := LoadSettings(path)
	if err != nil {
		return DefaultSettings()
	}
	return settings
}
