package classification

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveArtifact сохраняет модель в JSON-файл.
// Запись идет во временный файл с последующим переименованием,
// чтобы при сбое не остался частично записанный артефакт
func SaveArtifact(path string, model *Model) error {
	if err := model.Validate(); err != nil {
		return fmt.Errorf("модель не прошла проверку: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("не удалось создать каталог артефакта: %w", err)
		}
	}

	data, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать модель: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("не удалось записать артефакт: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось переименовать артефакт: %w", err)
	}
	return nil
}

// LoadArtifact читает и проверяет артефакт модели
func LoadArtifact(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать артефакт: %w", err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("не удалось разобрать артефакт: %w", err)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("артефакт поврежден: %w", err)
	}
	return &model, nil
}
