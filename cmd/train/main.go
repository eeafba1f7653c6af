package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"intentserver/classification"
	"intentserver/internal/config"
	"intentserver/normalization"
)

// Утилита офлайн-обучения модели классификации намерений.
// Принимает выборку в JSON, CSV (utf-8 или cp1251) или XLSX
// и сохраняет артефакт, который сервер загружает при старте.
func main() {
	datasetPath := flag.String("dataset", "configs/dataset.json", "путь к обучающей выборке (json/csv/xlsx)")
	settingsPath := flag.String("settings", "configs/settings.json", "путь к настройкам конвейера")
	outPath := flag.String("out", "models/intent_classifier.json", "путь для сохранения артефакта")
	maxFeatures := flag.Int("max-features", 2000, "максимум термов в словаре")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	samples, err := classification.LoadDataset(*datasetPath)
	if err != nil {
		slog.Error("выборка не загружена", "path", *datasetPath, "error", err)
		os.Exit(1)
	}

	settings := config.LoadSettingsOrDefault(*settingsPath)
	normalizer := normalization.NewNormalizer(settings.CorrectionDict, settings.LevenshteinThreshold)

	trainerCfg := classification.DefaultTrainerConfig()
	trainerCfg.MaxFeatures = *maxFeatures

	model, err := classification.Train(samples, normalizer.Normalize, trainerCfg)
	if err != nil {
		slog.Error("обучение не выполнено", "error", err)
		os.Exit(1)
	}

	if err := classification.SaveArtifact(*outPath, model); err != nil {
		slog.Error("артефакт не сохранен", "path", *outPath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Артефакт сохранен: %s\n", *outPath)
	fmt.Printf("Примеров: %d, классов: %d, термов в словаре: %d\n",
		len(samples), len(model.Classes), len(model.Vectorizer.Vocabulary))

	intents := make([]string, 0, len(model.SampleCounts))
	for intent := range model.SampleCounts {
		intents = append(intents, intent)
	}
	sort.Strings(intents)
	for _, intent := range intents {
		fmt.Printf("  %-26s %d\n", intent, model.SampleCounts[intent])
	}
}
