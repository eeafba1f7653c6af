package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"intentserver/classification"
	"intentserver/database"
	"intentserver/dialogue"
	"intentserver/extraction"
	"intentserver/internal/config"
	"intentserver/normalization"
	"intentserver/server"
	"intentserver/server/services"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("конфигурация не загружена", "error", err)
		os.Exit(1)
	}

	settings := config.LoadSettingsOrDefault(cfg.SettingsPath)
	normalizer := normalization.NewNormalizer(settings.CorrectionDict, settings.LevenshteinThreshold)
	extractor := extraction.NewExtractor(settings.Categories)

	classifier, err := bootstrapClassifier(cfg, normalizer)
	if err != nil {
		slog.Error("классификатор не инициализирован", "error", err)
		os.Exit(1)
	}

	history := openHistory(cfg.HistoryDBPath)
	if history != nil {
		defer history.Close()
		go runHistoryCleanup(history)
	}

	mlService := services.NewMLService(normalizer, extractor, classifier, history)
	srv := server.NewServer(cfg, mlService)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("паника при запуске сервера", "panic", r)
				os.Exit(1)
			}
		}()
		if err := srv.Start(); err != nil {
			slog.Error("сервер завершился с ошибкой", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("сервис классификации намерений запущен",
		"port", cfg.Port,
		"model", cfg.ModelPath,
		"data_types", dialogue.DataTypes(),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("получен сигнал остановки")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("ошибка при остановке сервера", "error", err)
	}
	slog.Info("сервис остановлен")
}

// bootstrapClassifier загружает артефакт модели; при его отсутствии
// обучает модель из выборки и сохраняет артефакт для следующих запусков
func bootstrapClassifier(cfg *config.Config, normalizer *normalization.Normalizer) (*classification.Classifier, error) {
	classifier := classification.NewClassifier()

	if err := classifier.LoadArtifact(cfg.ModelPath); err == nil {
		slog.Info("артефакт модели загружен", "path", cfg.ModelPath)
		return classifier, nil
	} else {
		slog.Warn("артефакт модели не загружен, обучение из выборки", "path", cfg.ModelPath, "error", err)
	}

	samples, err := classification.LoadDataset(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}

	model, err := classification.Train(samples, normalizer.Normalize, classification.DefaultTrainerConfig())
	if err != nil {
		return nil, err
	}

	if err := classification.SaveArtifact(cfg.ModelPath, model); err != nil {
		slog.Warn("артефакт модели не сохранен", "path", cfg.ModelPath, "error", err)
	}

	if err := classifier.Use(model); err != nil {
		return nil, err
	}
	slog.Info("модель обучена", "samples", len(samples), "classes", len(model.Classes))
	return classifier, nil
}

// openHistory открывает базу истории запросов.
// История не критична для работы сервиса: при сбое возвращается nil
func openHistory(dbPath string) *database.HistoryDB {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Warn("каталог базы истории не создан", "dir", dir, "error", err)
			return nil
		}
	}

	history, err := database.NewHistoryDB(dbPath, database.DefaultDBConfig())
	if err != nil {
		slog.Warn("история запросов отключена", "error", err)
		return nil
	}
	return history
}

// runHistoryCleanup раз в сутки удаляет записи истории старше 90 дней
func runHistoryCleanup(history *database.HistoryDB) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		deleted, err := history.CleanupOlderThan(90 * 24 * time.Hour)
		if err != nil {
			slog.Error("очистка истории не выполнена", "error", err)
			continue
		}
		if deleted > 0 {
			slog.Info("история запросов очищена", "deleted", deleted)
		}
	}
}
