package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DBConfig настройки пула соединений
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultDBConfig возвращает настройки пула по умолчанию
func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// QueryRecord запись истории обработанного запроса
type QueryRecord struct {
	ID         string
	Text       string
	Intent     string
	Confidence float64
	Duration   time.Duration
	CreatedAt  time.Time
}

// HistoryDB хранилище истории запросов поверх sqlite.
// Ядро только пишет в историю: записи никогда не читаются
// для принятия решений при обработке запросов
type HistoryDB struct {
	db *sql.DB
}

// NewHistoryDB открывает базу истории и создает схему при необходимости
func NewHistoryDB(dbPath string, config DBConfig) (*HistoryDB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу истории: %w", err)
	}

	// Для базы в памяти пул должен состоять из одного соединения,
	// иначе каждое соединение получит свою пустую базу
	if strings.Contains(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(config.MaxOpenConns)
		db.SetMaxIdleConns(config.MaxIdleConns)
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("база истории недоступна: %w", err)
	}

	store := &HistoryDB{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (h *HistoryDB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS query_history (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		intent TEXT NOT NULL,
		confidence REAL NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_query_history_intent ON query_history(intent);
	CREATE INDEX IF NOT EXISTS idx_query_history_created_at ON query_history(created_at);
	`
	if _, err := h.db.Exec(query); err != nil {
		return fmt.Errorf("не удалось создать таблицу истории: %w", err)
	}
	return nil
}

// SaveQuery сохраняет запись истории. Идентификатор и время создания
// заполняются автоматически, если не заданы
func (h *HistoryDB) SaveQuery(record QueryRecord) error {
	if h == nil || h.db == nil {
		return fmt.Errorf("база истории не инициализирована")
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := h.db.Exec(
		`INSERT INTO query_history (id, text, intent, confidence, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Text,
		record.Intent,
		record.Confidence,
		record.Duration.Milliseconds(),
		record.CreatedAt.Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("не удалось сохранить запись истории: %w", err)
	}
	return nil
}

// CountQueries возвращает число записей истории (для диагностики и тестов)
func (h *HistoryDB) CountQueries() (int, error) {
	if h == nil || h.db == nil {
		return 0, fmt.Errorf("база истории не инициализирована")
	}

	var count int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM query_history`).Scan(&count); err != nil {
		return 0, fmt.Errorf("не удалось посчитать записи истории: %w", err)
	}
	return count, nil
}

// CleanupOlderThan удаляет записи старше указанного срока,
// возвращает число удаленных строк
func (h *HistoryDB) CleanupOlderThan(age time.Duration) (int64, error) {
	if h == nil || h.db == nil {
		return 0, fmt.Errorf("база истории не инициализирована")
	}

	cutoff := time.Now().UTC().Add(-age).Format("2006-01-02 15:04:05")
	result, err := h.db.Exec(`DELETE FROM query_history WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("не удалось очистить историю: %w", err)
	}
	return result.RowsAffected()
}

// Close закрывает соединение с базой истории
func (h *HistoryDB) Close() error {
	if h == nil || h.db == nil {
		return nil
	}
	return h.db.Close()
}
