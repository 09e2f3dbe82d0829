package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
)

// DB — глобальное подключение к базе данных.
var DB *sql.DB

// BalanceNotifyChannel — канал Postgres NOTIFY, в который триггер публикует
// каждое изменение worker_balances. На него подписывается портал исполнителя.
const BalanceNotifyChannel = "worker_balance_updates"

// InitDB инициализирует соединение с базой данных и выполняет миграции.
func InitDB(databaseURL string) error {
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL не установлена")
	}

	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	DB.SetMaxOpenConns(50)
	DB.SetMaxIdleConns(20)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("ошибка проверки соединения с базой данных: %w", err)
	}
	logger.Log.Info("connected to database")

	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            order_type TEXT NOT NULL,
            area_size FLOAT NOT NULL,
            offer_amount_usd FLOAT NOT NULL,
            client_name TEXT NOT NULL,
            phone TEXT NOT NULL,
            email TEXT,
            details TEXT,
            gps TEXT,
            photos TEXT[],
            status TEXT NOT NULL,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS worker_balances (
            id SERIAL PRIMARY KEY,
            telegram_id BIGINT UNIQUE NOT NULL,
            name TEXT,
            balance_egp FLOAT NOT NULL DEFAULT 0,
            is_verified BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP DEFAULT NOW(),
            updated_at TIMESTAMP DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS loyalty_counters (
            phone TEXT PRIMARY KEY,
            orders_count INTEGER NOT NULL DEFAULT 0,
            updated_at TIMESTAMP DEFAULT NOW()
        );
    `
	if _, err = DB.Exec(createTablesSQL); err != nil {
		return fmt.Errorf("ошибка создания таблиц: %w", err)
	}
	logger.Log.Info("tables created if not existed")

	if err = migrateDBSchema(); err != nil {
		return fmt.Errorf("ошибка выполнения миграции схемы: %w", err)
	}

	// Индексы создаются по одному, чтобы изолировать возможные ошибки.
	createIndexesSQL := `
        CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
        CREATE INDEX IF NOT EXISTS idx_orders_phone ON orders(phone);
        CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
        CREATE INDEX IF NOT EXISTS idx_worker_balances_telegram_id ON worker_balances(telegram_id);
    `
	for _, stmt := range strings.Split(strings.TrimSpace(createIndexesSQL), ";") {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}
		if _, errIdx := DB.Exec(trimmed); errIdx != nil {
			logger.Log.Warn("index creation failed", zap.String("stmt", trimmed), zap.Error(errIdx))
		}
	}

	if err = createBalanceNotifyTrigger(); err != nil {
		return fmt.Errorf("ошибка создания триггера уведомлений о балансе: %w", err)
	}

	logger.Log.Info("database initialized")
	return nil
}

// migrateDBSchema выполняет идемпотентные миграции схемы.
func migrateDBSchema() error {
	migrations := []struct {
		name string
		sql  string
	}{
		{
			// email появился в поздней ревизии формы
			name: "orders.email",
			sql:  `ALTER TABLE orders ADD COLUMN IF NOT EXISTS email TEXT;`,
		},
		{
			name: "orders.gps",
			sql:  `ALTER TABLE orders ADD COLUMN IF NOT EXISTS gps TEXT;`,
		},
		{
			name: "worker_balances.is_verified",
			sql:  `ALTER TABLE worker_balances ADD COLUMN IF NOT EXISTS is_verified BOOLEAN NOT NULL DEFAULT FALSE;`,
		},
	}

	for _, migration := range migrations {
		if _, err := DB.Exec(migration.sql); err != nil {
			if strings.Contains(err.Error(), "already exists") {
				logger.Log.Info("migration skipped, object exists", zap.String("migration", migration.name))
				continue
			}
			return fmt.Errorf("ошибка миграции схемы ('%s'): %w", migration.name, err)
		}
	}
	return nil
}

// createBalanceNotifyTrigger вешает на worker_balances триггер, публикующий
// снимок строки в канал BalanceNotifyChannel при каждом INSERT/UPDATE.
// Благодаря триггеру подписчики видят и изменения, сделанные в обход сервиса.
func createBalanceNotifyTrigger() error {
	triggerSQL := fmt.Sprintf(`
        CREATE OR REPLACE FUNCTION notify_worker_balance_change() RETURNS trigger AS $$
        BEGIN
            PERFORM pg_notify('%s', json_build_object(
                'id', NEW.id,
                'telegram_id', NEW.telegram_id,
                'name', COALESCE(NEW.name, ''),
                'balance_egp', NEW.balance_egp,
                'is_verified', NEW.is_verified
            )::text);
            RETURN NEW;
        END;
        $$ LANGUAGE plpgsql;

        DROP TRIGGER IF EXISTS worker_balance_notify ON worker_balances;
        CREATE TRIGGER worker_balance_notify
            AFTER INSERT OR UPDATE ON worker_balances
            FOR EACH ROW EXECUTE FUNCTION notify_worker_balance_change();
    `, BalanceNotifyChannel)

	_, err := DB.Exec(triggerSQL)
	return err
}

// CloseDB закрывает соединение с базой данных.
func CloseDB() {
	if DB != nil {
		DB.Close()
		logger.Log.Info("database connection closed")
	}
}
