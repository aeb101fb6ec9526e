package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteConfig contém as configurações do banco de arquivo do changelog
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// DSN retorna a string de conexão para o driver modernc
func (c SQLiteConfig) DSN() string {
	timeout := c.BusyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", c.Path, timeout.Milliseconds())
}

// OpenSQLite abre (ou cria) o banco SQLite e verifica a conexão
func OpenSQLite(ctx context.Context, cfg SQLiteConfig) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("caminho do banco não informado")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório do banco: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco: %w", err)
	}
	// SQLite aceita um único escritor por vez
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao verificar conexão com o banco de dados: %w", err)
	}
	return db, nil
}
