package store

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS tasks (
  id INT NOT NULL AUTO_INCREMENT,
  title VARCHAR(255) NOT NULL,
  description TEXT,
  created_date DATE NOT NULL,
  is_completed BOOLEAN NOT NULL DEFAULT FALSE,
  PRIMARY KEY (id)
)`

// DefaultMySQLParams makes UPDATE report matched rather than changed rows,
// so setting a flag to its current value still counts as success.
const DefaultMySQLParams = "parseTime=true&clientFoundRows=true"

// MySQLConfig holds connection settings.
type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Params   string
}

// DSN builds the go-sql-driver/mysql data source name.
func (c MySQLConfig) DSN() string {
	params := c.Params
	if params == "" {
		params = DefaultMySQLParams
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", c.User, c.Password, c.Host, c.Port, c.Database, params)
}

// ConnectMySQL opens the database and creates the tasks table if needed.
func ConnectMySQL(ctx context.Context, cfg MySQLConfig) (*SQL, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQL{db: db}, nil
}
