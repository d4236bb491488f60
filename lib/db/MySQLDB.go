package db

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/etherpad-todolist/lib/db/migrations"
	mysql2 "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

type MysqlDB struct {
	sqlDocumentStore
	options MySQLOptions
}

type MySQLOptions struct {
	Username string
	Password string
	Port     int
	Host     string
	Database string
}

func NewMySQLDB(options MySQLOptions, logger *zap.SugaredLogger) (*MysqlDB, error) {
	mySQLConf := mysql2.NewConfig()
	mySQLConf.User = options.Username
	mySQLConf.Passwd = options.Password
	mySQLConf.Net = "tcp"
	mySQLConf.Addr = fmt.Sprintf("%s:%d", options.Host, options.Port)
	mySQLConf.DBName = options.Database
	mySQLConf.ParseTime = true

	sqlDb, err := sql.Open("mysql", mySQLConf.FormatDSN())
	if err != nil {
		return nil, err
	}

	sqlDb.SetMaxOpenConns(25)
	sqlDb.SetMaxIdleConns(5)

	migrationManager := migrations.NewMigrationManager(sqlDb, migrations.DialectMySQL, logger)
	if err := migrationManager.Run(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &MysqlDB{
		sqlDocumentStore: sqlDocumentStore{
			sqlDB:   sqlDb,
			builder: sq.StatementBuilder,
			upsert: `ON DUPLICATE KEY UPDATE
			content = VALUES(content),
			updated_at = CURRENT_TIMESTAMP`,
		},
		options: options,
	}, nil
}

var _ DataStore = (*MysqlDB)(nil)
