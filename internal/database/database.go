package database

import (
	"context"
	"errors"
	. "fmt"
	c "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"time"
)

var ErrUnsupportedDatabase = errors.New("unsupported database type")

type DBCloseCallback struct {
	logger log.LoggerInterface
	db     *gorm.DB
}

func NewDBCloseCallback(logger log.LoggerInterface, db *gorm.DB) *DBCloseCallback {
	return &DBCloseCallback{logger: logger, db: db}
}

func (dc *DBCloseCallback) Invoke(_ context.Context) error {
	dc.logger.Info("Closing database connection")
	db, err := dc.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// ConnectDatabase 连接流量记录数据库并完成迁移
func ConnectDatabase(logger log.LoggerInterface, config *c.DatabaseConfig, debug bool) (global.Callable, *operation.DatabaseOperations, error) {
	connection := config.GetConnection(logger)
	if connection == nil {
		return nil, nil, Errorf("%w: %s", ErrUnsupportedDatabase, config.Type)
	}

	connectionConfig := gorm.Config{}
	connectionConfig.DefaultTransactionTimeout = 5 * time.Second
	connectionConfig.PrepareStmt = true

	if debug {
		connectionConfig.Logger = gormLogger.Default.LogMode(gormLogger.Error)
	} else {
		connectionConfig.Logger = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	db, err := gorm.Open(connection, &connectionConfig)
	if err != nil {
		return nil, nil, Errorf("error occured while connecting to database: %v", err)
	}

	if err = db.Migrator().AutoMigrate(&operation.TrafficRecord{}); err != nil {
		return nil, nil, Errorf("error occured while migrating database: %v", err)
	}

	dbPool, err := db.DB()
	if err != nil {
		return nil, nil, Errorf("error occured while creating database pool: %v", err)
	}

	maxOpenConnections := config.ServerMaxConnections * 4 / 5 // 不超过数据库最大连接的80%
	maxIdleConnections := maxOpenConnections / 5              // 空闲连接约为最大连接的20%
	if config.DBType == c.SQLite {
		// sqlite 只允许一个写连接
		maxOpenConnections = 1
		maxIdleConnections = 1
	}

	dbPool.SetMaxIdleConns(maxIdleConnections)
	dbPool.SetMaxOpenConns(maxOpenConnections)
	dbPool.SetConnMaxLifetime(config.ConnectIdleDuration)

	if err = dbPool.Ping(); err != nil {
		return nil, nil, Errorf("error occured while pinging database: %v", err)
	}
	logger.Info("Database initialized and connection established")

	trafficOperation := NewTrafficOperation(db, config.QueryDuration)
	return NewDBCloseCallback(logger, db), operation.NewDatabaseOperations(trafficOperation), nil
}
