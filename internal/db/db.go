package db

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var conn *gorm.DB

// InitMySQL initializes the MySQL connection
func InitMySQL(dsn string) error {
	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the request store relies on for the
	// transaction hash unique index.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	conn = db
	log.Println("✓ MySQL connected successfully")
	return nil
}

// Get returns the shared gorm DB handle
func Get() *gorm.DB {
	return conn
}

// Close closes the underlying database connection
func Close() error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
