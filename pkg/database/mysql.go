package database

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"support-desk-go/pkg/log"
)

var DB *gorm.DB

// InitMySQL opens the MySQL connection used by the account, billing, FAQ and
// technical issue repositories.
func InitMySQL(dsn string) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("MySQL database connected successfully")
}
