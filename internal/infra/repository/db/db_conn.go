package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnOptions postgres連線參數
// SSLMode留空時預設disable
type ConnOptions struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string
	SSLMode  string
}

func (o ConnOptions) dsn() string {
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		o.User, o.Password, o.Host, o.Port, o.DbName, sslMode)
}

// GetDbConn 建立postgres連線並設定連線池
func GetDbConn(opts ConnOptions) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(opts.dsn()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("開啟postgres連線失敗: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("取得底層連線池失敗: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return conn, nil
}
