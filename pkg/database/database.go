package database

import (
	"fmt"
	"log"

	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.StudySession{},
		&model.Appointment{},
		&model.AvailabilityRule{},
		&model.Blockage{},
		&model.ProfessorSettings{},
		&model.AppointmentReport{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// A fresh install gets a default tenant so registration works out of
	// the box.
	var count int64
	db.Model(&model.Company{}).Count(&count)
	if count == 0 {
		db.Create(&model.Company{
			Name:     "Default",
			Slug:     "default",
			Timezone: "UTC",
			Active:   true,
		})
	}

	return db, nil
}
