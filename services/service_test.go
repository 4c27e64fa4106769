package services

import (
	"fmt"
	"testing"

	"auto-control-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Car{},
		&models.Part{}, &models.Note{}, &models.PartInNote{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Email: name + "@test", Phone: "11 99999-0000"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}

func seedCar(t *testing.T, db *gorm.DB, customerId string) models.Car {
	t.Helper()
	car := models.Car{CustomerId: customerId, Brand: "Fiat", Model: "Uno", Plate: "ABC1D23", Year: 2012, Color: "prata"}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return car
}

func seedPart(t *testing.T, db *gorm.DB, name string, price float64) models.Part {
	t.Helper()
	part := models.Part{Name: name, Model: "universal", Price: price}
	if err := db.Create(&part).Error; err != nil {
		t.Fatalf("seed part: %v", err)
	}
	return part
}

func countNoteItems(t *testing.T, db *gorm.DB, noteId string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.PartInNote{}).Where("note_id = ?", noteId).Count(&n).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	return n
}
