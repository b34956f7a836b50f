package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jecakings/garment-api/models"
)

// StoreKind identifies which storage strategy the gateway was built with.
type StoreKind string

const (
	// StorePrimary is the MySQL store backing normal operation.
	StorePrimary StoreKind = "mysql"
	// StoreFallback is the embedded in-memory store used for demo and
	// offline operation when MySQL is unreachable or unconfigured.
	StoreFallback StoreKind = "sqlite-memory"
)

var (
	db        *gorm.DB
	storeKind StoreKind
)

// ConnectDatabase picks the storage strategy once at startup: MySQL when a
// host is configured and reachable, otherwise the embedded in-memory store.
// The decision is fixed for the lifetime of the process and reported through
// GetStoreKind; nothing downstream inspects SQL text or flips storage
// mid-flight.
func ConnectDatabase(cfg *Config, log *zap.Logger) error {
	if cfg.DBHost != "" {
		gdb, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{})
		if err == nil {
			db = gdb
			storeKind = StorePrimary
			log.Info("database connection established",
				zap.String("store", string(StorePrimary)),
				zap.String("host", cfg.DBHost),
				zap.String("database", cfg.DBName))
			return migrate()
		}
		if cfg.IsProduction() {
			return fmt.Errorf("connect to mysql: %w", err)
		}
		log.Warn("mysql unreachable, degrading to embedded store", zap.Error(err))
	} else {
		log.Info("DB_HOST not set, using embedded in-memory store for demo purposes")
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open embedded store: %w", err)
	}
	db = gdb
	storeKind = StoreFallback

	if err := migrate(); err != nil {
		return err
	}
	if err := seedDemoData(gdb); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	log.Info("embedded store ready", zap.String("store", string(StoreFallback)))
	return nil
}

func migrate() error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderHistory{},
		&models.Payment{},
		&models.Appointment{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// seedDemoData gives the embedded store the same starter rows the demo
// environment has always shipped with: one superadmin, one customer, one
// customer-service staff member and a single pending order.
func seedDemoData(gdb *gorm.DB) error {
	staffType := models.StaffTypeCustomerService
	users := []models.User{
		{Auth0ID: "demo|admin", Name: "Admin User", Email: "admin@jecakings.com", Role: models.RoleSuperadmin},
		{Auth0ID: "demo|customer", Name: "John Customer", Email: "customer@example.com", Role: models.RoleCustomer},
		{Auth0ID: "demo|staff", Name: "Staff Member", Email: "staff@jecakings.com", Role: models.RoleStaff, StaffType: &staffType},
	}
	if err := gdb.Create(&users).Error; err != nil {
		return err
	}

	description := "Custom traditional attire for wedding ceremony"
	measurements := `{"chest":"42","waist":"36","shoulder":"18","sleeveLength":"24"}`
	order := models.Order{
		CustomerID:   users[1].ID,
		OrderType:    models.OrderTypeDescription,
		Status:       models.StatusPending,
		Priority:     models.PriorityHigh,
		Description:  &description,
		Measurements: &measurements,
	}
	return gdb.Create(&order).Error
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// SetDB sets the database instance (primarily for testing)
func SetDB(gdb *gorm.DB) {
	db = gdb
}

// GetStoreKind reports which storage strategy was selected at startup.
func GetStoreKind() StoreKind {
	return storeKind
}

// SetStoreKind sets the reported store kind (primarily for testing)
func SetStoreKind(kind StoreKind) {
	storeKind = kind
}
