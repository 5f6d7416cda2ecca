package database

import (
    "fmt"
    "log"

    "api/config"
    "api/models"
    "api/utils"

    "gorm.io/driver/postgres"
    "gorm.io/gorm"
)

var DB *gorm.DB

var DefaultPassword = "admin"

// InitDB initializes the database connection and migrates the models and populates the database with default values if needed
func InitDB() {
    dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=Europe/Moscow", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

    var err error
    DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
    if err != nil {
        log.Fatal("failed to connect database: ", err)
    }

    err = DB.AutoMigrate(
        &models.User{},
        &models.Profile{},
        &models.PasswordReset{},
        &models.Event{},
        &models.Team{},
        &models.Participant{},
        &models.Solution{},
        &models.Task{},
        &models.EventDiplomas{},
    )
    if err != nil {
        log.Fatal("failed to migrate database: ", err)
    }

    Populate()
}

// Populate populates the database with default values if needed
func Populate() {
    var countUser int64

    DB.Model(&models.User{}).Count(&countUser)
    if countUser == 0 {
        // Create default staff user with a default hashed password either from the .env file or the DefaultPassword constant
        password := DefaultPassword
        if config.DefaultPassword != "" {
            password = config.DefaultPassword
        }

        password, err := utils.HashPassword(password)
        if err != nil {
            panic(err)
        }

        user := models.User{
            Email:         "admin@admin.com",
            Surname:       "Admin",
            Name:          "Admin",
            Role:          models.RoleOther,
            IsStaff:       true,
            Password:      password,
            LastConnected: nil,
        }
        DB.Create(&user)
        DB.Create(&models.Profile{UserID: user.ID, School: config.SchoolName})
        log.Println("Default staff user created")
    }
}
