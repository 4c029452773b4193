package config

// DefaultDatabasePath is the default path for the reading diary database.
const DefaultDatabasePath = "./reading-diary.db"
