package database

const (
	// DriverMongo stores listings as documents in MongoDB.
	DriverMongo = "mongo"
	// DriverMySQL stores listings in a MySQL table through GORM.
	DriverMySQL = "mysql"
	// DriverSQLite stores listings in a SQLite file through GORM.
	DriverSQLite = "sqlite"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (mongo, mysql, sqlite).
	Driver string `mapstructure:"driver" default:"mongo" validate:"oneof=mongo mysql sqlite"`
	// URI is the MongoDB connection string.
	URI string `mapstructure:"uri" default:"mongodb://localhost:27017/?replicaSet=rs0"`
	// Host is the database host (mysql).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql).
	Password string `mapstructure:"password" default:""`
	// Name is the database name. For sqlite it is the file path.
	Name string `mapstructure:"name" default:"estate" validate:"required"`
	// Collection is the MongoDB collection or SQL table holding listings.
	Collection string `mapstructure:"collection" default:"listings"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// IsDocumentStore reports whether the configured driver is MongoDB.
func (c Config) IsDocumentStore() bool {
	return c.Driver == "" || c.Driver == DriverMongo
}

func (c Config) timeout() int {
	if c.TimeoutSeconds <= 0 {
		return 10
	}
	return c.TimeoutSeconds
}
