package db

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS necrologi (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		birth_date TEXT,
		death_date TEXT,
		age INTEGER,
		city TEXT,
		description TEXT,
		funeral_date TEXT,
		funeral_location TEXT,
		marital_status TEXT,
		spouse_name TEXT,
		photo_url TEXT,
		photo_file_name TEXT,
		photo_file_size INTEGER,
		photo_file_type TEXT,
		manifesto_url TEXT,
		manifesto_file_name TEXT,
		manifesto_file_size INTEGER,
		manifesto_file_type TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS condoglianze (
		id TEXT PRIMARY KEY,
		necrologio_id TEXT NOT NULL,
		nome TEXT NOT NULL,
		email TEXT,
		messaggio TEXT NOT NULL,
		data_invio TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_condoglianze_necrologio ON condoglianze (necrologio_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS necrologi (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		birth_date DATE,
		death_date DATE,
		age INTEGER,
		city VARCHAR(255),
		description TEXT,
		funeral_date TIMESTAMP,
		funeral_location VARCHAR(500),
		marital_status VARCHAR(50),
		spouse_name VARCHAR(255),
		photo_url TEXT,
		photo_file_name VARCHAR(255),
		photo_file_size BIGINT,
		photo_file_type VARCHAR(100),
		manifesto_url TEXT,
		manifesto_file_name VARCHAR(255),
		manifesto_file_size BIGINT,
		manifesto_file_type VARCHAR(100),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS condoglianze (
		id VARCHAR(36) PRIMARY KEY,
		necrologio_id VARCHAR(100) NOT NULL,
		nome VARCHAR(255) NOT NULL,
		email VARCHAR(255),
		messaggio TEXT NOT NULL,
		data_invio TIMESTAMPTZ NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'active'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_condoglianze_necrologio ON condoglianze (necrologio_id)`,
}

var sqlserverSchema = []string{
	`IF OBJECT_ID(N'dbo.necrologi', N'U') IS NULL
	CREATE TABLE dbo.necrologi (
		id INT IDENTITY(1,1) PRIMARY KEY,
		name NVARCHAR(255) NOT NULL,
		birth_date DATE NULL,
		death_date DATE NULL,
		age INT NULL,
		city NVARCHAR(255) NULL,
		description NVARCHAR(MAX) NULL,
		funeral_date DATETIME2 NULL,
		funeral_location NVARCHAR(500) NULL,
		marital_status NVARCHAR(50) NULL,
		spouse_name NVARCHAR(255) NULL,
		photo_url NVARCHAR(MAX) NULL,
		photo_file_name NVARCHAR(255) NULL,
		photo_file_size BIGINT NULL,
		photo_file_type NVARCHAR(100) NULL,
		manifesto_url NVARCHAR(MAX) NULL,
		manifesto_file_name NVARCHAR(255) NULL,
		manifesto_file_size BIGINT NULL,
		manifesto_file_type NVARCHAR(100) NULL,
		status NVARCHAR(20) NOT NULL DEFAULT 'active',
		created_at DATETIME2 NOT NULL DEFAULT SYSUTCDATETIME()
	)`,
	`IF OBJECT_ID(N'dbo.condoglianze', N'U') IS NULL
	CREATE TABLE dbo.condoglianze (
		id NVARCHAR(36) PRIMARY KEY,
		necrologio_id NVARCHAR(100) NOT NULL,
		nome NVARCHAR(255) NOT NULL,
		email NVARCHAR(255) NULL,
		messaggio NVARCHAR(MAX) NOT NULL,
		data_invio NVARCHAR(40) NOT NULL,
		status NVARCHAR(20) NOT NULL DEFAULT 'active',
		INDEX idx_condoglianze_necrologio (necrologio_id)
	)`,
}

func schemaFor(driver string) []string {
	switch driver {
	case DriverPostgres:
		return postgresSchema
	case DriverSQLServer:
		return sqlserverSchema
	default:
		return sqliteSchema
	}
}
