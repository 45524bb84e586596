// Package config loads runtime configuration for the bookshelf CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file and the process environment (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-d string   path to the local session database
//	-t int      request timeout (seconds)
//
// Environment variables
//
//	BOOKSHELF_SERVER_URL, BOOKSHELF_DB_PATH, BOOKSHELF_TIMEOUT
//
// # JSON schema
//
//	{
//	  "server_url": "https://bookshelf.example.com",
//	  "db_path": "session.db",
//	  "request_timeout_seconds": 5
//	}
package config
