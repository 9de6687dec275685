package configlibsql

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Struct struct {
	// File is a local sqlite database, it is created if it does not exist.
	File string `json:"file"`
	// Url points to a remote libsql database (libsql://, http:// or https://),
	// it takes precedence over File.
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

// FromTarget interprets a --db style flag value, URLs are treated as remote
// libsql databases and everything else as a local file.
func FromTarget(target string) Struct {
	for _, scheme := range []string{"libsql://", "http://", "https://"} {
		if strings.HasPrefix(target, scheme) {
			return Struct{Url: target, AuthToken: os.Getenv("LIBSQL_AUTH_TOKEN")}
		}
	}
	return Struct{File: target}
}

func (config Struct) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		dsn := config.Url
		if config.AuthToken != "" {
			parsed, err := url.Parse(config.Url)
			if err != nil {
				return nil, err
			}
			query := parsed.Query()
			query.Set("authToken", config.AuthToken)
			parsed.RawQuery = query.Encode()
			dsn = parsed.String()
		}
		return sql.Open("libsql", dsn)
	}

	if config.File == "" {
		return nil, fmt.Errorf("a path was not specified")
	}
	if config.File != ":memory:" {
		err := os.MkdirAll(filepath.Dir(config.File), 0777)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// sqlite only handles one writer at a time
	db.SetMaxOpenConns(1)
	if config.File != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}
