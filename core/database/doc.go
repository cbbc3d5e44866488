// Package database handles the optional direct connection to the CMS database.
//
// It provides a wrapper around GORM to configure a MySQL connection from the
// application's configuration. The connection is only used when the channel
// mode is "database", where records are read straight from the posts and
// postmeta tables instead of through the backend CLI.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
