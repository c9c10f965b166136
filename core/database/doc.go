// Package database opens catalog databases and inspects their schema.
//
// Connect wraps GORM and supports two drivers: sqlite, the default target for local builds,
// and mysql for shared catalogs. The inspector helpers read live column definitions and count
// unreferenced rows; the integrity feature builds its checks on top of them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "games")
package database
