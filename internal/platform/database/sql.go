package database

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

// Dialect builds Postgres statements. Build them with Prepared(true) so
// values travel as $n arguments.
var Dialect = goqu.Dialect("postgres")
