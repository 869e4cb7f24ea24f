package dialect

import (
	"context"
	"database/sql"
	"strings"
)

// Prober runs a single-row query. *sql.DB, *sql.Conn and *sql.Tx satisfy it.
type Prober interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type matcher struct {
	profile  Profile
	keywords []string
}

// Checked in order. ClickHouse and SQLite come first since their banners and
// DSNs can mention other engines.
var matchers = []matcher{
	{profile: ClickHouse, keywords: []string{"clickhouse"}},
	{profile: SQLite, keywords: []string{"sqlite"}},
	{profile: MySQL, keywords: []string{"mysql", "mariadb"}},
	{profile: PostgreSQL, keywords: []string{"postgres", "pgx"}},
	{profile: Oracle, keywords: []string{"oracle", "godror", "oci8"}},
	{profile: SQLServer, keywords: []string{"sqlserver", "sql server", "mssql"}},
}

// probes are tried in turn against a live connection; each returns a
// product or version banner on the engines that understand it.
var probes = []string{
	"SELECT version()",
	"SELECT @@version_comment",
	"SELECT @@version",
	"SELECT banner FROM v$version WHERE ROWNUM = 1",
	"SELECT 'SQLite ' || sqlite_version()",
}

// Resolve maps a product name, driver name or DSN to a profile. It never
// fails; unrecognized input maps to Generic.
//
// Examples:
//   - "PostgreSQL 16.2 on x86_64" -> PostgreSQL
//   - "mysql://app@db/shop" -> MySQL
//   - "Microsoft SQL Server 2022" -> SQLServer
//   - "H2" -> Generic
func Resolve(product string) Profile {
	lower := strings.ToLower(product)

	if p, ok := ByTag(lower); ok {
		return p
	}

	for _, m := range matchers {
		for _, kw := range m.keywords {
			if strings.Contains(lower, kw) {
				return m.profile
			}
		}
	}

	return Generic
}

// Detect resolves the profile for a live connection. The hint (usually the
// driver name or DSN) is consulted first; when it is inconclusive, each probe
// query is run until one reports a recognizable product. Probe errors are
// ignored and Generic is returned when nothing matches.
func Detect(ctx context.Context, db Prober, hint string) Profile {
	if p := Resolve(hint); p.tag != TagGeneric {
		return p
	}

	for _, probe := range probes {
		var banner string
		if err := db.QueryRowContext(ctx, probe).Scan(&banner); err != nil {
			continue
		}

		if p := Resolve(banner); p.tag != TagGeneric {
			return p
		}
	}

	return Generic
}
