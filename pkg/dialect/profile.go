package dialect

import (
	"strconv"
	"strings"

	"github.com/pseudomuto/colsweep/pkg/utils"
)

type (
	// Tag identifies a profile.
	Tag string

	// CommentStyle describes where a column comment is rendered.
	CommentStyle int

	// Folding is the rule an engine applies to column-name case.
	Folding int

	// Placeholder is the bind-parameter syntax a driver expects.
	Placeholder int

	// Profile is a closed rule-set capturing one database family's DDL syntax and
	// literal-formatting conventions. The zero value is not usable; use one of the
	// package-level profiles.
	Profile struct {
		tag              Tag
		quoter           utils.Quoter
		addKeyword       string
		comments         CommentStyle
		now              string
		trueLiteral      string
		falseLiteral     string
		booleanType      string
		timestampType    string
		integerType      string
		systemPrefixes   []string
		systemNames      []string
		systemSchemas    []string
		schemaPrefixes   []string
		folding          Folding
		placeholder      Placeholder
		defaultFirst     bool
		transactionalDDL bool
	}
)

const (
	TagMySQL      Tag = "mysql"
	TagPostgreSQL Tag = "postgresql"
	TagOracle     Tag = "oracle"
	TagSQLServer  Tag = "sqlserver"
	TagGeneric    Tag = "ansi-generic"
	TagSQLite     Tag = "sqlite"
	TagClickHouse Tag = "clickhouse"
)

const (
	// CommentInline appends COMMENT '...' to the ALTER statement.
	CommentInline CommentStyle = iota
	// CommentStatement issues a separate COMMENT ON COLUMN statement.
	CommentStatement
	// CommentUnsupported drops the comment.
	CommentUnsupported
)

const (
	// FoldPreserve compares column names exactly.
	FoldPreserve Folding = iota
	// FoldInsensitive compares column names case-insensitively.
	FoldInsensitive
	// FoldUpper compares column names after upper-casing both sides.
	FoldUpper
)

const (
	PlaceholderQuestion Placeholder = iota // ?
	PlaceholderDollar                      // $1
	PlaceholderColon                       // :1
	PlaceholderAtP                         // @p1
)

var (
	oracleSchemas = []string{
		"sys", "system", "outln", "xdb", "mdsys", "ctxsys", "dbsnmp", "ordsys",
		"wmsys", "appqossys", "audsys", "lbacsys", "olapsys", "dvsys", "gsmadmin_internal",
	}

	genericSchemas = []string{
		"information_schema", "pg_catalog", "sys", "sysibm", "syscat", "sysfun", "sysproc", "sysstat", "systools",
	}

	MySQL = Profile{
		tag:              TagMySQL,
		quoter:           utils.Quoter{Open: "`", Close: "`"},
		addKeyword:       "ADD COLUMN",
		comments:         CommentInline,
		now:              "CURRENT_TIMESTAMP",
		trueLiteral:      "1",
		falseLiteral:     "0",
		booleanType:      "TINYINT(1)",
		timestampType:    "TIMESTAMP",
		integerType:      "INT",
		systemNames:      []string{"mysql", "information_schema", "performance_schema", "sys"},
		systemSchemas:    []string{"mysql", "information_schema", "performance_schema", "sys"},
		folding:          FoldInsensitive,
		placeholder:      PlaceholderQuestion,
		transactionalDDL: false,
	}

	PostgreSQL = Profile{
		tag:              TagPostgreSQL,
		quoter:           utils.Quoter{Open: `"`, Close: `"`},
		addKeyword:       "ADD COLUMN",
		comments:         CommentStatement,
		now:              "CURRENT_TIMESTAMP",
		trueLiteral:      "TRUE",
		falseLiteral:     "FALSE",
		booleanType:      "BOOLEAN",
		timestampType:    "TIMESTAMP",
		integerType:      "INTEGER",
		systemPrefixes:   []string{"pg_"},
		systemNames:      []string{"information_schema"},
		systemSchemas:    []string{"information_schema"},
		schemaPrefixes:   []string{"pg_"},
		folding:          FoldPreserve,
		placeholder:      PlaceholderDollar,
		transactionalDDL: true,
	}

	Oracle = Profile{
		tag:              TagOracle,
		addKeyword:       "ADD",
		comments:         CommentStatement,
		now:              "SYSDATE",
		trueLiteral:      "1",
		falseLiteral:     "0",
		booleanType:      "NUMBER(1)",
		timestampType:    "TIMESTAMP",
		integerType:      "NUMBER(10)",
		systemPrefixes:   []string{"sys_", "bin$"},
		systemSchemas:    oracleSchemas,
		folding:          FoldUpper,
		placeholder:      PlaceholderColon,
		defaultFirst:     true,
		transactionalDDL: false,
	}

	SQLServer = Profile{
		tag:              TagSQLServer,
		quoter:           utils.Quoter{Open: "[", Close: "]"},
		addKeyword:       "ADD",
		comments:         CommentUnsupported,
		now:              "GETDATE()",
		trueLiteral:      "1",
		falseLiteral:     "0",
		booleanType:      "BIT",
		timestampType:    "DATETIME2",
		integerType:      "INT",
		systemPrefixes:   []string{"spt_", "msreplication_"},
		systemNames:      []string{"sysdiagrams", "dtproperties"},
		systemSchemas:    []string{"sys", "information_schema"},
		folding:          FoldInsensitive,
		placeholder:      PlaceholderAtP,
		transactionalDDL: true,
	}

	Generic = Profile{
		tag:              TagGeneric,
		addKeyword:       "ADD COLUMN",
		comments:         CommentStatement,
		now:              "CURRENT_TIMESTAMP",
		trueLiteral:      "TRUE",
		falseLiteral:     "FALSE",
		booleanType:      "BOOLEAN",
		timestampType:    "TIMESTAMP",
		integerType:      "INTEGER",
		systemSchemas:    genericSchemas,
		folding:          FoldInsensitive,
		placeholder:      PlaceholderQuestion,
		transactionalDDL: true,
	}

	SQLite = Profile{
		tag:              TagSQLite,
		quoter:           utils.Quoter{Open: `"`, Close: `"`},
		addKeyword:       "ADD COLUMN",
		comments:         CommentUnsupported,
		now:              "CURRENT_TIMESTAMP",
		trueLiteral:      "1",
		falseLiteral:     "0",
		booleanType:      "BOOLEAN",
		timestampType:    "TIMESTAMP",
		integerType:      "INTEGER",
		systemPrefixes:   []string{"sqlite_"},
		folding:          FoldInsensitive,
		placeholder:      PlaceholderQuestion,
		transactionalDDL: true,
	}

	ClickHouse = Profile{
		tag:              TagClickHouse,
		quoter:           utils.Quoter{Open: "`", Close: "`"},
		addKeyword:       "ADD COLUMN",
		comments:         CommentInline,
		now:              "now()",
		trueLiteral:      "true",
		falseLiteral:     "false",
		booleanType:      "Bool",
		timestampType:    "DateTime",
		integerType:      "UInt32",
		systemPrefixes:   []string{".inner"},
		systemNames:      []string{"system", "information_schema"},
		systemSchemas:    []string{"system", "information_schema"},
		folding:          FoldPreserve,
		placeholder:      PlaceholderQuestion,
		transactionalDDL: false,
	}

	profiles = []Profile{MySQL, PostgreSQL, Oracle, SQLServer, Generic, SQLite, ClickHouse}
)

// All returns every known profile.
func All() []Profile {
	out := make([]Profile, len(profiles))
	copy(out, profiles)
	return out
}

// ByTag returns the profile with the given tag (case-insensitive).
func ByTag(tag string) (Profile, bool) {
	for _, p := range profiles {
		if strings.EqualFold(string(p.tag), tag) {
			return p, true
		}
	}
	return Profile{}, false
}

// Tag returns the profile identifier.
func (p Profile) Tag() Tag { return p.tag }

func (p Profile) String() string { return string(p.tag) }

// QuoteIdentifier quotes a single identifier per the profile's quoting rule.
func (p Profile) QuoteIdentifier(name string) string {
	return p.quoter.Quote(name)
}

// QualifiedName quotes schema.table, omitting an empty schema.
func (p Profile) QualifiedName(schema, table string) string {
	return p.quoter.QualifiedName(schema, table)
}

// CommentStyle returns where column comments are rendered.
func (p Profile) CommentStyle() CommentStyle { return p.comments }

// Now returns the canonical spelling of the current timestamp.
func (p Profile) Now() string { return p.now }

// BooleanLiteral returns the profile's spelling of v.
func (p Profile) BooleanLiteral(v bool) string {
	if v {
		return p.trueLiteral
	}
	return p.falseLiteral
}

// TransactionalDDL reports whether ALTER TABLE can be rolled back. Engines that
// commit DDL implicitly (MySQL, Oracle, ClickHouse) return false.
func (p Profile) TransactionalDDL() bool { return p.transactionalDDL }

// Folding returns the column-name case rule.
func (p Profile) Folding() Folding { return p.folding }

// IsSystemTable reports whether name belongs to the engine's own catalog.
// Matching is case-insensitive against known prefixes and exact names.
func (p Profile) IsSystemTable(name string) bool {
	return matchesSystem(name, p.systemPrefixes, p.systemNames)
}

// IsSystemSchema reports whether schema is one of the engine's own schemas.
// Matching is case-insensitive; an empty name never matches.
func (p Profile) IsSystemSchema(schema string) bool {
	return matchesSystem(schema, p.schemaPrefixes, p.systemSchemas)
}

func matchesSystem(name string, prefixes, names []string) bool {
	if name == "" {
		return false
	}

	lower := strings.ToLower(name)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	for _, n := range names {
		if lower == n {
			return true
		}
	}

	return false
}

// ColumnMatches reports whether a column name read from the catalog refers to
// want. An exact match always counts; otherwise the profile's single folding
// rule decides.
func (p Profile) ColumnMatches(actual, want string) bool {
	if actual == want {
		return true
	}

	switch p.folding {
	case FoldInsensitive:
		return strings.EqualFold(actual, want)
	case FoldUpper:
		return strings.ToUpper(actual) == strings.ToUpper(want)
	default:
		return false
	}
}

// Placeholder returns the n-th (1-based) bind parameter marker.
func (p Profile) Placeholder(n int) string {
	switch p.placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(n)
	case PlaceholderColon:
		return ":" + strconv.Itoa(n)
	case PlaceholderAtP:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}
