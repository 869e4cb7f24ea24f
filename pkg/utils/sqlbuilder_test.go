package utils_test

import (
	"testing"

	"github.com/pseudomuto/colsweep/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestSQLBuilder_AddColumn(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name: "mysql with comment",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder(backticks).
					Alter("TABLE").QualifiedName("app", "users").
					Raw("ADD COLUMN").Name("flag").Raw("TINYINT(1)").
					NotNull().Default("1").Comment("feature flag")
			},
			expected: "ALTER TABLE `app`.`users` ADD COLUMN `flag` TINYINT(1) NOT NULL DEFAULT 1 COMMENT 'feature flag'",
		},
		{
			name: "postgres nullable without default",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder(doubles).
					Alter("TABLE").QualifiedName("public", "users").
					Raw("ADD COLUMN").Name("note").Raw("TEXT").Default("")
			},
			expected: `ALTER TABLE "public"."users" ADD COLUMN "note" TEXT`,
		},
		{
			name: "sqlserver bare ADD",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder(brackets).
					Alter("TABLE").QualifiedName("", "users").
					Raw("ADD").Name("created_at").Raw("DATETIME").Default("GETDATE()")
			},
			expected: "ALTER TABLE [users] ADD [created_at] DATETIME DEFAULT GETDATE()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.builder().String())
		})
	}
}

func TestSQLBuilder_CommentOn(t *testing.T) {
	sql := utils.NewSQLBuilder(doubles).
		CommentOn("COLUMN").
		ColumnPath("public", "users", "flag").
		Is("user's flag").
		String()

	require.Equal(t, `COMMENT ON COLUMN "public"."users"."flag" IS 'user''s flag'`, sql)
}

func TestSQLBuilder_Comment(t *testing.T) {
	require.Equal(t, "COMMENT 'it''s'", utils.NewSQLBuilder(bare).Comment("it's").String())
	require.Empty(t, utils.NewSQLBuilder(bare).Comment("").String())
}

func TestSQLBuilder_Raw(t *testing.T) {
	require.Equal(t, "ADD COLUMN", utils.NewSQLBuilder(bare).Raw("ADD COLUMN").Raw("").String())
}

func TestSQLBuilder_StringWithSemicolon(t *testing.T) {
	b := utils.NewSQLBuilder(bare).Alter("TABLE").Name("t").Raw("ADD COLUMN").Name("c").Raw("INT")
	require.Equal(t, "ALTER TABLE t ADD COLUMN c INT;", b.StringWithSemicolon())
	require.Empty(t, utils.NewSQLBuilder(bare).StringWithSemicolon())
}
