package column

// CommonTypes returns type expressions frequently used with colsweep. The list
// is advisory; any type expression the target engine accepts can be used.
func CommonTypes() []string {
	return []string{
		"VARCHAR(255)",
		"TEXT",
		"INT",
		"BIGINT",
		"DECIMAL(10,2)",
		"DATETIME",
		"DATE",
		"TIME",
		"TIMESTAMP",
		"BOOLEAN",
		"TINYINT(1)",
		"JSON",
	}
}
