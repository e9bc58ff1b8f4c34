package database

// PreparedStatement pairs a parameterized SQL template with the arguments
// bound to its placeholders. It is a pure data carrier: two statements are
// interchangeable for execution purposes iff both the template and the
// argument list match.
type PreparedStatement struct {
	SQL  string
	Args []any
}

func NewStatement(sql string, args ...any) PreparedStatement {
	return PreparedStatement{SQL: sql, Args: args}
}
