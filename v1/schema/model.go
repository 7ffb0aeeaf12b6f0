package schema

// Table describes a base table. Kind is KindTable for every value returned by
// Provider.GetTables.
type Table struct {
	Database string
	Name     string
	Kind     ObjectKind
}

// View describes a view or materialized view.
type View struct {
	Database   string
	Name       string
	Definition string
}

// Column describes one column of a table or view.
//
// NativeType holds the engine's own type string. DataType always holds the
// canonical type derived from it.
type Column struct {
	Database   string
	TableName  string
	Name       string
	Ordinal    int
	NativeType string
	DataType   DataType
	Nullable   bool
	MaxLength  int64
	Precision  int64
	Scale      int64
	Default    string
}

// Constraint describes a key or check constraint on a single column.
// Multi-column constraints are reported as one Constraint per column.
type Constraint struct {
	Database       string
	TableName      string
	Name           string
	Type           ConstraintType
	FromColumnName string
	ToTableName    string
	ToColumnName   string
}

// StoredProcedure describes a routine. Kind is the engine's routine type
// ("PROCEDURE" or "FUNCTION").
type StoredProcedure struct {
	Database string
	Name     string
	Kind     string
}

// Parameter describes one argument of a stored routine.
type Parameter struct {
	Database    string
	RoutineName string
	Name        string
	Position    int
	Direction   Direction
	NativeType  string
	DataType    DataType
	MaxLength   int64
	Precision   int64
	Scale       int64
}
