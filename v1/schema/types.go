package schema

import "strings"

// DataType is the engine-neutral classification of a column or parameter type.
type DataType int

const (
	Unknown DataType = iota
	Text
	Integer
	BigInteger
	Decimal
	Float
	Boolean
	Date
	Time
	DateTime
	Binary
	Guid
	JSON
	Collection
)

var dataTypeNames = [...]string{
	Unknown:    "Unknown",
	Text:       "Text",
	Integer:    "Integer",
	BigInteger: "BigInteger",
	Decimal:    "Decimal",
	Float:      "Float",
	Boolean:    "Boolean",
	Date:       "Date",
	Time:       "Time",
	DateTime:   "DateTime",
	Binary:     "Binary",
	Guid:       "Guid",
	JSON:       "JSON",
	Collection: "Collection",
}

func (d DataType) String() string {
	if d < 0 || int(d) >= len(dataTypeNames) {
		return dataTypeNames[Unknown]
	}
	return dataTypeNames[d]
}

// ObjectKind discriminates catalog objects returned by the shared table/view query.
type ObjectKind int

const (
	KindOther ObjectKind = iota
	KindTable
	KindView
)

func (k ObjectKind) String() string {
	switch k {
	case KindTable:
		return "Table"
	case KindView:
		return "View"
	default:
		return "Other"
	}
}

// ConstraintType is the kind of a table constraint.
type ConstraintType int

const (
	UnknownConstraint ConstraintType = iota
	PrimaryKey
	ForeignKey
	Unique
	Check
)

func (c ConstraintType) String() string {
	switch c {
	case PrimaryKey:
		return "PrimaryKey"
	case ForeignKey:
		return "ForeignKey"
	case Unique:
		return "Unique"
	case Check:
		return "Check"
	default:
		return "Unknown"
	}
}

// ParseConstraintType maps catalog constraint names such as "PRIMARY KEY"
// or "partition_key" onto ConstraintType.
func ParseConstraintType(s string) ConstraintType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRIMARY KEY", "PRIMARY", "PRIMARYKEY", "PARTITION_KEY":
		return PrimaryKey
	case "FOREIGN KEY", "FOREIGN", "FOREIGNKEY":
		return ForeignKey
	case "UNIQUE":
		return Unique
	case "CHECK":
		return Check
	default:
		return UnknownConstraint
	}
}

// Direction of a routine parameter.
type Direction int

const (
	In Direction = iota
	Out
	InOut
	Return
)

// ParseDirection maps information_schema parameter modes onto Direction.
// An empty mode, as reported for function results, is Return.
func ParseDirection(s string) Direction {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN":
		return In
	case "OUT":
		return Out
	case "INOUT":
		return InOut
	default:
		return Return
	}
}
