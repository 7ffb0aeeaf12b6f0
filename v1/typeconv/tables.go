package typeconv

import "github.com/Aleph-Alpha/orm/v1/schema"

var validators = map[string]schema.DataType{
	"AsciiType":         schema.Text,
	"UTF8Type":          schema.Text,
	"InetAddressType":   schema.Text,
	"ByteType":          schema.Integer,
	"ShortType":         schema.Integer,
	"Int32Type":         schema.Integer,
	"LongType":          schema.BigInteger,
	"CounterColumnType": schema.BigInteger,
	"IntegerType":       schema.BigInteger,
	"DecimalType":       schema.Decimal,
	"FloatType":         schema.Float,
	"DoubleType":        schema.Float,
	"BooleanType":       schema.Boolean,
	"TimestampType":     schema.DateTime,
	"DateType":          schema.DateTime,
	"SimpleDateType":    schema.Date,
	"TimeType":          schema.Time,
	"BytesType":         schema.Binary,
	"UUIDType":          schema.Guid,
	"TimeUUIDType":      schema.Guid,
	"LexicalUUIDType":   schema.Guid,
	"DurationType":      schema.Unknown,
	"EmptyType":         schema.Unknown,
}

var collectionValidators = map[string]bool{
	"ListType":  true,
	"SetType":   true,
	"MapType":   true,
	"TupleType": true,
}

var cqlCollections = map[string]bool{
	"list":  true,
	"set":   true,
	"map":   true,
	"tuple": true,
}

var sqlTypes = map[string]schema.DataType{
	// text
	"char":              schema.Text,
	"character":         schema.Text,
	"nchar":             schema.Text,
	"bpchar":            schema.Text,
	"varchar":           schema.Text,
	"nvarchar":          schema.Text,
	"character varying": schema.Text,
	"varchar2":          schema.Text,
	"text":              schema.Text,
	"tinytext":          schema.Text,
	"mediumtext":        schema.Text,
	"longtext":          schema.Text,
	"ntext":             schema.Text,
	"citext":            schema.Text,
	"clob":              schema.Text,
	"string":            schema.Text,
	"name":              schema.Text,
	"enum":              schema.Text,
	"set":               schema.Text,
	"ascii":             schema.Text,
	"inet":              schema.Text,
	"xml":               schema.Text,

	// integers
	"tinyint":     schema.Integer,
	"smallint":    schema.Integer,
	"mediumint":   schema.Integer,
	"int":         schema.Integer,
	"integer":     schema.Integer,
	"int2":        schema.Integer,
	"int4":        schema.Integer,
	"utinyint":    schema.Integer,
	"usmallint":   schema.Integer,
	"uinteger":    schema.Integer,
	"serial":      schema.Integer,
	"serial4":     schema.Integer,
	"smallserial": schema.Integer,
	"bigint":      schema.BigInteger,
	"int8":        schema.BigInteger,
	"ubigint":     schema.BigInteger,
	"hugeint":     schema.BigInteger,
	"uhugeint":    schema.BigInteger,
	"bigserial":   schema.BigInteger,
	"serial8":     schema.BigInteger,
	"counter":     schema.BigInteger,
	"varint":      schema.BigInteger,

	// exact and approximate numerics
	"decimal":          schema.Decimal,
	"numeric":          schema.Decimal,
	"dec":              schema.Decimal,
	"money":            schema.Decimal,
	"number":           schema.Decimal,
	"real":             schema.Float,
	"float":            schema.Float,
	"float4":           schema.Float,
	"float8":           schema.Float,
	"double":           schema.Float,
	"double precision": schema.Float,

	"bool":    schema.Boolean,
	"boolean": schema.Boolean,

	// temporal
	"date":        schema.Date,
	"time":        schema.Time,
	"timetz":      schema.Time,
	"datetime":    schema.DateTime,
	"datetime2":   schema.DateTime,
	"timestamp":   schema.DateTime,
	"timestamptz": schema.DateTime,
	"year":        schema.Integer,

	// binary
	"bytea":       schema.Binary,
	"blob":        schema.Binary,
	"tinyblob":    schema.Binary,
	"mediumblob":  schema.Binary,
	"longblob":    schema.Binary,
	"binary":      schema.Binary,
	"varbinary":   schema.Binary,
	"bit":         schema.Binary,
	"bit varying": schema.Binary,
	"varbit":      schema.Binary,
	"bytes":       schema.Binary,

	"uuid":             schema.Guid,
	"timeuuid":         schema.Guid,
	"uniqueidentifier": schema.Guid,

	"json":  schema.JSON,
	"jsonb": schema.JSON,

	"array": schema.Collection,
	"list":  schema.Collection,
	"map":   schema.Collection,
}
