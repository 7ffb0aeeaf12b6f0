package typeconv

import (
	"strings"

	"github.com/Aleph-Alpha/orm/v1/schema"
)

// Converter maps an engine's native type string to a canonical DataType.
type Converter func(native string) schema.DataType

const marshalPackage = "org.apache.cassandra.db.marshal."

// Convert classifies any native type string: Cassandra marshal classes,
// relational type names and CQL type names. Unrecognized input yields
// schema.Unknown.
func Convert(native string) schema.DataType {
	s := strings.TrimSpace(native)
	if s == "" {
		return schema.Unknown
	}
	if isValidator(s) {
		return FromValidator(s)
	}
	return FromSQL(s)
}

func isValidator(s string) bool {
	if strings.HasPrefix(s, marshalPackage) {
		return true
	}
	head := s
	if i := strings.IndexByte(head, '('); i >= 0 {
		head = head[:i]
	}
	_, ok := validators[head]
	return ok || collectionValidators[head]
}

// FromValidator classifies a Cassandra marshal class such as
// "org.apache.cassandra.db.marshal.UTF8Type". ReversedType and FrozenType
// wrappers are unwrapped; collection classes map to Collection.
func FromValidator(class string) schema.DataType {
	s := strings.TrimSpace(class)
	for {
		s = strings.TrimPrefix(s, marshalPackage)
		open := strings.IndexByte(s, '(')
		if open < 0 {
			break
		}
		head := s[:open]
		if collectionValidators[head] {
			return schema.Collection
		}
		if head != "ReversedType" && head != "FrozenType" {
			return schema.Unknown
		}
		end := strings.LastIndexByte(s, ')')
		if end <= open {
			return schema.Unknown
		}
		s = strings.TrimSpace(s[open+1 : end])
	}
	if collectionValidators[s] {
		return schema.Collection
	}
	if dt, ok := validators[s]; ok {
		return dt
	}
	return schema.Unknown
}

// FromSQL classifies a relational or CQL type name. Length, precision and
// modifier suffixes are ignored except where they change the meaning, as for
// MySQL's tinyint(1).
func FromSQL(name string) schema.DataType {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return schema.Unknown
	}

	if strings.HasSuffix(s, "[]") || strings.HasPrefix(s, "_") {
		return schema.Collection
	}

	if i := strings.IndexByte(s, '<'); i >= 0 {
		head := strings.TrimSpace(s[:i])
		if head == "frozen" {
			end := strings.LastIndexByte(s, '>')
			if end <= i {
				return schema.Unknown
			}
			return FromSQL(s[i+1 : end])
		}
		if cqlCollections[head] {
			return schema.Collection
		}
		return schema.Unknown
	}

	base, args := s, ""
	if open := strings.IndexByte(s, '('); open >= 0 {
		base = s[:open]
		if end := strings.IndexByte(s[open:], ')'); end > 0 {
			args = strings.TrimSpace(s[open+1 : open+end])
			base += s[open+end+1:]
		}
	}
	base = normalizeSpaces(base)
	for _, mod := range []string{" unsigned", " signed", " zerofill"} {
		base = strings.ReplaceAll(base, mod, "")
	}
	base = strings.TrimSpace(base)

	if (base == "tinyint" || base == "bit") && args == "1" {
		return schema.Boolean
	}
	if dt, ok := sqlTypes[base]; ok {
		return dt
	}
	if strings.HasPrefix(base, "timestamp") || strings.HasPrefix(base, "datetime") {
		return schema.DateTime
	}
	if strings.HasPrefix(base, "time ") {
		return schema.Time
	}
	return schema.Unknown
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
