package database

// Flag converts a boolean to the 0/1 integer stored in flag columns.
func Flag(value bool) int {
	if value {
		return 1
	}
	return 0
}

// IsSet converts a flag column back to a boolean.
func IsSet(value int) bool {
	return value != 0
}

// NullString stores an empty string as NULL.
func NullString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// StringValue reads a nullable string column.
func StringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// NullInt64 stores 0 as NULL.
func NullInt64(value int64) *int64 {
	if value == 0 {
		return nil
	}
	return &value
}

// Int64Value reads a nullable integer column.
func Int64Value(value *int64) int64 {
	if value == nil {
		return 0
	}
	return *value
}
