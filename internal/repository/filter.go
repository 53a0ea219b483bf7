package repository

import "strings"

var filterEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// filterEq builds a field='value' filter term with the value escaped, so
// a quote inside a record ID or status cannot alter the expression.
func filterEq(field, value string) string {
	return field + "='" + filterEscaper.Replace(value) + "'"
}
