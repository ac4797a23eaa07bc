// internal/repositories/mysql/util.go
package mysql

import "strings"

// placeholders gera "?,?,..." com n posições.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
