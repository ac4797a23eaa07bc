// internal/util/ids.go
// Gerador de ID para request/auditoria

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}
