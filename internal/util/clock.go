// internal/util/clock.go
// Abstração de relógio: "now" é sempre injetado nos cálculos

package util

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock devolve sempre o mesmo instante; usado em testes e em
// qualquer chamada que precise de reprodutibilidade.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
