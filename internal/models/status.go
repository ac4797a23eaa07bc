// internal/models/status.go
// Status de máquina como enumeração fechada

package models

// MachineStatus é o conjunto fechado de status operacionais.
// A camada de apresentação mapeia ícone/cor a partir destes valores.
type MachineStatus string

const (
	StatusOperando         MachineStatus = "Operando"
	StatusManutencao       MachineStatus = "Manutenção"
	StatusDisponivel       MachineStatus = "Disponível"
	StatusProblemaMecanico MachineStatus = "Problema Mecânico"
)

// Valid informa se s pertence ao conjunto conhecido.
func (s MachineStatus) Valid() bool {
	switch s {
	case StatusOperando, StatusManutencao, StatusDisponivel, StatusProblemaMecanico:
		return true
	}
	return false
}

// ParseStatus normaliza uma string vinda do banco; valores
// desconhecidos são devolvidos como estão (melhor esforço).
func ParseStatus(raw string) MachineStatus {
	return MachineStatus(raw)
}
