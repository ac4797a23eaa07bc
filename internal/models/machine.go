// internal/models/machine.go
// Entidades de frota: snapshot somente-leitura para o núcleo de cálculo

package models

// Reading é uma leitura de horímetro (valor acumulado, não-decrescente).
type Reading struct {
	Date   string        `json:"date"` // YYYY-MM-DD
	Value  float64       `json:"value"`
	Status MachineStatus `json:"status,omitempty"`
}

// StoppageRecord é um intervalo de parada; aberto quando EndDate está vazio.
type StoppageRecord struct {
	StartDate   string        `json:"start_date"` // YYYY-MM-DD
	StartTime   string        `json:"start_time,omitempty"`
	EndDate     string        `json:"end_date,omitempty"`
	EndTime     string        `json:"end_time,omitempty"`
	Reason      MachineStatus `json:"reason"`
	Description string        `json:"description,omitempty"`
}

// Open informa se a parada ainda está em andamento.
func (s StoppageRecord) Open() bool { return s.EndDate == "" }

// PendingIssue é um apontamento de campo ainda não resolvido.
type PendingIssue struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description"`
	ReportedBy  string `json:"reported_by,omitempty"`
}

// ResolvedIssue carrega sempre as duas pontas do intervalo.
type ResolvedIssue struct {
	ID           string `json:"id"`
	OriginalDate string `json:"original_date"`
	OriginalTime string `json:"original_time,omitempty"`
	ResolvedDate string `json:"resolved_date"`
	ResolvedTime string `json:"resolved_time,omitempty"`
	Description  string `json:"description"`
	ReportedBy   string `json:"reported_by,omitempty"`
}

// OilService descreve uma ação sobre um dos óleos da máquina.
type OilService struct {
	Action string  `json:"action"` // Troca / Completar
	Type   string  `json:"type,omitempty"`
	Amount float64 `json:"amount,omitempty"` // litros
}

type FilterChange struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Lubrication struct {
	Grease          bool           `json:"grease,omitempty"`
	EngineOil       *OilService    `json:"engine_oil,omitempty"`
	HydraulicOil    *OilService    `json:"hydraulic_oil,omitempty"`
	TransmissionOil *OilService    `json:"transmission_oil,omitempty"`
	DifferentialOil *OilService    `json:"differential_oil,omitempty"`
	Filters         []FilterChange `json:"filters,omitempty"`
}

// SupplyLog é um abastecimento/lubrificação com timestamp completo.
type SupplyLog struct {
	Date        string       `json:"date"` // timestamp ISO-like
	Diesel      float64      `json:"diesel,omitempty"` // litros
	Arla        float64      `json:"arla,omitempty"`   // litros
	Lubrication *Lubrication `json:"lubrication,omitempty"`
}

// FuelDelivery é uma entrega de diesel no tanque da obra.
type FuelDelivery struct {
	Date     string  `json:"date"`
	Liters   float64 `json:"liters"`
	Supplier string  `json:"supplier,omitempty"`
}

// Machine é o snapshot completo de uma máquina da frota.
// O núcleo nunca muta estes dados; CRUD é responsabilidade de outra camada.
type Machine struct {
	ID                   string        `json:"id"`
	Prefix               string        `json:"prefix"`
	Name                 string        `json:"name"`
	Model                string        `json:"model,omitempty"`
	Brand                string        `json:"brand,omitempty"`
	Hours                float64       `json:"hours"`
	MonthlyHours         float64       `json:"monthly_hours"`
	Status               MachineStatus `json:"status"`
	StatusChangeDate     string        `json:"status_change_date,omitempty"` // YYYY-MM-DD
	LastStatusChangeTime string        `json:"last_status_change_time,omitempty"`

	Readings        []Reading        `json:"readings,omitempty"`
	StoppageHistory []StoppageRecord `json:"stoppage_history,omitempty"`
	PendingIssues   []PendingIssue   `json:"pending_issues,omitempty"`
	ResolvedIssues  []ResolvedIssue  `json:"resolved_issues,omitempty"`
	SupplyLogs      []SupplyLog      `json:"supply_logs,omitempty"`
}
