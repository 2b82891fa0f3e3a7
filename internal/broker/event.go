package broker

import "time"

// Tipos de evento publicados na fila.
const (
	CompanyCreated  = "company.created"
	CompanyUpdated  = "company.updated"
	CompanyDeleted  = "company.deleted"
	LicenseCreated  = "license.created"
	LicenseUpdated  = "license.updated"
	LicenseDeleted  = "license.deleted"
	LicenseExpiring = "license.expiring"
	LicenseExpired  = "license.expired"
	DataRestored    = "data.restored"
	DataCleared     = "data.cleared"
)

// Event é o corpo JSON publicado no RabbitMQ e repassado aos painéis pelo ws.
type Event struct {
	Type          string    `json:"type"`
	Entity        string    `json:"entity,omitempty"` // company|license
	ID            string    `json:"id,omitempty"`
	CompanyID     string    `json:"companyId,omitempty"`
	Name          string    `json:"name,omitempty"` // nome da empresa ou número da licença, conforme Entity
	State         string    `json:"state,omitempty"`
	DaysRemaining *int      `json:"daysRemaining,omitempty"`
	Message       string    `json:"message,omitempty"` // texto para exibir (nos alertas inclui a empresa)
	Timestamp     time.Time `json:"timestamp"`
}
