package models

import "time"

// License é um alvará/licença de uma empresa. As datas ficam no formato
// YYYY-MM-DD, sem hora; o status nunca é persistido.
type License struct {
	ID             string    `bson:"_id" json:"id"`
	CompanyID      string    `bson:"company_id" json:"companyId"`
	Number         string    `bson:"number" json:"number"`
	IssueDate      string    `bson:"issue_date" json:"issueDate"`
	ExpirationDate string    `bson:"expiration_date" json:"expirationDate"`
	Authority      string    `bson:"authority" json:"authority"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"` // vazio = ausente
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
