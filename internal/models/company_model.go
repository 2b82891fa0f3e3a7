package models

import "time"

// Company é um cliente do escritório. O CNPJ é texto livre: não é validado
// nem precisa ser único.
type Company struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	CNPJ        string    `bson:"cnpj" json:"cnpj"`
	City        string    `bson:"city" json:"city"`
	ContactName string    `bson:"contact_name" json:"contactName"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone" json:"phone"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
