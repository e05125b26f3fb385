package models

import "time"

// User identity is issued by the external auth collaborator; this record
// only holds profile and address-book data keyed by that identity.
type User struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	Email     string  `gorm:"unique;not null" json:"email"`
	Phone     string  `json:"phone"`
	Name      string  `json:"name"`
	Address   Address `gorm:"embedded" json:"address"`
	// Carts and orders carry the external identity directly; both may
	// exist before the profile row does, so no foreign key is enforced.
	Cart      Cart    `gorm:"foreignKey:UserID;constraint:-" json:"cart"`
	Orders    []Order `gorm:"foreignKey:UserID;constraint:-" json:"orders"`
	CreatedAt time.Time `json:"created_at"`
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
