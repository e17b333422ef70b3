package domain

type University struct {
	ID   int    `db:"university_id" json:"id"`
	Name string `db:"university_name" json:"name"`
}

type Address struct {
	ID           int     `db:"address_id" json:"id"`
	UniversityID int     `db:"university_id" json:"university_id"`
	CampusName   *string `db:"campus_name" json:"campus_name"`
	Street       string  `db:"street" json:"street"`
	HouseNumber  string  `db:"house_number" json:"house_number"`
	PostalCode   string  `db:"postal_code" json:"postal_code"`
	City         string  `db:"city" json:"city"`
	Country      string  `db:"country" json:"country"`
}

type CreateUniversityRequest struct {
	UniversityName string  `json:"university_name" validate:"required"`
	CampusName     *string `json:"campus_name"`
	Street         string  `json:"street" validate:"required"`
	HouseNumber    string  `json:"house_number" validate:"required"`
	PostalCode     string  `json:"postal_code" validate:"required"`
	City           string  `json:"city" validate:"required"`
	Country        string  `json:"country" validate:"required"`
}
