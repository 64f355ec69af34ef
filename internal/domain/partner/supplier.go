package partner

import (
	"strings"

	"github.com/barstock/backend/internal/domain/shared"
	"github.com/barstock/backend/internal/domain/shared/validate"
)

// Supplier is a vendor that products and purchase orders reference.
// Suppliers cannot be deleted while referenced.
type Supplier struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null;index"`
	ContactName string `gorm:"type:varchar(100)"`
	Email       string `gorm:"type:varchar(254)"`
	Phone       string `gorm:"type:varchar(30)"`
	Address     string `gorm:"type:text"`
	Website     string `gorm:"type:varchar(200)"`
	Notes       string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactName, email, phone string) (*Supplier, error) {
	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		ContactName:       strings.TrimSpace(contactName),
		Email:             strings.TrimSpace(email),
		Phone:             strings.TrimSpace(phone),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the supplier's contact information
func (s *Supplier) Update(name, contactName, email, phone, address, website, notes string) error {
	s.Name = strings.TrimSpace(name)
	s.ContactName = strings.TrimSpace(contactName)
	s.Email = strings.TrimSpace(email)
	s.Phone = strings.TrimSpace(phone)
	s.Address = address
	s.Website = strings.TrimSpace(website)
	s.Notes = notes
	if err := s.validate(); err != nil {
		return err
	}
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Deactivate hides the supplier from active listings
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.Touch()
	s.IncrementVersion()
}

// Activate restores the supplier to active listings
func (s *Supplier) Activate() {
	s.IsActive = true
	s.Touch()
	s.IncrementVersion()
}

func (s *Supplier) validate() error {
	verr := &shared.ValidationError{}
	if s.Name == "" {
		verr.Add("name", "supplier name cannot be empty")
	}
	if len(s.Name) > 200 {
		verr.Add("name", "supplier name cannot exceed 200 characters")
	}
	if err := validate.Email(s.Email); err != nil {
		verr.Add("email", err.Error())
	}
	if err := validate.PhoneNumber(s.Phone); err != nil {
		verr.Add("phone", err.Error())
	}
	return verr.ErrOrNil()
}
