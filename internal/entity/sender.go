package entity

// SenderConfig identifies who signs the outreach email. Never persisted.
type SenderConfig struct {
	Name    string `json:"yourName,omitempty" validate:"omitempty,max=200"`
	Company string `json:"yourCompany,omitempty" validate:"omitempty,max=200"`
	Phone   string `json:"yourPhone,omitempty" validate:"omitempty,max=50"`
}

// WithDefaults fills the empty fields from def.
func (s SenderConfig) WithDefaults(def SenderConfig) SenderConfig {
	if s.Name == "" {
		s.Name = def.Name
	}
	if s.Company == "" {
		s.Company = def.Company
	}
	if s.Phone == "" {
		s.Phone = def.Phone
	}
	return s
}
