package doctors

// Doctor is the shape the scheduling flow consumes, mapped from an NPI
// registry result.
type Doctor struct {
	NPI          string `json:"npi"`
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	SubSpecialty string `json:"sub_specialty,omitempty"`
	Hospital     string `json:"hospital,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
}
