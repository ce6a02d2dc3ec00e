package profile

import "github.com/goliatone/go-formfill/pkg/checkbox"

// DefaultName is the profile used when none is configured.
const DefaultName = "curb-ramp"

// Values are the fixed strings written next to their labels.
type Values struct {
	DesignConsultant string `json:"design_consultant" yaml:"design_consultant"`
	DesignEngineer   string `json:"design_engineer" yaml:"design_engineer"`
	Phone            string `json:"phone" yaml:"phone"`
	Email            string `json:"email" yaml:"email"`
	ProjectName      string `json:"project_name" yaml:"project_name"`
	ProjectNumber    string `json:"project_number" yaml:"project_number"`
}

// Profile describes one template family.
type Profile struct {
	Name        string
	Description string
	Source      string
	Values      Values
	Checkboxes  []checkbox.Target
}

// Store holds the profiles loaded from one filesystem.
type Store struct {
	profiles map[string]Profile
}
