package domain

import "encoding/json"

// RoleName is a role reference that the backend emits either as a plain
// string or as an object carrying a name. It decodes to just the name.
type RoleName string

func (r *RoleName) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = RoleName(obj.Name)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = RoleName(s)
	return nil
}

// Profile is the upstream identity record as returned by GET /auth/profile.
// The backend is loose about the role field shape: it may be an object with a
// name, a plain string, or a separate role_name attribute. UnmarshalJSON
// applies that precedence once here so no caller repeats the fallback chain.
type Profile struct {
	UserID FlexID `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	// Role is the raw role name exactly as the upstream sent it; run it
	// through NormalizeRole before comparing against portal roles.
	Role string `json:"role"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       FlexID   `json:"id"`
		Email    string   `json:"email"`
		Name     string   `json:"name"`
		Role     RoleName `json:"role"`
		RoleName string   `json:"role_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.UserID = raw.ID
	p.Email = raw.Email
	p.Name = raw.Name
	if p.Name == "" {
		p.Name = raw.Email
	}
	p.Role = string(raw.Role)
	if p.Role == "" {
		p.Role = raw.RoleName
	}
	return nil
}

// User is a backend user record, proxied for admin user management.
type User struct {
	ID       FlexID   `json:"id"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Role     RoleName `json:"role,omitempty"`
	SchoolID FlexID   `json:"school_id,omitempty"`
}

// UserInput is the payload for creating or updating a backend user.
type UserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Name     string  `json:"name" validate:"required"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	RoleID   string  `json:"role_id,omitempty"`
	SchoolID string  `json:"school_id,omitempty"`
}
