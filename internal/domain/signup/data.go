// Package signup holds the community signup form: its data, the validation
// schema, the submission status and the per-page form instance.
package signup

// Field names as they appear on the wire and in FieldErrors.
const (
	FieldName        = "name"
	FieldLastName    = "lastName"
	FieldEmail       = "email"
	FieldPosition    = "position"
	FieldDescription = "description"
)

// Fields lists every form field in display order.
var Fields = []string{FieldName, FieldLastName, FieldEmail, FieldPosition, FieldDescription}

// FormData is the candidate's submission.
type FormData struct {
	Name        string `json:"name" validate:"required,max=60"`
	LastName    string `json:"lastName" validate:"required,max=60"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Position    string `json:"position" validate:"required,vacancy"`
	Description string `json:"description" validate:"required,max=1000"`
}

// Get returns the value of the named field, or "" for an unknown name.
func (d FormData) Get(field string) string {
	switch field {
	case FieldName:
		return d.Name
	case FieldLastName:
		return d.LastName
	case FieldEmail:
		return d.Email
	case FieldPosition:
		return d.Position
	case FieldDescription:
		return d.Description
	}
	return ""
}

// FormDataFromValues builds FormData from url-encoded form values.
func FormDataFromValues(get func(string) string) FormData {
	return FormData{
		Name:        get(FieldName),
		LastName:    get(FieldLastName),
		Email:       get(FieldEmail),
		Position:    get(FieldPosition),
		Description: get(FieldDescription),
	}
}
