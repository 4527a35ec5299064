package signup

import (
	"errors"
	"html"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// FieldErrors maps a field name to the message rendered under it.
type FieldErrors map[string]string

// Fields returns the failing field names in display order.
func (e FieldErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, f := range Fields {
		if _, ok := e[f]; ok {
			out = append(out, f)
		}
	}
	// names outside the known set go last
	var extra []string
	for f := range e {
		if isKnownField(f) {
			continue
		}
		extra = append(extra, f)
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func isKnownField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

const fallbackMessage = "Campo inválido"

var messages = map[string]map[string]string{
	FieldName: {
		"required": "O nome é obrigatório",
		"max":      "O nome deve ter no máximo 60 caracteres",
	},
	FieldLastName: {
		"required": "O sobrenome é obrigatório",
		"max":      "O sobrenome deve ter no máximo 60 caracteres",
	},
	FieldEmail: {
		"required": "O e-mail é obrigatório",
		"email":    "Digite um e-mail válido",
		"max":      "O e-mail deve ter no máximo 254 caracteres",
	},
	FieldPosition: {
		"required": "Selecione a vaga desejada",
		"vacancy":  "Selecione uma vaga válida",
	},
	FieldDescription: {
		"required": "Conte-nos um pouco sobre você",
		"max":      "A descrição deve ter no máximo 1000 caracteres",
	},
}

// Schema validates FormData against the declared constraints and the
// configured vacancy set.
type Schema struct {
	validate  *validator.Validate
	vacancies []string
	allowed   map[string]struct{}
	policy    *bluemonday.Policy
}

// NewSchema builds a schema accepting the given vacancies as positions.
func NewSchema(vacancies []string) (*Schema, error) {
	s := &Schema{
		allowed: make(map[string]struct{}, len(vacancies)),
		policy:  bluemonday.StrictPolicy(),
	}
	for _, v := range vacancies {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := s.allowed[v]; dup {
			continue
		}
		s.allowed[v] = struct{}{}
		s.vacancies = append(s.vacancies, v)
	}
	if len(s.vacancies) == 0 {
		return nil, ErrNoVacancies
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("vacancy", func(fl validator.FieldLevel) bool {
		_, ok := s.allowed[fl.Field().String()]
		return ok
	}); err != nil {
		return nil, err
	}
	s.validate = v
	return s, nil
}

// Vacancies returns the accepted positions in configured order.
func (s *Schema) Vacancies() []string {
	return append([]string(nil), s.vacancies...)
}

// Normalize trims every field and strips markup from the description.
func (s *Schema) Normalize(d FormData) FormData {
	d.Name = strings.TrimSpace(d.Name)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.TrimSpace(d.Email)
	d.Position = strings.TrimSpace(d.Position)
	d.Description = strings.TrimSpace(s.stripMarkup(d.Description))
	return d
}

// maxStripPasses bounds how many layers of entity encoding are peeled off.
const maxStripPasses = 8

// stripMarkup returns v as plain text. The policy escapes the text it keeps,
// so its output is unescaped and sanitized again until nothing changes;
// entity-encoded tags are decoded and then removed like literal ones.
// Anything that looks like a tag is dropped, including "List<String>".
func (s *Schema) stripMarkup(v string) string {
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(v))
		if next == v {
			return v
		}
		v = next
	}
	// still changing: drop what could form a tag
	return strings.NewReplacer("<", "", ">", "").Replace(v)
}

// Validate returns one message per failing field, or nil when d is valid.
func (s *Schema) Validate(d FormData) FieldErrors {
	err := s.validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field][fe.Tag()]
		if !ok {
			msg = fallbackMessage
		}
		out[field] = msg
	}
	return out
}
