package signup

import "encoding/json"

// Status is the outcome shown in the message banner.
type Status int

const (
	StatusNone Status = iota
	StatusSuccess
	StatusError
)

// User-facing banner texts.
const (
	SuccessMessage = "Seja bem-vindo(a) à Comunidade Frontend Fusion!\n Cheque sua caixa de entrada para validar seu email."
	FailureMessage = "Oops, ocorreu um erro.\n Tente novamente!"
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "none"
	}
}

// Result pairs a status with its message. The two are always replaced together.
type Result struct {
	Status  Status
	Message string
}

// Visible reports whether the banner should render at all.
func (r Result) Visible() bool { return r.Status != StatusNone }

// MarshalJSON encodes the banner contract: status and message are null when
// nothing was submitted yet.
func (r Result) MarshalJSON() ([]byte, error) {
	var out struct {
		Status  *string `json:"status"`
		Message *string `json:"message"`
	}
	if r.Visible() {
		status := r.Status.String()
		msg := r.Message
		out.Status = &status
		out.Message = &msg
	}
	return json.Marshal(out)
}

func successResult() Result { return Result{Status: StatusSuccess, Message: SuccessMessage} }
func failureResult() Result { return Result{Status: StatusError, Message: FailureMessage} }
