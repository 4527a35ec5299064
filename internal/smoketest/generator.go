package smoketest

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

var (
	firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Felipe", "Gabi", "Heitor"}
	lastNames  = []string{"Souza", "Lima", "Alves", "Costa", "Rocha", "Pereira", "Ramos", "Nunes"}
	blurbs     = []string{
		"Gosto de React e de acessibilidade.",
		"Trabalho com Go e filas de mensagens.",
		"Estou migrando de design para frontend.",
		"Escrevo testes end-to-end há dois anos.",
	}
)

// generateSubmissions builds n payloads over vacancies. Every invalidEvery-th
// one carries a malformed email and an off-list position.
func generateSubmissions(n, invalidEvery int, vacancies []string) []Submission {
	out := make([]Submission, n)
	for i := range out {
		id := uuid.NewString()
		s := Submission{
			Name:        pick(firstNames),
			LastName:    pick(lastNames),
			Email:       "smoke+" + id + "@example.com",
			Position:    pick(vacancies),
			Description: pick(blurbs),
		}
		if invalidEvery > 0 && (i+1)%invalidEvery == 0 {
			s.Email = "smoke-" + id
			s.Position = "Astronaut"
			s.expectInvalid = true
		}
		out[i] = s
	}
	return out
}

func pick(values []string) string {
	if len(values) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(values))))
	if err != nil {
		return values[0]
	}
	return values[n.Int64()]
}
