package dto

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Respuesta is the success envelope shared by every non-auth endpoint.
type Respuesta struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Identificador is a row or plant number. Clients send it either as a JSON
// number (3) or as a string ("3", "Hilera 3").
type Identificador string

func (i *Identificador) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*i = Identificador(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identificador invalido: %s", b)
	}
	*i = Identificador(n.String())
	return nil
}

func (i Identificador) String() string { return string(i) }
