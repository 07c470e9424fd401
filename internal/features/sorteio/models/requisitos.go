package models

import "fmt"

// TriState is a requirement switch. Neutral ignores the attribute, allow
// requires it, deny requires its absence. The three switches are independent
// and AND-combined with the role constraints.
type TriState string

const (
	TriNeutral TriState = "neutral"
	TriAllow   TriState = "allow"
	TriDeny    TriState = "deny"
)

func (t TriState) valid() bool {
	switch t {
	case "", TriNeutral, TriAllow, TriDeny:
		return true
	}
	return false
}

// Requisitos is the participation policy of a sorteio. The zero value (all
// switches neutral, no role lists) allows everyone; that is the default
// unconfigured state, not an error.
type Requisitos struct {
	MembroCliente    TriState `json:"membroCliente"`
	FeedbackScience  TriState `json:"feedbackScience"`
	MembroVerificado TriState `json:"membroVerificado"`

	// CargosObrigatorios: the candidate must hold every role listed.
	CargosObrigatorios []string `json:"cargosObrigatorios"`
	// CargosBloqueados: the candidate must hold none of the roles listed.
	CargosBloqueados []string `json:"cargosBloqueados"`
}

// NewRequisitos returns the default policy that allows everyone.
func NewRequisitos() Requisitos {
	return Requisitos{
		MembroCliente:      TriNeutral,
		FeedbackScience:    TriNeutral,
		MembroVerificado:   TriNeutral,
		CargosObrigatorios: []string{},
		CargosBloqueados:   []string{},
	}
}

// Validate checks that every switch carries a known value.
func (r Requisitos) Validate() error {
	for field, state := range map[string]TriState{
		"membroCliente":    r.MembroCliente,
		"feedbackScience":  r.FeedbackScience,
		"membroVerificado": r.MembroVerificado,
	} {
		if !state.valid() {
			return &ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("valor invalido %q (use deny, neutral ou allow)", state),
			}
		}
	}
	return nil
}

// Cargos returns every role identifier the policy references, used to
// validate the lists against the community's role directory.
func (r Requisitos) Cargos() []string {
	out := make([]string, 0, len(r.CargosObrigatorios)+len(r.CargosBloqueados))
	out = append(out, r.CargosObrigatorios...)
	out = append(out, r.CargosBloqueados...)
	return out
}

// Clone returns a copy with independent role slices.
func (r Requisitos) Clone() Requisitos {
	out := r
	out.CargosObrigatorios = append([]string(nil), r.CargosObrigatorios...)
	out.CargosBloqueados = append([]string(nil), r.CargosBloqueados...)
	return out
}

// Candidato carries the attributes of a user attempting to join.
type Candidato struct {
	UserID           string   `json:"userId"`
	MembroCliente    bool     `json:"membroCliente"`
	FeedbackScience  bool     `json:"feedbackScience"`
	MembroVerificado bool     `json:"membroVerificado"`
	Cargos           []string `json:"cargos"`
}

// DenyReason identifies the first constraint a candidate failed.
type DenyReason string

const (
	DenyMembroCliente    DenyReason = "membro_cliente"
	DenyFeedbackScience  DenyReason = "feedback_science"
	DenyMembroVerificado DenyReason = "membro_verificado"
	DenyCargoObrigatorio DenyReason = "cargo_obrigatorio"
	DenyCargoBloqueado   DenyReason = "cargo_bloqueado"
)

// Decision is the outcome of evaluating a candidate against a policy.
type Decision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason,omitempty"`
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Evaluate applies the policy to a candidate. Checks run in a fixed order
// and every one is a hard constraint; the first failure determines the
// reported reason.
func (r Requisitos) Evaluate(c Candidato) Decision {
	if d, ok := checkSwitch(r.MembroCliente, c.MembroCliente, DenyMembroCliente); !ok {
		return d
	}
	if d, ok := checkSwitch(r.FeedbackScience, c.FeedbackScience, DenyFeedbackScience); !ok {
		return d
	}
	if d, ok := checkSwitch(r.MembroVerificado, c.MembroVerificado, DenyMembroVerificado); !ok {
		return d
	}

	if len(r.CargosObrigatorios) > 0 {
		held := make(map[string]bool, len(c.Cargos))
		for _, cargo := range c.Cargos {
			held[cargo] = true
		}
		for _, cargo := range r.CargosObrigatorios {
			if !held[cargo] {
				return deny(DenyCargoObrigatorio)
			}
		}
	}

	if len(r.CargosBloqueados) > 0 {
		blocked := make(map[string]bool, len(r.CargosBloqueados))
		for _, cargo := range r.CargosBloqueados {
			blocked[cargo] = true
		}
		for _, cargo := range c.Cargos {
			if blocked[cargo] {
				return deny(DenyCargoBloqueado)
			}
		}
	}

	return allow
}

// checkSwitch gates one boolean attribute. An empty switch counts as
// neutral so policies stored before the field existed keep allowing.
func checkSwitch(state TriState, has bool, reason DenyReason) (Decision, bool) {
	switch state {
	case TriAllow:
		if !has {
			return deny(reason), false
		}
	case TriDeny:
		if has {
			return deny(reason), false
		}
	}
	return allow, true
}
