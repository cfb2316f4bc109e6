/**
 * @description
 * Persona classification types. A user can match zero, one or many of
 * the seven personas; the assignment result keeps them in priority
 * order together with a full audit trail of every rule evaluation.
 */
package domain

// PersonaType is one of the seven fixed behavioral classification tags.
type PersonaType string

const (
	PersonaOverdraftVulnerable    PersonaType = "overdraft_vulnerable"
	PersonaHighUtilization        PersonaType = "high_utilization"
	PersonaVariableIncomeBudgeter PersonaType = "variable_income_budgeter"
	PersonaSubscriptionHeavy      PersonaType = "subscription_heavy"
	PersonaSavingsBuilder         PersonaType = "savings_builder"
	PersonaLowUse                 PersonaType = "low_use"
	PersonaSteady                 PersonaType = "steady"
)

// PersonaPriority is the fixed evaluation and rank order, highest
// priority first. Steady is last and only ever assigned as a fallback.
var PersonaPriority = []PersonaType{
	PersonaOverdraftVulnerable,
	PersonaHighUtilization,
	PersonaVariableIncomeBudgeter,
	PersonaSubscriptionHeavy,
	PersonaSavingsBuilder,
	PersonaLowUse,
	PersonaSteady,
}

// DecisionNode records one persona rule evaluation, matched or not.
type DecisionNode struct {
	Persona  PersonaType    `json:"persona"`
	Matched  bool           `json:"matched"`
	Criteria []string       `json:"criteria"`
	Evidence map[string]any `json:"evidence"`
}

// PersonaAssignment is one matched persona with its justification.
type PersonaAssignment struct {
	Persona   PersonaType    `json:"persona"`
	Reasoning []string       `json:"reasoning"`
	Evidence  map[string]any `json:"evidence"`
}

// DecisionTree is the audit record of a full assignment run. Despite the
// name it is a flat list of rule outcomes, not a traversal structure.
type DecisionTree struct {
	SignalsDetected []SignalKind   `json:"signals_detected"`
	Nodes           []DecisionNode `json:"nodes"`
	PrimaryPersona  PersonaType    `json:"primary_persona"`
	Reasoning       string         `json:"reasoning"`
}

// PersonaAssignmentResult is the full output of the assignment engine.
// Personas[0] is always the highest-priority match.
type PersonaAssignmentResult struct {
	Personas []PersonaAssignment `json:"personas"`
	Tree     DecisionTree        `json:"decision_tree"`
}

// Primary returns the highest-priority assigned persona.
func (r PersonaAssignmentResult) Primary() PersonaType {
	if len(r.Personas) == 0 {
		return PersonaSteady
	}
	return r.Personas[0].Persona
}
