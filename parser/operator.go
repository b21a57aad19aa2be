package parser

import "strings"

// ValueKind is the type of value an operator accepts
type ValueKind int

const (
	StringValue ValueKind = iota
	DateValue
	SizeValue
)

// String returns the string representation of ValueKind
func (v ValueKind) String() string {
	switch v {
	case DateValue:
		return "date"
	case SizeValue:
		return "size"
	default:
		return "string"
	}
}

// OperatorDefinition describes one key:value operator.
// Name and Aliases match case-insensitively. A user definition with the
// same Name as a built-in replaces it entirely; aliases are not merged.
type OperatorDefinition struct {
	Name          string
	Aliases       []string
	Kind          TermKind
	Value         ValueKind
	AllowNegation bool
}

// matches reports whether key equals the definition's name or one of its aliases
func (d OperatorDefinition) matches(key string) bool {
	if strings.EqualFold(d.Name, key) {
		return true
	}

	for _, alias := range d.Aliases {
		if strings.EqualFold(alias, key) {
			return true
		}
	}

	return false
}

// builtinOperators is the default operator table
var builtinOperators = []OperatorDefinition{
	{Name: "from", Aliases: []string{"f", "sender"}, Kind: KindFrom, Value: StringValue, AllowNegation: true},
	{Name: "to", Aliases: []string{"t", "recipient"}, Kind: KindTo, Value: StringValue, AllowNegation: true},
	{Name: "subject", Aliases: []string{"subj", "s"}, Kind: KindSubject, Value: StringValue, AllowNegation: true},
	{Name: "body", Aliases: []string{"content", "b"}, Kind: KindBody, Value: StringValue, AllowNegation: true},
	{Name: "has", Kind: KindHas, Value: StringValue, AllowNegation: true},
	{Name: "is", Kind: KindIs, Value: StringValue, AllowNegation: true},
	{Name: "in", Aliases: []string{"folder", "box", "mailbox"}, Kind: KindIn, Value: StringValue, AllowNegation: true},
	{Name: "label", Aliases: []string{"tag", "l"}, Kind: KindLabel, Value: StringValue, AllowNegation: true},
	{Name: "date", Aliases: []string{"d"}, Kind: KindDate, Value: DateValue},
	{Name: "before", Aliases: []string{"b4", "older", "older_than"}, Kind: KindBefore, Value: DateValue},
	{Name: "after", Aliases: []string{"af", "newer", "newer_than"}, Kind: KindAfter, Value: DateValue},
	{Name: "header-k", Aliases: []string{"hk", "header-key"}, Kind: KindHeaderKey, Value: StringValue},
	{Name: "header-v", Aliases: []string{"hv", "header-value"}, Kind: KindHeaderValue, Value: StringValue},
	{Name: "size", Aliases: []string{"larger", "smaller"}, Kind: KindSize, Value: SizeValue},
}

// registry is an ordered operator table with first-match-wins lookup.
// User-supplied definitions sit in front of the built-ins; a user
// definition whose Name equals a built-in's drops that built-in.
type registry struct {
	defs []OperatorDefinition
}

func newRegistry(custom []OperatorDefinition) *registry {
	defs := make([]OperatorDefinition, 0, len(custom)+len(builtinOperators))
	defs = append(defs, custom...)

	for _, builtin := range builtinOperators {
		replaced := false

		for _, def := range custom {
			if strings.EqualFold(def.Name, builtin.Name) {
				replaced = true
				break
			}
		}

		if !replaced {
			defs = append(defs, builtin)
		}
	}

	return &registry{defs: defs}
}

// lookup finds the first definition matching key by name or alias
func (r *registry) lookup(key string) (OperatorDefinition, bool) {
	for _, def := range r.defs {
		if def.matches(key) {
			return def, true
		}
	}

	return OperatorDefinition{}, false
}
