package spb

import (
	"fmt"

	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/internal/lexical"
	"github.com/jacoelho/spb/pkg/docid"
)

// Wire codes the conditional rules compare against.
const (
	// PaymentAccountKind is the account kind that selects a payment account
	// number instead of branch and account number.
	PaymentAccountKind = "PG"
	// IndividualPerson marks an individual taxpayer document (CPF).
	IndividualPerson = "F"
	// BusinessPerson marks a business taxpayer document (CNPJ).
	BusinessPerson = "J"
)

type ruleKind int

const (
	documentRule ruleKind = iota + 1
	accountRule
	purposeRule
)

// Rule is a conditional cross-field check. Field names are resolved against
// the schema when it is built; naming an undeclared field fails NewSchema.
type Rule struct {
	kind        ruleKind
	party       string
	field       string
	sentinel    string
	description string
}

// DocumentRule checks CNPJ_CPF<party> against TpPessoa<party> whenever both
// carry a value.
func DocumentRule(party string) Rule {
	return Rule{kind: documentRule, party: party}
}

// AccountRule requires CtPgto<party> when TpCt<party> is the payment account
// kind, and Ag<party> plus Ct<party> for any other kind.
func AccountRule(party string) Rule {
	return Rule{kind: accountRule, party: party}
}

// PurposeRule requires the description field whenever field holds the
// sentinel wire code.
func PurposeRule(field, sentinel, description string) Rule {
	return Rule{kind: purposeRule, field: field, sentinel: sentinel, description: description}
}

func (r Rule) String() string {
	switch r.kind {
	case documentRule:
		return "document rule " + r.party
	case accountRule:
		return "account rule " + r.party
	case purposeRule:
		return "purpose rule " + r.field
	default:
		return "invalid rule"
	}
}

type compiledRule func(p any, checker docid.Checker) []errors.Validation

func (r Rule) compile(fields map[string]*binding) (compiledRule, error) {
	lookup := func(name string) (*binding, error) {
		b, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%s references undeclared field %s", r, name)
		}
		if b.group != nil {
			return nil, fmt.Errorf("%s references group %s", r, name)
		}
		return b, nil
	}
	switch r.kind {
	case documentRule:
		kind, err := lookup("TpPessoa" + r.party)
		if err != nil {
			return nil, err
		}
		doc, err := lookup("CNPJ_CPF" + r.party)
		if err != nil {
			return nil, err
		}
		return documentCheck(kind, doc), nil
	case accountRule:
		var bs [4]*binding
		for i, name := range []string{"TpCt", "Ag", "Ct", "CtPgto"} {
			b, err := lookup(name + r.party)
			if err != nil {
				return nil, err
			}
			bs[i] = b
		}
		return accountCheck(bs[0], bs[1], bs[2], bs[3]), nil
	case purposeRule:
		purpose, err := lookup(r.field)
		if err != nil {
			return nil, err
		}
		desc, err := lookup(r.description)
		if err != nil {
			return nil, err
		}
		if r.sentinel == "" {
			return nil, fmt.Errorf("%s has no sentinel", r)
		}
		return purposeCheck(purpose, desc, r.sentinel), nil
	default:
		return nil, fmt.Errorf("invalid rule")
	}
}

// valueOf returns the wire text of b when it holds a value. Blank text
// carries no value.
func valueOf(b *binding, p any) (string, bool) {
	s, set, err := b.text(p)
	return s, set && err == nil && lexical.TrimWhitespace(s) != ""
}

func documentCheck(kind, doc *binding) compiledRule {
	return func(p any, checker docid.Checker) []errors.Validation {
		k, ok := valueOf(kind, p)
		if !ok {
			return nil
		}
		digits, ok := valueOf(doc, p)
		if !ok {
			return nil
		}
		var dk docid.Kind
		switch k {
		case IndividualPerson:
			dk = docid.Individual
		case BusinessPerson:
			dk = docid.Business
		default:
			v := errors.NewValidationf(errors.ErrBusinessRule, kind.name, "unknown person kind %q", k)
			v.Actual = k
			return []errors.Validation{v}
		}
		if checker.IsValid(dk, digits) {
			return nil
		}
		v := errors.NewValidationf(errors.ErrBusinessRule, doc.name, "invalid %s document for person kind %s", dk, k)
		v.Actual = digits
		return []errors.Validation{v}
	}
}

func accountCheck(kind, branch, account, payment *binding) compiledRule {
	return func(p any, _ docid.Checker) []errors.Validation {
		k, ok := valueOf(kind, p)
		if !ok {
			return nil
		}
		required := []*binding{branch, account}
		if k == PaymentAccountKind {
			required = []*binding{payment}
		}
		var out []errors.Validation
		for _, b := range required {
			if _, ok := valueOf(b, p); !ok {
				out = append(out, errors.NewValidationf(errors.ErrBusinessRule, b.name, "required for account kind %s", k))
			}
		}
		return out
	}
}

func purposeCheck(purpose, desc *binding, sentinel string) compiledRule {
	return func(p any, _ docid.Checker) []errors.Validation {
		v, ok := valueOf(purpose, p)
		if !ok || v != sentinel {
			return nil
		}
		if _, ok := valueOf(desc, p); ok {
			return nil
		}
		return []errors.Validation{
			errors.NewValidationf(errors.ErrBusinessRule, desc.name, "required when %s is %s", purpose.name, sentinel),
		}
	}
}
