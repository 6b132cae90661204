package spb_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/spb"
	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/pkg/docid"
)

func violations(t *testing.T, err error) errors.ValidationList {
	t.Helper()
	if err == nil {
		return nil
	}
	list, ok := errors.AsValidations(err)
	require.True(t, ok, "unexpected error %v", err)
	return list
}

func TestAccountRule(t *testing.T) {
	s := newTransferSchema(t)
	tests := []struct {
		name    string
		kind    accountKind
		branch  *string
		account *string
		payment *string
		want    []string
	}{
		{name: "payment account with number", kind: accountPayment, payment: ptr("998877")},
		{name: "payment account ignores branch", kind: accountPayment, payment: ptr("998877"), branch: ptr("0001")},
		{name: "payment account without number", kind: accountPayment, want: []string{"CtPgtoDebtd"}},
		{name: "payment account does not need branch", kind: accountPayment, payment: ptr("1"), want: nil},
		{name: "current account", kind: accountCurrent, branch: ptr("0001"), account: ptr("1234")},
		{name: "current account with payment number", kind: accountCurrent, branch: ptr("0001"), account: ptr("1234"), payment: ptr("998877")},
		{name: "current account without branch and number", kind: accountCurrent, want: []string{"AgDebtd", "CtDebtd"}},
		{name: "cashier without number", kind: accountCashier, branch: ptr("0001"), want: []string{"CtDebtd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validTransfer()
			v.AccountKind = tt.kind
			v.Branch, v.Account, v.PaymentAccount = tt.branch, tt.account, tt.payment

			list := violations(t, s.Validate(&v))
			assert.ElementsMatch(t, tt.want, list.Fields())
			for _, item := range list {
				assert.Equal(t, string(errors.ErrBusinessRule), item.Code)
			}
		})
	}
}

func TestDocumentRule(t *testing.T) {
	s := newTransferSchema(t)
	tests := []struct {
		name string
		kind *personKind
		doc  *string
		want []string
	}{
		{name: "valid cpf", kind: ptr(personIndividual), doc: ptr("52998224725")},
		{name: "valid cnpj", kind: ptr(personBusiness), doc: ptr("11222333000181")},
		{name: "cnpj for individual", kind: ptr(personIndividual), doc: ptr("11222333000181"), want: []string{"CNPJ_CPFCliDebtd"}},
		{name: "bad check digit", kind: ptr(personIndividual), doc: ptr("52998224726"), want: []string{"CNPJ_CPFCliDebtd"}},
		{name: "no kind", doc: ptr("52998224726")},
		{name: "no document", kind: ptr(personBusiness)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validTransfer()
			v.PersonKind, v.Document = tt.kind, tt.doc
			list := violations(t, s.Validate(&v))
			assert.ElementsMatch(t, tt.want, list.Fields())
		})
	}
}

func TestDocumentRuleUsesChecker(t *testing.T) {
	var calls []docid.Kind
	checker := docid.CheckerFunc(func(kind docid.Kind, digits string) bool {
		calls = append(calls, kind)
		return digits == "12345678901"
	})
	s := newTransferSchema(t, spb.WithDocumentChecker(checker))

	v := validTransfer()
	v.Document = ptr("12345678901")
	require.NoError(t, s.Validate(&v))

	v.PersonKind = ptr(personBusiness)
	v.Document = ptr("11222333000181")
	list := violations(t, s.Validate(&v))
	require.Len(t, list, 1)
	assert.Equal(t, "CNPJ_CPFCliDebtd", list[0].Field)
	assert.Equal(t, "11222333000181", list[0].Actual)
	assert.Equal(t, "DOC/SISMSG/STR0008/Grupo_Debtd/CNPJ_CPFCliDebtd", list[0].Path)
	assert.Equal(t, []docid.Kind{docid.Individual, docid.Business}, calls)
}

func TestPurposeRule(t *testing.T) {
	s := newTransferSchema(t)

	v := validTransfer()
	v.Purpose = purposeOther
	require.NoError(t, s.Validate(&v))

	v.Note = nil
	list := violations(t, s.Validate(&v))
	require.Len(t, list, 1)
	assert.Equal(t, "Hist", list[0].Field)
	assert.Equal(t, string(errors.ErrBusinessRule), list[0].Code)

	v.Note = ptr("   ")
	list = violations(t, s.Validate(&v))
	assert.Equal(t, []string{"Hist"}, list.Fields())

	v.Purpose = purposeTaxes
	assert.NoError(t, s.Validate(&v))
}

func TestDecodeAppliesRules(t *testing.T) {
	s := newTransferSchema(t)
	body := minimalTransferBody[:len(minimalTransferBody)-1] + `<Grupo_Item><RefItem>X</RefItem><VlrItem>1.005</VlrItem></Grupo_Item>`
	doc := frame("STR0008", body)
	doc = strings.Replace(doc, "<FinlddCli>1</FinlddCli>", "<FinlddCli>99</FinlddCli>", 1)
	doc = strings.Replace(doc, "<AgDebtd>0001</AgDebtd>", "", 1)

	_, err := s.Decode([]byte(doc))
	list := violations(t, err)
	assert.ElementsMatch(t, []string{"AgDebtd", "Hist", "Itens[0].VlrItem"}, list.Fields())
	assert.Len(t, list.ByCode(errors.ErrBusinessRule), 2)
	assert.Len(t, list.ByCode(errors.ErrFieldConstraint), 1)
}

func TestFieldConstraints(t *testing.T) {
	s := newTransferSchema(t)
	v := validTransfer()
	v.Code = "STR00080"
	v.Amount = spb.MustDecimal("-1.00")
	v.SenderID = "ABC"
	v.Items[1].Ref = "REFERENCE-TOO-LONG"

	list := violations(t, s.Validate(&v))
	assert.ElementsMatch(t, []string{"CodMsg", "VlrLanc", "IdentdEmissor", "Itens[1].RefItem"}, list.Fields())
	for _, item := range list {
		assert.Equal(t, string(errors.ErrFieldConstraint), item.Code)
	}
	byField := map[string]string{}
	for _, item := range list {
		byField[item.Field] = item.Message
	}
	assert.Equal(t, "violates len=7", byField["CodMsg"])
	assert.Equal(t, "violates amount", byField["VlrLanc"])
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	s := newTransferSchema(t, spb.WithUpperCase())
	v := validTransfer()
	v.Code = "  str0008 "
	v.Note = ptr(" pagamento ")
	v.Items[0].Ref = " a1"

	n := s.Normalize(v)
	assert.Equal(t, "STR0008", n.Code)
	assert.Equal(t, "PAGAMENTO", *n.Note)
	assert.Equal(t, "A1", n.Items[0].Ref)

	assert.Equal(t, "  str0008 ", v.Code)
	assert.Equal(t, " pagamento ", *v.Note)
	assert.Equal(t, " a1", v.Items[0].Ref)

	data, err := s.Encode(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<CodMsg>STR0008</CodMsg>")
	assert.Contains(t, string(data), "<Hist>PAGAMENTO</Hist>")
}

func TestUpperTextIgnoresSchemaOption(t *testing.T) {
	type code struct {
		spb.Control
		Value string `spb:"Cod"`
	}
	s, err := spb.NewSchema[code]("GEN9999", []spb.FieldDef[code]{
		spb.Field("Cod", spb.At("Cod"), spb.UpperText, func(m *code) *string { return &m.Value }),
	})
	require.NoError(t, err)
	got := s.Normalize(code{Value: " ação "})
	assert.Equal(t, "AÇÃO", got.Value)
}
