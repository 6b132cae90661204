package spb_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jacoelho/spb"
	"github.com/jacoelho/spb/pkg/codedenum"
)

type personKind string

const (
	personIndividual personKind = "individual"
	personBusiness   personKind = "business"
)

var personKinds = codedenum.MustNew("TpPessoa",
	codedenum.Def[personKind]{Member: personIndividual, Name: "INDIVIDUAL", Value: "F", Wire: spb.IndividualPerson},
	codedenum.Def[personKind]{Member: personBusiness, Name: "BUSINESS", Value: "J", Wire: spb.BusinessPerson},
)

type accountKind string

const (
	accountCurrent accountKind = "current"
	accountCashier accountKind = "cashier"
	accountPayment accountKind = "payment"
)

var accountKinds = codedenum.MustNew("TpCt",
	codedenum.Def[accountKind]{Member: accountCurrent, Name: "CURRENT", Value: "1", Wire: "CC"},
	codedenum.Def[accountKind]{Member: accountCashier, Name: "CASHIER", Value: "5", Wire: "AC_CAIXA"},
	codedenum.Def[accountKind]{Member: accountPayment, Name: "PAYMENT", Value: "2", Wire: spb.PaymentAccountKind},
)

type purpose int

const (
	purposeTaxes purpose = 1
	purposeOther purpose = 99
)

var purposes = codedenum.MustNew("FinlddCli",
	codedenum.Def[purpose]{Member: purposeTaxes, Name: "TAXES", Value: "1", Wire: "1"},
	codedenum.Def[purpose]{Member: purposeOther, Name: "OTHER", Value: "99", Wire: "99"},
)

type item struct {
	Ref    string         `spb:"RefItem" validate:"omitempty,max=10"`
	Amount spb.Decimal    `spb:"VlrItem" validate:"omitempty,amount"`
	At     *spb.TimeOfDay `spb:"HrItem"`
}

type transfer struct {
	spb.Control
	Code           string       `spb:"CodMsg" validate:"omitempty,len=7"`
	Amount         spb.Decimal  `spb:"VlrLanc" validate:"omitempty,amount"`
	Date           spb.Date     `spb:"DtMovto"`
	Created        spb.DateTime `spb:"DtHrCriacao"`
	Note           *string      `spb:"Hist" validate:"omitempty,max=200"`
	PersonKind     *personKind  `spb:"TpPessoaCliDebtd"`
	Document       *string      `spb:"CNPJ_CPFCliDebtd" validate:"omitempty,numeric"`
	AccountKind    accountKind  `spb:"TpCtDebtd"`
	Branch         *string      `spb:"AgDebtd" validate:"omitempty,max=4,numeric"`
	Account        *string      `spb:"CtDebtd"`
	PaymentAccount *string      `spb:"CtPgtoDebtd"`
	Purpose        purpose      `spb:"FinlddCli"`
	Items          []item       `spb:"Itens" validate:"dive"`
}

func transferFields() []spb.FieldDef[transfer] {
	debtor := func(name string) spb.Location { return spb.At("Grupo_Debtd", name) }
	return []spb.FieldDef[transfer]{
		spb.Field("CodMsg", spb.At("CodMsg"), spb.Text, func(m *transfer) *string { return &m.Code }),
		spb.Field("VlrLanc", spb.At("VlrLanc"), spb.DecimalCodec, func(m *transfer) *spb.Decimal { return &m.Amount }),
		spb.Field("DtMovto", spb.At("DtMovto"), spb.DateCodec, func(m *transfer) *spb.Date { return &m.Date }),
		spb.Field("DtHrCriacao", spb.At("DtHrCriacao"), spb.DateTimeCodec, func(m *transfer) *spb.DateTime { return &m.Created }),
		spb.Optional("Hist", spb.At("Hist"), spb.Text, func(m *transfer) **string { return &m.Note }),
		spb.Optional("TpPessoaCliDebtd", debtor("TpPessoaCliDebtd"), spb.EnumCodec(personKinds), func(m *transfer) **personKind { return &m.PersonKind }),
		spb.Optional("CNPJ_CPFCliDebtd", debtor("CNPJ_CPFCliDebtd"), spb.Text, func(m *transfer) **string { return &m.Document }),
		spb.Field("TpCtDebtd", debtor("TpCtDebtd"), spb.EnumCodec(accountKinds), func(m *transfer) *accountKind { return &m.AccountKind }),
		spb.Optional("AgDebtd", debtor("AgDebtd"), spb.Text, func(m *transfer) **string { return &m.Branch }),
		spb.Optional("CtDebtd", debtor("CtDebtd"), spb.Text, func(m *transfer) **string { return &m.Account }),
		spb.Optional("CtPgtoDebtd", debtor("CtPgtoDebtd"), spb.Text, func(m *transfer) **string { return &m.PaymentAccount }),
		spb.Field("FinlddCli", spb.At("FinlddCli"), spb.EnumCodec(purposes), func(m *transfer) *purpose { return &m.Purpose }),
		spb.Group("Itens", spb.At("Grupo_Item"), spb.NewRecord(
			spb.Field("RefItem", spb.At("Grupo_Item", "RefItem"), spb.Text, func(r *item) *string { return &r.Ref }),
			spb.Field("VlrItem", spb.At("Grupo_Item", "VlrItem"), spb.DecimalCodec, func(r *item) *spb.Decimal { return &r.Amount }),
			spb.Optional("HrItem", spb.At("Grupo_Item", "HrItem"), spb.TimeCodec, func(r *item) **spb.TimeOfDay { return &r.At }),
		), func(m *transfer) *[]item { return &m.Items }),
	}
}

func newTransferSchema(t testing.TB, opts ...spb.Option) *spb.Schema[transfer] {
	t.Helper()
	opts = append([]spb.Option{
		spb.WithNamespace("http://www.bcb.gov.br/SPB/STR0008.xsd"),
		spb.WithRules(
			spb.DocumentRule("CliDebtd"),
			spb.AccountRule("Debtd"),
			spb.PurposeRule("FinlddCli", "99", "Hist"),
		),
	}, opts...)
	s, err := spb.NewSchema[transfer]("STR0008", transferFields(), opts...)
	require.NoError(t, err)
	return s
}

func ptr[T any](v T) *T {
	return &v
}

var testControl = spb.Control{
	SenderID:        "00038166",
	RecipientID:     "00000000",
	Domain:          "SPB01",
	OperationNumber: "00038166202512040000001",
}

func validTransfer() transfer {
	return transfer{
		Control:     testControl,
		Code:        "STR0008",
		Amount:      spb.MustDecimal("120.0"),
		Date:        spb.NewDate(2025, time.December, 4),
		Created:     spb.NaiveDateTime(time.Date(2025, time.November, 20, 15, 30, 0, 0, time.UTC)),
		Note:        ptr("pagamento de tributo"),
		PersonKind:  ptr(personIndividual),
		Document:    ptr("52998224725"),
		AccountKind: accountCurrent,
		Branch:      ptr("0001"),
		Account:     ptr("123456"),
		Purpose:     purposeTaxes,
		Items: []item{
			{Ref: "A1", Amount: spb.MustDecimal("100.00"), At: ptr(spb.NewTimeOfDay(9, 30, 0))},
			{Ref: "A2", Amount: spb.MustDecimal("20.0")},
		},
	}
}

// frame wraps body in the fixed document frame used by hand-written inputs.
func frame(tag, body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<DOC xmlns="http://www.bcb.gov.br/SPB/STR0008.xsd">
  <BCMSG>
    <IdentdEmissor>00038166</IdentdEmissor>
    <IdentdDestinatario>00000000</IdentdDestinatario>
    <DomSist>SPB01</DomSist>
    <NUOp>00038166202512040000001</NUOp>
  </BCMSG>
  <SISMSG>
    <` + tag + `>` + body + `</` + tag + `>
  </SISMSG>
</DOC>`
}

const minimalTransferBody = `
      <CodMsg>STR0008</CodMsg>
      <VlrLanc>120.0</VlrLanc>
      <DtMovto>2025-12-04</DtMovto>
      <DtHrCriacao>2025-11-20T15:30:00</DtHrCriacao>
      <Grupo_Debtd>
        <TpCtDebtd>CC</TpCtDebtd>
        <AgDebtd>0001</AgDebtd>
        <CtDebtd>123456</CtDebtd>
      </Grupo_Debtd>
      <FinlddCli>1</FinlddCli>
`
