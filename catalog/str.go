package catalog

import "github.com/jacoelho/spb"

// STR0008 is a transfer between clients of two participants.
type STR0008 struct {
	spb.Control
	Code          string      `spb:"CodMsg" validate:"omitempty,len=7"`
	ControlNumber string      `spb:"NumCtrlIF" validate:"omitempty,max=20"`
	DebtorISPB    string      `spb:"ISPBIFDebtd" validate:"omitempty,len=8,numeric"`
	DebtorBranch  *string     `spb:"AgDebtd" validate:"omitempty,max=4,numeric"`
	DebtorKind    AccountKind `spb:"TpCtDebtd"`
	DebtorAccount *string     `spb:"CtDebtd" validate:"omitempty,max=13,numeric"`
	DebtorPayment *string     `spb:"CtPgtoDebtd" validate:"omitempty,max=20,numeric"`
	DebtorPerson  PersonKind  `spb:"TpPessoaCliDebtd"`
	DebtorDoc     string      `spb:"CNPJ_CPFCliDebtd" validate:"omitempty,max=14,numeric"`
	DebtorName    *string     `spb:"NomCliDebtd" validate:"omitempty,max=80"`

	CreditorISPB    string      `spb:"ISPBIFCredtd" validate:"omitempty,len=8,numeric"`
	CreditorBranch  *string     `spb:"AgCredtd" validate:"omitempty,max=4,numeric"`
	CreditorKind    AccountKind `spb:"TpCtCredtd"`
	CreditorAccount *string     `spb:"CtCredtd" validate:"omitempty,max=13,numeric"`
	CreditorPayment *string     `spb:"CtPgtoCredtd" validate:"omitempty,max=20,numeric"`
	CreditorPerson  PersonKind  `spb:"TpPessoaCliCredtd"`
	CreditorDoc     string      `spb:"CNPJ_CPFCliCredtd" validate:"omitempty,max=14,numeric"`
	CreditorName    *string     `spb:"NomCliCredtd" validate:"omitempty,max=80"`

	Amount        spb.Decimal    `spb:"VlrLanc" validate:"omitempty,amount"`
	Purpose       Purpose        `spb:"FinlddCli"`
	TransferID    *string        `spb:"CodIdentdTransf" validate:"omitempty,max=25"`
	Note          *string        `spb:"Hist" validate:"omitempty,max=200"`
	ScheduledDate *spb.Date      `spb:"DtAgendt"`
	ScheduledTime *spb.TimeOfDay `spb:"HrAgendt"`
	Date          spb.Date       `spb:"DtMovto"`
}

// STR0008E is STR0008 with error codes attached.
type STR0008E = spb.Overlaid[STR0008]

// STR0008Schema binds STR0008 with the document, account and purpose rules
// for both parties.
var STR0008Schema = spb.MustSchema[STR0008]("STR0008", []spb.FieldDef[STR0008]{
	spb.Field("CodMsg", spb.At("CodMsg"), spb.Text, func(m *STR0008) *string { return &m.Code }),
	spb.Field("NumCtrlIF", spb.At("NumCtrlIF"), spb.Text, func(m *STR0008) *string { return &m.ControlNumber }),

	spb.Field("ISPBIFDebtd", spb.At("ISPBIFDebtd"), spb.Text, func(m *STR0008) *string { return &m.DebtorISPB }),
	spb.Optional("AgDebtd", spb.At("AgDebtd"), spb.Text, func(m *STR0008) **string { return &m.DebtorBranch }),
	spb.Field("TpCtDebtd", spb.At("TpCtDebtd"), spb.EnumCodec(AccountKinds), func(m *STR0008) *AccountKind { return &m.DebtorKind }),
	spb.Optional("CtDebtd", spb.At("CtDebtd"), spb.Text, func(m *STR0008) **string { return &m.DebtorAccount }),
	spb.Optional("CtPgtoDebtd", spb.At("CtPgtoDebtd"), spb.Text, func(m *STR0008) **string { return &m.DebtorPayment }),
	spb.Field("TpPessoaCliDebtd", spb.At("TpPessoaCliDebtd"), spb.EnumCodec(PersonKinds), func(m *STR0008) *PersonKind { return &m.DebtorPerson }),
	spb.Field("CNPJ_CPFCliDebtd", spb.At("CNPJ_CPFCliDebtd"), spb.Text, func(m *STR0008) *string { return &m.DebtorDoc }),
	spb.Optional("NomCliDebtd", spb.At("NomCliDebtd"), spb.UpperText, func(m *STR0008) **string { return &m.DebtorName }),

	spb.Field("ISPBIFCredtd", spb.At("ISPBIFCredtd"), spb.Text, func(m *STR0008) *string { return &m.CreditorISPB }),
	spb.Optional("AgCredtd", spb.At("AgCredtd"), spb.Text, func(m *STR0008) **string { return &m.CreditorBranch }),
	spb.Field("TpCtCredtd", spb.At("TpCtCredtd"), spb.EnumCodec(AccountKinds), func(m *STR0008) *AccountKind { return &m.CreditorKind }),
	spb.Optional("CtCredtd", spb.At("CtCredtd"), spb.Text, func(m *STR0008) **string { return &m.CreditorAccount }),
	spb.Optional("CtPgtoCredtd", spb.At("CtPgtoCredtd"), spb.Text, func(m *STR0008) **string { return &m.CreditorPayment }),
	spb.Field("TpPessoaCliCredtd", spb.At("TpPessoaCliCredtd"), spb.EnumCodec(PersonKinds), func(m *STR0008) *PersonKind { return &m.CreditorPerson }),
	spb.Field("CNPJ_CPFCliCredtd", spb.At("CNPJ_CPFCliCredtd"), spb.Text, func(m *STR0008) *string { return &m.CreditorDoc }),
	spb.Optional("NomCliCredtd", spb.At("NomCliCredtd"), spb.UpperText, func(m *STR0008) **string { return &m.CreditorName }),

	spb.Field("VlrLanc", spb.At("VlrLanc"), spb.DecimalCodec, func(m *STR0008) *spb.Decimal { return &m.Amount }),
	spb.Field("FinlddCli", spb.At("FinlddCli"), spb.EnumCodec(Purposes), func(m *STR0008) *Purpose { return &m.Purpose }),
	spb.Optional("CodIdentdTransf", spb.At("CodIdentdTransf"), spb.Text, func(m *STR0008) **string { return &m.TransferID }),
	spb.Optional("Hist", spb.At("Hist"), spb.Text, func(m *STR0008) **string { return &m.Note }),
	spb.Optional("DtAgendt", spb.At("DtAgendt"), spb.DateCodec, func(m *STR0008) **spb.Date { return &m.ScheduledDate }),
	spb.Optional("HrAgendt", spb.At("HrAgendt"), spb.TimeCodec, func(m *STR0008) **spb.TimeOfDay { return &m.ScheduledTime }),
	spb.Field("DtMovto", spb.At("DtMovto"), spb.DateCodec, func(m *STR0008) *spb.Date { return &m.Date }),
},
	spb.WithNamespace(namespace("STR0008")),
	spb.WithRules(
		spb.DocumentRule("CliDebtd"),
		spb.DocumentRule("CliCredtd"),
		spb.AccountRule("Debtd"),
		spb.AccountRule("Credtd"),
		spb.PurposeRule("FinlddCli", otherPurposeWire, "Hist"),
	),
)

// STR0008ESchema is the error acknowledgement variant of STR0008Schema.
var STR0008ESchema = spb.MustOverlay(STR0008Schema)

// STR0008R1 is the settlement response to STR0008.
type STR0008R1 struct {
	spb.Control
	Code          string           `spb:"CodMsg" validate:"omitempty,len=9"`
	ControlNumber string           `spb:"NumCtrlIF" validate:"omitempty,max=20"`
	DebtorISPB    string           `spb:"ISPBIFDebtd" validate:"omitempty,len=8,numeric"`
	STRNumber     string           `spb:"NumCtrlSTR" validate:"omitempty,max=20"`
	Status        SettlementStatus `spb:"SitLancSTR"`
	StatusAt      spb.DateTime     `spb:"DtHrSit"`
	Date          spb.Date         `spb:"DtMovto"`
}

// STR0008R1Schema binds STR0008R1. DtHrSit is timezone aware on the wire.
var STR0008R1Schema = spb.MustSchema[STR0008R1]("STR0008R1", []spb.FieldDef[STR0008R1]{
	spb.Field("CodMsg", spb.At("CodMsg"), spb.Text, func(m *STR0008R1) *string { return &m.Code }),
	spb.Field("NumCtrlIF", spb.At("NumCtrlIF"), spb.Text, func(m *STR0008R1) *string { return &m.ControlNumber }),
	spb.Field("ISPBIFDebtd", spb.At("ISPBIFDebtd"), spb.Text, func(m *STR0008R1) *string { return &m.DebtorISPB }),
	spb.Field("NumCtrlSTR", spb.At("NumCtrlSTR"), spb.Text, func(m *STR0008R1) *string { return &m.STRNumber }),
	spb.Field("SitLancSTR", spb.At("SitLancSTR"), spb.EnumCodec(SettlementStatuses), func(m *STR0008R1) *SettlementStatus { return &m.Status }),
	spb.Field("DtHrSit", spb.At("DtHrSit"), spb.DateTimeCodec, func(m *STR0008R1) *spb.DateTime { return &m.StatusAt }),
	spb.Field("DtMovto", spb.At("DtMovto"), spb.DateCodec, func(m *STR0008R1) *spb.Date { return &m.Date }),
}, spb.WithNamespace(namespace("STR0008R1")))
