package catalog

import (
	"github.com/jacoelho/spb"
	"github.com/jacoelho/spb/pkg/codedenum"
)

// PersonKind is the taxpayer kind of a client (TpPessoa).
type PersonKind uint8

const (
	Individual PersonKind = iota + 1
	Business
)

// PersonKinds maps PersonKind to its wire codes.
var PersonKinds = codedenum.MustNew("TpPessoa",
	codedenum.Def[PersonKind]{Member: Individual, Name: "INDIVIDUAL", Value: "F", Wire: spb.IndividualPerson},
	codedenum.Def[PersonKind]{Member: Business, Name: "BUSINESS", Value: "J", Wire: spb.BusinessPerson},
)

// AccountKind is the account type of a party (TpCt).
type AccountKind uint8

const (
	CurrentAccount AccountKind = iota + 1
	InvestmentAccount
	PaymentAccount
	SavingsAccount
)

// AccountKinds maps AccountKind to its wire codes.
var AccountKinds = codedenum.MustNew("TpCt",
	codedenum.Def[AccountKind]{Member: CurrentAccount, Name: "CURRENT", Value: "1", Wire: "CC"},
	codedenum.Def[AccountKind]{Member: InvestmentAccount, Name: "INVESTMENT", Value: "2", Wire: "CI"},
	codedenum.Def[AccountKind]{Member: PaymentAccount, Name: "PAYMENT", Value: "3", Wire: spb.PaymentAccountKind},
	codedenum.Def[AccountKind]{Member: SavingsAccount, Name: "SAVINGS", Value: "4", Wire: "PP"},
)

// Purpose is the client purpose of a transfer (FinlddCli).
type Purpose uint8

const (
	PurposeTaxes    Purpose = 1
	PurposeRent     Purpose = 3
	PurposeSalary   Purpose = 10
	PurposeSupplier Purpose = 15
	PurposeOther    Purpose = 99
)

const otherPurposeWire = "99"

// Purposes maps Purpose to its wire codes. PurposeOther requires Hist.
var Purposes = codedenum.MustNew("FinlddCli",
	codedenum.Def[Purpose]{Member: PurposeTaxes, Name: "TAXES", Value: "1", Wire: "1"},
	codedenum.Def[Purpose]{Member: PurposeRent, Name: "RENT", Value: "3", Wire: "3"},
	codedenum.Def[Purpose]{Member: PurposeSalary, Name: "SALARY", Value: "10", Wire: "10"},
	codedenum.Def[Purpose]{Member: PurposeSupplier, Name: "SUPPLIER", Value: "15", Wire: "15"},
	codedenum.Def[Purpose]{Member: PurposeOther, Name: "OTHER", Value: "99", Wire: otherPurposeWire},
)

// SettlementStatus is the outcome reported in STR0008R1 (SitLancSTR). Its
// wire codes differ from the internal values.
type SettlementStatus uint8

const (
	Settled SettlementStatus = iota + 1
	Queued
	Rejected
	Cancelled
)

// SettlementStatuses maps SettlementStatus to its wire codes.
var SettlementStatuses = codedenum.MustNew("SitLancSTR",
	codedenum.Def[SettlementStatus]{Member: Settled, Name: "SETTLED", Value: "1", Wire: "LQDADO"},
	codedenum.Def[SettlementStatus]{Member: Queued, Name: "QUEUED", Value: "2", Wire: "AGNDD"},
	codedenum.Def[SettlementStatus]{Member: Rejected, Name: "REJECTED", Value: "3", Wire: "RJTD"},
	codedenum.Def[SettlementStatus]{Member: Cancelled, Name: "CANCELLED", Value: "4", Wire: "CANCD"},
)
