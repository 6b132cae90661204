package spb_test

import (
	stderrors "errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/spb"
	"github.com/jacoelho/spb/errors"
	"github.com/jacoelho/spb/internal/xmltree"
)

var interElementSpace = regexp.MustCompile(`>\s+<`)

func normalizeSpace(b []byte) string {
	return interElementSpace.ReplaceAllString(strings.TrimSpace(string(b)), "><")
}

func TestRoundTrip(t *testing.T) {
	s := newTransferSchema(t)
	tests := []struct {
		name   string
		mutate func(*transfer)
	}{
		{name: "full", mutate: func(*transfer) {}},
		{name: "no optionals", mutate: func(m *transfer) {
			m.Note, m.PersonKind, m.Document = nil, nil, nil
		}},
		{name: "no group entries", mutate: func(m *transfer) { m.Items = nil }},
		{name: "empty optional text", mutate: func(m *transfer) { m.Note = ptr("") }},
		{name: "payment account", mutate: func(m *transfer) {
			m.AccountKind = accountPayment
			m.Branch, m.Account = nil, nil
			m.PaymentAccount = ptr("99887766")
		}},
		{name: "aware timestamp", mutate: func(m *transfer) {
			m.Created = spb.AwareDateTime(time.Date(2025, time.December, 4, 13, 21, 0, 0, time.FixedZone("BRT", -3*3600)))
		}},
		{name: "business document", mutate: func(m *transfer) {
			m.PersonKind = ptr(personBusiness)
			m.Document = ptr("11222333000181")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validTransfer()
			tt.mutate(&v)

			data, err := s.Encode(v)
			require.NoError(t, err)

			got, err := s.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, v, got)

			again, err := s.Encode(got)
			require.NoError(t, err)
			assert.Equal(t, normalizeSpace(data), normalizeSpace(again))
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	s := newTransferSchema(t)
	v := validTransfer()
	v.Note, v.PersonKind, v.Document = nil, nil, nil
	v.Items = v.Items[1:]

	data, err := s.Encode(v)
	require.NoError(t, err)

	want := xmltree.Declaration + `
<DOC xmlns="http://www.bcb.gov.br/SPB/STR0008.xsd">
  <BCMSG>
    <IdentdEmissor>00038166</IdentdEmissor>
    <IdentdDestinatario>00000000</IdentdDestinatario>
    <DomSist>SPB01</DomSist>
    <NUOp>00038166202512040000001</NUOp>
  </BCMSG>
  <SISMSG>
    <STR0008>
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
      <Grupo_Item>
        <RefItem>A2</RefItem>
        <VlrItem>20.0</VlrItem>
      </Grupo_Item>
    </STR0008>
  </SISMSG>
</DOC>
`
	assert.Equal(t, want, string(data))
}

func TestEncodeWithoutNamespaceOrIndent(t *testing.T) {
	s, err := spb.NewSchema[transfer]("STR0008", transferFields())
	require.NoError(t, err)
	v := validTransfer()
	v.Items = nil

	data, err := s.EncodeWith(v, spb.EncodeOptions{OmitDeclaration: true})
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "<DOC><BCMSG><IdentdEmissor>"), out)
	assert.NotContains(t, out, "xmlns")
	assert.NotContains(t, out, "\n")
}

func TestOptionalOmission(t *testing.T) {
	s := newTransferSchema(t)
	v := validTransfer()
	v.Note = nil
	v.Items[0].At = nil

	data, err := s.Encode(v)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<Hist")
	assert.NotContains(t, string(data), "<HrItem")
	assert.NotContains(t, string(data), "<CtPgtoDebtd")

	got, err := s.Decode([]byte(frame("STR0008", minimalTransferBody)))
	require.NoError(t, err)
	assert.Nil(t, got.Note)
	assert.Nil(t, got.PersonKind)
	assert.Nil(t, got.PaymentAccount)
	assert.Nil(t, got.Items)
}

func TestEmptyOptionalTextIsPresent(t *testing.T) {
	s := newTransferSchema(t)
	v := validTransfer()
	v.Note = ptr("")

	data, err := s.Encode(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<Hist/>")

	got, err := s.Decode(data)
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "", *got.Note)
}

func TestDateTimeFormatBranch(t *testing.T) {
	s := newTransferSchema(t)

	aware, err := spb.ParseDateTime("2025-12-04T13:21:00+00:00")
	require.NoError(t, err)
	v := validTransfer()
	v.Created = aware
	data, err := s.Encode(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<DtHrCriacao>2025-12-04 13:21:00+00:00</DtHrCriacao>")

	v.Created = spb.NaiveDateTime(time.Date(2025, time.November, 20, 15, 30, 0, 0, time.UTC))
	data, err = s.Encode(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<DtHrCriacao>2025-11-20T15:30:00</DtHrCriacao>")
}

func TestDecimalPreservation(t *testing.T) {
	s := newTransferSchema(t)

	fromFloat, err := spb.DecimalFromFloat(120.0)
	require.NoError(t, err)

	v := validTransfer()
	v.Amount = fromFloat
	a, err := s.Encode(v)
	require.NoError(t, err)

	v.Amount = spb.MustDecimal(" 120.0 ")
	b, err := s.Encode(v)
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
	assert.Contains(t, string(a), "<VlrLanc>120.0</VlrLanc>")
}

func TestDecodeMissingFieldsAggregated(t *testing.T) {
	s := newTransferSchema(t)
	body := strings.NewReplacer(
		"<CodMsg>STR0008</CodMsg>", "",
		"<DtMovto>2025-12-04</DtMovto>", "",
		"<FinlddCli>1</FinlddCli>", "",
	).Replace(minimalTransferBody)

	_, err := s.Decode([]byte(frame("STR0008", body)))
	require.Error(t, err)

	list, ok := errors.AsValidations(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"CodMsg", "DtMovto", "FinlddCli"}, errors.ValidationList(list).Fields())
	for _, v := range list {
		assert.Equal(t, string(errors.ErrMissingField), v.Code)
	}
}

func TestDecodeMissingControlAndGroupMembers(t *testing.T) {
	s := newTransferSchema(t)
	doc := strings.Replace(frame("STR0008", minimalTransferBody+
		`<Grupo_Item><VlrItem>1.00</VlrItem></Grupo_Item>`), "<DomSist>SPB01</DomSist>", "", 1)

	_, err := s.Decode([]byte(doc))
	list, ok := errors.AsValidations(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"DomSist", "Itens[0].RefItem"}, errors.ValidationList(list).Fields())
}

func TestDecodePresentButEmpty(t *testing.T) {
	s := newTransferSchema(t)
	body := strings.Replace(minimalTransferBody, "<CodMsg>STR0008</CodMsg>", "<CodMsg/>", 1)

	got, err := s.Decode([]byte(frame("STR0008", body)))
	require.NoError(t, err)
	assert.Equal(t, "", got.Code)

	// A value built in code has no presence record, so empty means missing.
	err = s.Validate(&got)
	list, ok := errors.AsValidations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"CodMsg"}, errors.ValidationList(list).Fields())
}

func TestDecodeInvalidValuesAggregated(t *testing.T) {
	s := newTransferSchema(t)
	body := strings.NewReplacer(
		"<DtMovto>2025-12-04</DtMovto>", "<DtMovto>2025-02-30</DtMovto>",
		"<TpCtDebtd>CC</TpCtDebtd>", "<TpCtDebtd>XX</TpCtDebtd>",
		"<VlrLanc>120.0</VlrLanc>", "<VlrLanc>12,0</VlrLanc>",
	).Replace(minimalTransferBody)

	_, err := s.Decode([]byte(frame("STR0008", body)))
	list, ok := errors.AsValidations(err)
	require.True(t, ok)

	byField := map[string]errors.Validation{}
	for _, v := range list {
		byField[v.Field] = v
	}
	require.Len(t, byField, 3, "%v", err)
	assert.Equal(t, string(errors.ErrInvalidValue), byField["DtMovto"].Code)
	assert.Equal(t, "2025-02-30", byField["DtMovto"].Actual)
	assert.Equal(t, string(errors.ErrUnknownMember), byField["TpCtDebtd"].Code)
	assert.Equal(t, "DOC/SISMSG/STR0008/Grupo_Debtd/TpCtDebtd", byField["TpCtDebtd"].Path)
	assert.Equal(t, string(errors.ErrInvalidValue), byField["VlrLanc"].Code)
}

func TestDecodeStructuralMismatch(t *testing.T) {
	s := newTransferSchema(t)
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{name: "root", doc: `<MSG><SISMSG><STR0008/></SISMSG></MSG>`, expected: "DOC"},
		{name: "no body", doc: `<DOC><BCMSG/></DOC>`, expected: "SISMSG"},
		{name: "other message", doc: frame("STR0010", minimalTransferBody), expected: "STR0008"},
		{name: "two messages", doc: `<DOC><SISMSG><STR0008/><STR0008/></SISMSG></DOC>`, expected: "STR0008"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Decode([]byte(tt.doc))
			var mismatch *errors.StructuralMismatchError
			require.True(t, stderrors.As(err, &mismatch), "%v", err)
			assert.Equal(t, tt.expected, mismatch.Expected)
			assert.True(t, errors.IsFatal(err))
			_, aggregated := errors.AsValidations(err)
			assert.False(t, aggregated)
		})
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	s := newTransferSchema(t)
	for _, doc := range []string{
		`<DOC><SISMSG>`,
		`<!DOCTYPE DOC [<!ENTITY x "y">]><DOC>&x;</DOC>`,
		`not xml`,
	} {
		_, err := s.Decode([]byte(doc))
		var parseErr *errors.ParseError
		assert.True(t, stderrors.As(err, &parseErr), "input %q: %v", doc, err)
		assert.Equal(t, errors.ErrXMLParse, errors.Code(err))
	}
}

func TestEncodeRejectsInvalidMessage(t *testing.T) {
	s := newTransferSchema(t)
	v := validTransfer()
	v.Code = ""
	v.Amount = spb.Decimal{}

	data, err := s.Encode(v)
	assert.Nil(t, data)
	list, ok := errors.AsValidations(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"CodMsg", "VlrLanc"}, errors.ValidationList(list).Fields())
}

func TestDecodeReader(t *testing.T) {
	s := newTransferSchema(t)
	got, err := s.DecodeReader(strings.NewReader(frame("STR0008", minimalTransferBody)))
	require.NoError(t, err)
	assert.Equal(t, accountCurrent, got.AccountKind)
	assert.Equal(t, "120.0", got.Amount.String())
}

func TestEncodeAny(t *testing.T) {
	s := newTransferSchema(t)
	v := validTransfer()

	byValue, err := s.EncodeAny(v, spb.DefaultEncodeOptions)
	require.NoError(t, err)
	byPointer, err := s.EncodeAny(&v, spb.DefaultEncodeOptions)
	require.NoError(t, err)
	assert.Equal(t, byValue, byPointer)

	_, err = s.EncodeAny("STR0008", spb.DefaultEncodeOptions)
	assert.Error(t, err)
	_, err = s.EncodeAny((*transfer)(nil), spb.DefaultEncodeOptions)
	assert.Error(t, err)
}
