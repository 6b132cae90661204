package catalog

import "github.com/jacoelho/spb"

// GEN0001 is the echo message exchanged to test connectivity.
type GEN0001 struct {
	spb.Control
	Code      string   `spb:"CodMsg" validate:"omitempty,len=7"`
	Sender    string   `spb:"ISPBEmissor" validate:"omitempty,len=8,numeric"`
	Recipient string   `spb:"ISPBDestinatario" validate:"omitempty,len=8,numeric"`
	Echo      *string  `spb:"MsgECO" validate:"omitempty,max=200"`
	Date      spb.Date `spb:"DtMovto"`
}

// GEN0001E is GEN0001 with error codes attached.
type GEN0001E = spb.Overlaid[GEN0001]

// GEN0001Schema binds GEN0001.
var GEN0001Schema = spb.MustSchema[GEN0001]("GEN0001", []spb.FieldDef[GEN0001]{
	spb.Field("CodMsg", spb.At("CodMsg"), spb.Text, func(m *GEN0001) *string { return &m.Code }),
	spb.Field("ISPBEmissor", spb.At("ISPBEmissor"), spb.Text, func(m *GEN0001) *string { return &m.Sender }),
	spb.Field("ISPBDestinatario", spb.At("ISPBDestinatario"), spb.Text, func(m *GEN0001) *string { return &m.Recipient }),
	spb.Optional("MsgECO", spb.At("MsgECO"), spb.Text, func(m *GEN0001) **string { return &m.Echo }),
	spb.Field("DtMovto", spb.At("DtMovto"), spb.DateCodec, func(m *GEN0001) *spb.Date { return &m.Date }),
}, spb.WithNamespace(namespace("GEN0001")))

// GEN0001ESchema is the error acknowledgement variant of GEN0001Schema.
var GEN0001ESchema = spb.MustOverlay(GEN0001Schema)

// GEN0014 summarises the messages a participant sent during the day.
type GEN0014 struct {
	spb.Control
	Code     string         `spb:"CodMsg" validate:"omitempty,len=7"`
	ISPB     string         `spb:"ISPBIF" validate:"omitempty,len=8,numeric"`
	Messages []MessageCount `spb:"Grupo_GEN0014_Msg" validate:"dive"`
	SentAt   spb.DateTime   `spb:"DtHrBC"`
	Date     spb.Date       `spb:"DtMovto"`
}

// MessageCount is one entry of the GEN0014 summary.
type MessageCount struct {
	Code  string        `spb:"CodMsgRef" validate:"omitempty,len=7"`
	Count int           `spb:"QtdMsg" validate:"gte=0"`
	Last  spb.TimeOfDay `spb:"HrUltMsg"`
}

func msgGroup(name string) spb.Location {
	return spb.At("Grupo_GEN0014_Msg", name)
}

// GEN0014Schema binds GEN0014. The document carries no namespace.
var GEN0014Schema = spb.MustSchema[GEN0014]("GEN0014", []spb.FieldDef[GEN0014]{
	spb.Field("CodMsg", spb.At("CodMsg"), spb.Text, func(m *GEN0014) *string { return &m.Code }),
	spb.Field("ISPBIF", spb.At("ISPBIF"), spb.Text, func(m *GEN0014) *string { return &m.ISPB }),
	spb.Group("Grupo_GEN0014_Msg", spb.At("Grupo_GEN0014_Msg"), spb.NewRecord(
		spb.Field("CodMsgRef", msgGroup("CodMsgRef"), spb.UpperText, func(r *MessageCount) *string { return &r.Code }),
		spb.Field("QtdMsg", msgGroup("QtdMsg"), spb.IntCodec, func(r *MessageCount) *int { return &r.Count }),
		spb.Field("HrUltMsg", msgGroup("HrUltMsg"), spb.TimeCodec, func(r *MessageCount) *spb.TimeOfDay { return &r.Last }),
	), func(m *GEN0014) *[]MessageCount { return &m.Messages }),
	spb.Field("DtHrBC", spb.At("DtHrBC"), spb.DateTimeCodec, func(m *GEN0014) *spb.DateTime { return &m.SentAt }),
	spb.Field("DtMovto", spb.At("DtMovto"), spb.DateCodec, func(m *GEN0014) *spb.Date { return &m.Date }),
})

func namespace(code string) string {
	return "http://www.bcb.gov.br/SPB/" + code + ".xsd"
}
