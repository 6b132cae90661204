// Package spb encodes and decodes the fixed-layout XML documents of the
// Brazilian payment system message catalog.
//
// Every document has the same frame:
//
//	<DOC xmlns="...">
//	  <BCMSG>
//	    <IdentdEmissor/> <IdentdDestinatario/> <DomSist/> <NUOp/>
//	  </BCMSG>
//	  <SISMSG>
//	    <CODE> ...fields and repeated groups... </CODE>
//	  </SISMSG>
//	</DOC>
//
// A message type is a Go struct that embeds Control. Its Schema is declared
// once with Field, Optional, and Group bindings, each naming a Codec and the
// Location of the value below the message element:
//
//	type GEN0001 struct {
//		spb.Control
//		Text string `spb:"MsgTxt" validate:"omitempty,max=200"`
//	}
//
//	var gen0001 = spb.MustSchema[GEN0001]("GEN0001", []spb.FieldDef[GEN0001]{
//		spb.Field("MsgTxt", spb.At("MsgTxt"), spb.Text, func(m *GEN0001) *string { return &m.Text }),
//	})
//
// Encode validates and renders a value; Decode parses, checks the frame,
// reads every binding, and runs the same validation. Per-field problems are
// reported together as an errors.ValidationList. Struct tags named validate
// add length and format constraints; the spb tag must repeat the binding name
// so both report the same field.
//
// Overlay derives the error-acknowledgement variant of a schema, and a
// Registry dispatches generic decoding by message element and version.
package spb
