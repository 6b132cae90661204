// Package catalog declares the message types this module ships with and the
// process-wide registry that decodes them by message element.
//
// The set is small on purpose: GEN0001 and GEN0014 cover the general domain,
// STR0008 and its STR0008R1 response cover the reserve transfer system. Each
// has an exported schema value; STR0008E and GEN0001E are the error
// acknowledgement variants.
package catalog
