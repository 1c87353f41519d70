// Package uart implements the query/command protocol spoken by the
// Up2Stream amplifier board over its UART.
package uart

// Commands are sent as
//
//	<NAME> ';'
//	<NAME> ':' <PARAMETER> ';'
//
// and the board replies to a query with
//
//	<NOISE>* <NAME> ':' <FIELD> (',' <FIELD>)* ';'
//
// The link carries startup banners, leftovers of earlier frames and stray
// control characters, so the parser scans for the echoed command name and
// only becomes strict once the echo is matched. Silence (a would-block read)
// before the echo starts is counted and leads to a resend of the whole frame,
// bounded by Config.MaxResends.
//
// Producer: Up2Stream firmware
// Consumer: this package
