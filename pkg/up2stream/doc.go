// Package up2stream is a typed API for the Arylic Up2Stream amplifier board
// on top of the UART protocol engine in package uart.
//
// Every method is a single query or command, except playback controls which
// first check the input source supports them.
package up2stream
