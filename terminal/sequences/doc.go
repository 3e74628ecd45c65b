/*
Package sequences groups the typed payloads of dispatched control sequences.

Programs talk to a terminal only by writing bytes to the pty. Control
sequences tell text apart from commands; most begin with ESC (0x1B).

  - csi: Control Sequence Introducer commands, ESC [ params intermediates final
  - esc: two or three byte escape sequences
  - osc: Operating System Commands, ESC ] text BEL|ST
  - dcs: Device Control Strings, accepted and passed through

SOS, PM and APC strings are consumed and dropped by the parser.
*/
package sequences
