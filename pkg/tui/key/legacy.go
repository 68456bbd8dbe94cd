// ABOUTME: Legacy CSI and SS3 escape sequences emitted by xterm-compatible terminals
// ABOUTME: Maps raw byte strings to navigation keys; unknown sequences parse as KeyUnknown

package key

// legacySequences covers arrows, paging, home/end and delete in both CSI and
// SS3 (application cursor mode) encodings, plus the rxvt/linux console
// numeric forms of home and end.
var legacySequences = map[string]Key{
	"\x1b[A":  {Type: KeyUp},
	"\x1b[B":  {Type: KeyDown},
	"\x1b[C":  {Type: KeyRight},
	"\x1b[D":  {Type: KeyLeft},
	"\x1b[H":  {Type: KeyHome},
	"\x1b[F":  {Type: KeyEnd},
	"\x1b[1~": {Type: KeyHome},
	"\x1b[4~": {Type: KeyEnd},
	"\x1b[7~": {Type: KeyHome},
	"\x1b[8~": {Type: KeyEnd},
	"\x1b[5~": {Type: KeyPageUp},
	"\x1b[6~": {Type: KeyPageDown},
	"\x1b[3~": {Type: KeyDelete},
	"\x1b[Z":  {Type: KeyBackTab, Shift: true},

	"\x1bOA": {Type: KeyUp},
	"\x1bOB": {Type: KeyDown},
	"\x1bOC": {Type: KeyRight},
	"\x1bOD": {Type: KeyLeft},
	"\x1bOH": {Type: KeyHome},
	"\x1bOF": {Type: KeyEnd},
}
