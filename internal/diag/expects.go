package diag

import "strings"

// expectsWidth is the soft limit for a line of the expected-token list.
const expectsWidth = 70

// ExpectsNote renders the list of tokens a parser would have accepted.
// A single token yields "Expects X"; several are joined by ", " and wrapped
// so that no line grows past expectsWidth unless a single item is longer.
func ExpectsNote(expected []string) []string {
	switch len(expected) {
	case 0:
		return nil
	case 1:
		return []string{"Expects " + expected[0]}
	}

	lines := make([]string, 0, 2)
	var cur strings.Builder
	cur.WriteString("Expects one of ")
	lineStart := true
	for i, item := range expected {
		piece := item
		if i < len(expected)-1 {
			piece += ","
		}
		switch {
		case lineStart:
			cur.WriteString(piece)
			lineStart = false
		case cur.Len()+1+len(piece) > expectsWidth:
			lines = append(lines, cur.String())
			cur.Reset()
			cur.WriteString(piece)
		default:
			cur.WriteByte(' ')
			cur.WriteString(piece)
		}
	}
	lines = append(lines, cur.String())
	return []string{strings.Join(lines, "\n")}
}
