package artifact

import "bytes"

// Marker is the line separating program bytes from the data line.
const Marker = "__END__"

// markerLine returns "\n__END__\n". It is assembled at runtime so the full
// line never appears as a literal in the compiled program.
func markerLine() []byte {
	line := make([]byte, 0, len(Marker)+2)
	line = append(line, '\n')
	line = append(line, Marker...)
	return append(line, '\n')
}

// locate returns the offset just past the marker line. The marker must be
// the last one in content and be followed by at most one line, so marker
// bytes that happen to occur inside the program are never taken for the
// boundary.
func locate(content []byte) (int, error) {
	line := markerLine()

	var end int
	if i := bytes.LastIndex(content, line); i >= 0 {
		end = i + len(line)
	} else if bytes.HasPrefix(content, line[1:]) {
		end = len(line) - 1
	} else {
		return 0, ErrBoundaryNotFound
	}

	tail := bytes.TrimSuffix(content[end:], []byte{'\n'})
	if bytes.IndexByte(tail, '\n') >= 0 {
		return 0, ErrBoundaryNotFound
	}
	return end, nil
}
