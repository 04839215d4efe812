package ingest

// sniffWindow is how much of the file is inspected to pick a delimiter.
const sniffWindow = 2000

// DetectSeparator inspects up to the first 2000 bytes of a CSV payload and
// returns the most frequent of comma, semicolon and tab. A non-comma
// delimiter is chosen only when it strictly beats both others; any tie
// falls back to comma.
func DetectSeparator(sample []byte) rune {
	if len(sample) > sniffWindow {
		sample = sample[:sniffWindow]
	}

	var commas, semis, tabs int
	for _, b := range sample {
		switch b {
		case ',':
			commas++
		case ';':
			semis++
		case '\t':
			tabs++
		}
	}

	switch {
	case semis > commas && semis > tabs:
		return ';'
	case tabs > commas && tabs > semis:
		return '\t'
	default:
		return ','
	}
}
