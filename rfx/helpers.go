package rfx

func decodeFlags(v byte, words []string) []string {
	s := []string{}
	for _, w := range words {
		if v%2 == 1 {
			s = append(s, w)
		}

		v = v / 2
	}
	return s
}
