// Copyright (c) 2024 XNS
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package registry

// isValidSlug reports whether s is a well-formed slug of at most max bytes: lowercase letters,
// digits and hyphens, no leading/trailing hyphen, no two hyphens in a row. Total over all
// strings; never errs.
func isValidSlug(s string, max int) bool {
	if len(s) == 0 || len(s) > max {
		return false
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	prevHyphen := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '-':
			if prevHyphen {
				return false
			}
			prevHyphen = true
		case 'a' <= c && c <= 'z', '0' <= c && c <= '9':
			prevHyphen = false
		default:
			return false
		}
	}
	return true
}
