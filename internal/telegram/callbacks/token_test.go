package callbacks

import "testing"

func TestParsePrefixedID(t *testing.T) {
	tests := []struct {
		token  string
		wantID int64
		wantOK bool
	}{
		{"buyProduct-3", 3, true},
		{"buyProduct-42", 42, true},
		{"buyProduct-", 0, false},
		{"buyProduct-abc", 0, false},
		{"buyProduct-0", 0, false},
		{"buyProduct--1", 0, false},
		{"buyProduct-3x", 0, false},
		{"products", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		id, err := ParsePrefixedID(tc.token, "buyProduct-")
		if tc.wantOK {
			if err != nil {
				t.Errorf("token %q: unexpected error: %v", tc.token, err)
				continue
			}
			if id != tc.wantID {
				t.Errorf("token %q: id = %d, want %d", tc.token, id, tc.wantID)
			}
			continue
		}
		if err == nil {
			t.Errorf("token %q: expected error, got id %d", tc.token, id)
		}
	}
}
