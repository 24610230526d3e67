package commandimpl

import "testing"

func TestParsePostID(t *testing.T) {
	id, rest, err := parsePostID("7 hello there")
	if err != nil || id != 7 || rest != "hello there" {
		t.Fatalf("got %d, %q, %v", id, rest, err)
	}

	id, rest, err = parsePostID("#12")
	if err != nil || id != 12 || rest != "" {
		t.Fatalf("got %d, %q, %v", id, rest, err)
	}

	for _, bad := range []string{"", "abc", "0", "-3"} {
		if _, _, err := parsePostID(bad); err == nil {
			t.Errorf("parsePostID(%q) accepted bad input", bad)
		}
	}
}
