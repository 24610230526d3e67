package formatter

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	cases := map[int]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	if got := TimeAgo(time.Now().Add(-30 * time.Second)); got != "just now" {
		t.Errorf("got %q", got)
	}
	if got := TimeAgo(time.Now().Add(-5 * time.Minute)); got != "5m ago" {
		t.Errorf("got %q", got)
	}
	if got := TimeAgo(time.Time{}); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
}
