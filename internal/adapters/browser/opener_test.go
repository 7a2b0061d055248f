package browser

import "testing"

func TestOpenURL_RejectsNonHTTP(t *testing.T) {
	o := NewOpener()

	for _, raw := range []string{"ftp://example.com", "file:///etc/hosts", "javascript:alert(1)"} {
		if err := o.OpenURL(raw); err == nil {
			t.Errorf("expected %q to be rejected", raw)
		}
	}
}

func TestOpenURL_RejectsUnparsableURL(t *testing.T) {
	if err := NewOpener().OpenURL("http://[::1"); err == nil {
		t.Error("expected an error for an unparsable URL")
	}
}
