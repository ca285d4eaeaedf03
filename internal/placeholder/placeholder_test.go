package placeholder

import (
	"reflect"
	"testing"
)

func TestProtectRestore_RoundTrip(t *testing.T) {
	tests := []string{
		"Welcome, $USER, to ${DISTRO_NAME}",
		"Downloaded %d of %d files (%s)",
		"Visit https://example.com/docs for help",
		"Press <b>Enter</b> to continue",
		"Mixed: $HOME holds %s, see https://example.com <i>now</i>",
	}

	for _, text := range tests {
		protected, originals := Protect(text)
		if restored := Restore(protected, originals); restored != text {
			t.Errorf("round trip failed for %q: got %q", text, restored)
		}
	}
}

func TestProtect_MarkersReplaceSegments(t *testing.T) {
	protected, originals := Protect("Hello $USER, %d new messages")

	if protected != "Hello [PH0], [PH1] new messages" {
		t.Errorf("unexpected protected text: %q", protected)
	}
	want := []string{"$USER", "%d"}
	if !reflect.DeepEqual(originals, want) {
		t.Errorf("expected originals %v, got %v", want, originals)
	}
}

func TestProtect_NoProtectedContent(t *testing.T) {
	protected, originals := Protect("Just plain words")
	if protected != "Just plain words" {
		t.Errorf("text without placeholders must pass through, got %q", protected)
	}
	if len(originals) != 0 {
		t.Errorf("expected no captured originals, got %v", originals)
	}
}

func TestProtect_URLBeforeVariable(t *testing.T) {
	// The $ inside a URL must not be split out as a separate marker.
	protected, originals := Protect("See https://example.com/$path for details")
	if len(originals) != 1 {
		t.Fatalf("expected 1 original, got %v", originals)
	}
	if protected != "See [PH0] for details" {
		t.Errorf("unexpected protected text: %q", protected)
	}
}

func TestMissing(t *testing.T) {
	_, originals := Protect("$A and $B and $C")

	missing := Missing("[PH0] y [PH2]", originals)
	if !reflect.DeepEqual(missing, []int{1}) {
		t.Errorf("expected missing [1], got %v", missing)
	}

	if m := Missing("[PH0] [PH1] [PH2]", originals); m != nil {
		t.Errorf("expected no missing markers, got %v", m)
	}
}

func TestRestore_UnknownIndexLeftAlone(t *testing.T) {
	got := Restore("text [PH7] more", []string{"$A"})
	if got != "text [PH7] more" {
		t.Errorf("unknown marker must be left as-is, got %q", got)
	}
}
