package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestEmbeddedBlock(t *testing.T) {
	raw := `#!/bin/sh
# Installer bootstrap.

echo starting

@i18n-begin
{
  "Welcome": "Welcome to the installer",
  "Cancel": "",
  "@@locale": "en"
}
@i18n-end

echo done
`

	c, err := EmbeddedBlock(raw, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Welcome", "Cancel"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}

	// Empty value normalizes to the key.
	if v, _ := c.Get("Cancel"); v != "Cancel" {
		t.Errorf("expected empty value to normalize to key, got %q", v)
	}
	// Reserved metadata key excluded.
	if c.Has("@@locale") {
		t.Error("expected @@locale to be excluded from the corpus")
	}
}

func TestEmbeddedBlock_MissingBeginMarker(t *testing.T) {
	_, err := EmbeddedBlock(`{"a": "b"}`, "", "")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestEmbeddedBlock_MissingEndMarker(t *testing.T) {
	_, err := EmbeddedBlock(`@i18n-begin {"a": "b"}`, "", "")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestEmbeddedBlock_NoObjectBetweenMarkers(t *testing.T) {
	_, err := EmbeddedBlock(`@i18n-begin nothing here @i18n-end`, "", "")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestEmbeddedBlock_CustomMarkers(t *testing.T) {
	raw := `<<STRINGS {"Yes": "Yes"} STRINGS>>`
	c, err := EmbeddedBlock(raw, "<<STRINGS", "STRINGS>>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Has("Yes") {
		t.Error("expected key 'Yes' in corpus")
	}
}

func TestFlatJSON(t *testing.T) {
	data := []byte(`{
		"@@locale": "en",
		"@@language": "English",
		"@@native": "English",
		"@@notice": "generated",
		"Install": "Install now",
		"Retry": ""
	}`)

	c, err := FlatJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Install", "Retry"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	if v, _ := c.Get("Retry"); v != "Retry" {
		t.Errorf("expected normalized value 'Retry', got %q", v)
	}
}

func TestFlatJSON_Malformed(t *testing.T) {
	_, err := FlatJSON([]byte(`not json`))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestFlatYAML(t *testing.T) {
	data := []byte("Welcome: Welcome aboard\nQuit: \"\"\n\"@@locale\": en\n")

	c, err := FlatYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Welcome", "Quit"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	if v, _ := c.Get("Quit"); v != "Quit" {
		t.Errorf("expected normalized value 'Quit', got %q", v)
	}
}

func TestFlatYAML_NestedMappingRejected(t *testing.T) {
	_, err := FlatYAML([]byte("outer:\n  inner: value\n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError for nested mapping, got %v", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		location string
		want     Format
	}{
		{"ui/strings.json", FormatJSON},
		{"https://raw.githubusercontent.com/acme/app/main/strings.JSON", FormatJSON},
		{"strings.yaml", FormatYAML},
		{"strings.yml", FormatYAML},
		{"setup.sh", FormatEmbedded},
		{"https://github.com/acme/app/blob/main/install", FormatEmbedded},
		// Query strings and fragments don't hide the extension.
		{"https://example.com/locales/en.json?ref=main", FormatJSON},
		{"https://example.com/locales/en.yaml#section", FormatYAML},
		{"https://example.com/install.sh?ref=main", FormatEmbedded},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.location); got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

func TestParse_Dispatch(t *testing.T) {
	c, err := Parse(`{"k": "v"}`, FormatJSON, "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Has("k") {
		t.Error("expected FormatJSON dispatch to parse flat JSON")
	}
}
