package provider

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleBackend translates through the Google Cloud Translation API. It is
// the fallback for corpora whose strings need no LLM-style prompting.
type GoogleBackend struct {
	credentialsFile string
}

func NewGoogleBackend(credentialsFile string) *GoogleBackend {
	return &GoogleBackend{credentialsFile: credentialsFile}
}

func (b *GoogleBackend) Name() string {
	return "google"
}

func (b *GoogleBackend) Translate(ctx context.Context, entry Entry) (string, error) {
	target, err := language.Parse(entry.TargetCode)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", entry.TargetCode, err)
	}

	opts := []option.ClientOption{}
	if b.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(b.credentialsFile))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	translations, err := client.Translate(ctx, []string{entry.SourceText}, target, &translate.Options{
		Source: language.English,
		Format: translate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}

	if len(translations) == 0 {
		return "", &ResponseError{Detail: "no translation returned"}
	}

	return translations[0].Text, nil
}
