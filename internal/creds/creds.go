// Package creds resolves the Google service-account credential used by the
// generation backend.
package creds

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/api/option"
)

// Source carries the raw credential material from configuration.
// Resolution order: APIKey, then SAJSON (a complete service-account JSON
// document), then the three discrete fields.
type Source struct {
	APIKey string

	SAJSON string

	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// ConfigurationError names exactly which credential fields are absent.
// It is fatal for the session until corrected externally.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing credentials: define GOOGLE_SA_JSON or set: " + strings.Join(e.Missing, ", ")
}

// Resolve turns the source into a client option for the genai client.
func Resolve(s Source) (option.ClientOption, error) {
	if key := strings.TrimSpace(s.APIKey); key != "" {
		return option.WithAPIKey(key), nil
	}

	if sa := strings.TrimSpace(s.SAJSON); sa != "" {
		var info map[string]any
		if err := json.Unmarshal([]byte(sa), &info); err != nil {
			return nil, fmt.Errorf("GOOGLE_SA_JSON is not valid JSON: %w", err)
		}
		if pk, _ := info["private_key"].(string); pk != "" {
			info["private_key"] = normalizePrivateKey(pk)
		}
		doc, err := json.Marshal(info)
		if err != nil {
			return nil, fmt.Errorf("re-encode GOOGLE_SA_JSON: %w", err)
		}
		return option.WithCredentialsJSON(doc), nil
	}

	projectID := strings.TrimSpace(s.ProjectID)
	clientEmail := strings.TrimSpace(s.ClientEmail)
	privateKey := normalizePrivateKey(s.PrivateKey)

	var missing []string
	if projectID == "" {
		missing = append(missing, "GOOGLE_PROJECT_ID")
	}
	if clientEmail == "" {
		missing = append(missing, "GOOGLE_CLIENT_EMAIL")
	}
	if privateKey == "" {
		missing = append(missing, "GOOGLE_PRIVATE_KEY")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	doc, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   projectID,
		"client_email": clientEmail,
		"private_key":  privateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("encode service account document: %w", err)
	}
	return option.WithCredentialsJSON(doc), nil
}

// normalizePrivateKey repairs keys pasted through env vars: surrounding
// quotes stripped and literal \n sequences turned into real newlines.
func normalizePrivateKey(pk string) string {
	pk = strings.TrimSpace(pk)
	pk = strings.Trim(pk, `"'`)
	return strings.ReplaceAll(pk, `\n`, "\n")
}
