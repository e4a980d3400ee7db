package config

import (
	"encoding/json"
	"strings"
	"testing"

	yaml "gopkg.in/yaml.v3"
)

func TestSecretString_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input SecretString
		want  string
	}{
		{"empty string", "", "null"},
		{"non-empty string", "my-secret-password", `"` + SecretStringValue + `"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("MarshalJSON() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSecretString_MarshalYAML(t *testing.T) {
	tests := []struct {
		name  string
		input SecretString
		want  any
	}{
		{"empty string", "", nil},
		{"non-empty string", "my-secret-api-key", SecretStringValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.MarshalYAML()
			if err != nil {
				t.Fatalf("MarshalYAML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MarshalYAML() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSecretString_NoLeakage(t *testing.T) {
	type credentials struct {
		User  string       `json:"user" yaml:"user"`
		Token SecretString `json:"token" yaml:"token"`
	}

	in := credentials{User: "alice", Token: "super-secret-token-12345"}

	jsonBytes, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(jsonBytes), "super-secret") {
		t.Error("Secret leaked in JSON marshaling")
	}

	yamlBytes, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if strings.Contains(string(yamlBytes), "super-secret") {
		t.Error("Secret leaked in YAML marshaling")
	}
	if string(yamlBytes) != "user: alice\ntoken: <secret>\n" {
		t.Errorf("yaml.Marshal() = %q, want redacted token", string(yamlBytes))
	}
}

func TestSecretString_TypeConversion(t *testing.T) {
	// value remains readable through explicit conversion
	original := "my-secret"
	secret := SecretString(original)

	if string(secret) != original {
		t.Errorf("string(secret) = %s, want %s", string(secret), original)
	}
}
