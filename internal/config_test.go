package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("BLUGE_FILEPATH", t.TempDir())

	config, err := Load()
	req.NoError(err)
	req.Equal(8000, config.Port)
	req.Equal("lexicon", config.ClassifierBackend)
	req.Equal(5*time.Second, config.ClassifierTimeout)
	req.Equal(2, config.SafeguardTriggerAbove)
	req.Nil(config.RandomSeed)
	req.Nil(config.Keywords())
}

func TestLoad_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("BLUGE_FILEPATH", t.TempDir())
	t.Setenv("CLASSIFIER_BACKEND", "grpc")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("SAFEGUARD_KEYWORDS", "awful, ,dreadful ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	config, err := Load()
	req.NoError(err)
	req.Equal("grpc", config.ClassifierBackend)
	req.Equal(42, *config.RandomSeed)
	req.Equal([]string{"awful", "dreadful"}, config.Keywords())
	req.Equal([]string{"http://localhost:3000"}, config.AllowedOrigins())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Missing badger path", env: map[string]string{"BLUGE_FILEPATH": "/tmp/bluge"}},
		{name: "Unknown backend", env: map[string]string{"BADGER_FILEPATH": "/tmp/b", "BLUGE_FILEPATH": "/tmp/i", "CLASSIFIER_BACKEND": "oracle"}},
		{name: "Port out of range", env: map[string]string{"BADGER_FILEPATH": "/tmp/b", "BLUGE_FILEPATH": "/tmp/i", "PORT": "70000"}},
		{name: "Threshold out of range", env: map[string]string{"BADGER_FILEPATH": "/tmp/b", "BLUGE_FILEPATH": "/tmp/i", "SAFEGUARD_TRIGGER_ABOVE": "9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BADGER_FILEPATH", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestCharacterRune(t *testing.T) {
	req := require.New(t)
	r, err := CharacterRune("#")
	req.NoError(err)
	req.Equal('#', r)

	_, err = CharacterRune("**")
	req.Error(err)
}
