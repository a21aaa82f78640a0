package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", ":8080", "-x", "junk"}, []string{"-a"})
	require.Equal(t, []string{"-a", ":8080"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-d=dsn"}, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-v", "-a", ":9090"}, []string{"-v", "-a"})
	require.Equal(t, []string{"-v", "-a", ":9090"}, got)
}

func TestFilterArgs_Empty(t *testing.T) {
	got := FilterArgs(nil, []string{"-a"})
	require.Empty(t, got)
	require.NotNil(t, got)
}
