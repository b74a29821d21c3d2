package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		rawKey    string
		prefix    string
		inferred  string
		defaultNs string
		want      EffectiveReference
	}{
		{"default namespace", "pizza", "", "", "default", EffectiveReference{"default", "pizza"}},
		{"prefix joined", "appName", "common", "", "default", EffectiveReference{"default", "common.appName"}},
		{"inferred namespace", "title", "", "common", "default", EffectiveReference{"common", "title"}},
		{"inferred namespace and prefix", "home", "nav", "common", "default", EffectiveReference{"common", "nav.home"}},
		{"explicit namespace", "default:pizza", "", "", "default", EffectiveReference{"default", "pizza"}},
		{"explicit namespace beats inferred", "errors:http.notFound", "", "common", "default", EffectiveReference{"errors", "http.notFound"}},
		{"namespace carried by prefix", "appName", "common:nav", "", "default", EffectiveReference{"common", "nav.appName"}},
		{"first separator splits", "a:b:c", "", "", "default", EffectiveReference{"a", "b:c"}},
		{"empty namespace before separator", ":key", "", "", "default", EffectiveReference{"", "key"}},
		{"empty key", "", "", "", "default", EffectiveReference{"default", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.rawKey, tt.prefix, tt.inferred, tt.defaultNs))
		})
	}
}
