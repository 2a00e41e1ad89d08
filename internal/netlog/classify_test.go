package netlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Outcome
	}{
		{"success", "✅ Conexión establecida", OutcomeSuccess},
		{"failure", "❌ Sin respuesta de 10.0.0.1", OutcomeFailure},
		{"warning", "⚠️ Pérdida de paquetes: 5%", OutcomeWarning},
		{"plain", "Iniciando pruebas de red", OutcomeNone},
		{"empty", "", OutcomeNone},
		{"success beats failure", "✅ recuperado tras ❌", OutcomeSuccess},
		{"failure beats warning", "⚠️ ❌ timeout", OutcomeFailure},
		{"warning without variation selector is not matched", "⚠ degradado", OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []TestKind
	}{
		{"connectivity", "🔍 Prueba de conectividad: gateway", []TestKind{TestConnectivity}},
		{"streaming upper case", "🎥 PRUEBA DE STREAMING REMOTO: rtsp", []TestKind{TestStreaming}},
		{"both", "prueba de conectividad para streaming remoto", []TestKind{TestConnectivity, TestStreaming}},
		{"none", "✅ Latencia a 8.8.8.8: 12ms", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.line))
		})
	}
}

func TestExtractLatency(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   int
		wantOK bool
	}{
		{"simple", "✅ Latencia a X: 42ms", 42, true},
		{"host with dots", "✅ Latencia a 192.168.1.10: 7ms", 7, true},
		{"space before unit", "✅ Latencia a X: 15 ms", 15, true},
		{"unparsable value", "✅ Latencia a X: fastms", 0, false},
		{"decimal value", "✅ Latencia a X: 12.5ms", 0, false},
		{"no separator", "✅ Latencia a X 42ms", 0, false},
		{"no latency phrase", "✅ Ping X: 42ms", 0, false},
		{"no unit anywhere", "✅ Latencia a X: 42", 0, false},
		{"second separator", "✅ Latencia a X: 42ms: extra", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractLatency(tt.line)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractLatency(%q) = (%d, %v), want (%d, %v)", tt.line, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
