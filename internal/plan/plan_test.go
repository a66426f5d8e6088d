package plan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRoundTrip(t *testing.T) {
	var original Plan
	require.NoError(t, json.Unmarshal([]byte(validPlanJSON), &original))

	out, err := original.Indent()
	require.NoError(t, err)

	var reloaded Plan
	require.NoError(t, json.Unmarshal(out, &reloaded))
	assert.Equal(t, original, reloaded, "download-then-reload must preserve the plan")
}

func TestPlanJSONKeys(t *testing.T) {
	out, err := (&Plan{}).Indent()
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	for _, key := range []string{
		"resumen", "puntos_mantenimiento", "ref_partes", "fuentes",
		"consumibles_recomendados", "chequeos_criticos", "suposiciones",
	} {
		assert.Contains(t, m, key)
	}
	assert.Len(t, m, 7, "no extra top-level keys")
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t,
		"mantenimiento_John_Deere_6120M_250h.json",
		ArtifactName("John Deere", "6120M", 250))
	assert.Equal(t,
		"mantenimiento_Case_IH_Puma_150_1000h.json",
		ArtifactName("Case IH", "Puma 150", 1000))
}

func TestUnknownSystems(t *testing.T) {
	p := Plan{Puntos: []Sistema{
		{Sistema: "Motor y admisión"},
		{Sistema: "Turbina warp"},
		{Sistema: "Neumáticos"},
	}}
	assert.Equal(t, []string{"Turbina warp"}, p.UnknownSystems())

	clean := Plan{Puntos: []Sistema{{Sistema: "Frenos"}}}
	assert.Empty(t, clean.UnknownSystems())
}
