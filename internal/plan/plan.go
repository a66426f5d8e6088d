// Package plan builds maintenance-plan prompts, drives the generation
// backend and turns its raw output into a structured plan.
package plan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Systems is the fixed set of tractor systems the prompt instructs the
// model to group tasks under. It is a prompt-level contract: the parser
// accepts plans that violate it, downstream surfaces only warn.
var Systems = []string{
	"Motor y admisión",
	"Refrigeración",
	"Combustible",
	"Transmisión",
	"Hidráulico",
	"Frenos",
	"Dirección",
	"Eje delantero",
	"PTO/TDF",
	"Electricidad",
	"Cabina",
	"Engrase general",
	"Neumáticos",
}

// Plan is the validated result of one generation request. The JSON keys
// are the exact contract the prompt enforces on the backend and the
// download artifact carries.
type Plan struct {
	Resumen     Resumen      `json:"resumen"`
	Puntos      []Sistema    `json:"puntos_mantenimiento"`
	RefPartes   []ParteRef   `json:"ref_partes"`
	Fuentes     []Fuente     `json:"fuentes"`
	Consumibles []Consumible `json:"consumibles_recomendados"`
	Chequeos    []Chequeo    `json:"chequeos_criticos"`
	// Suposiciones makes explicit what the model assumed (typical
	// intervals, missing manual data and so on).
	Suposiciones []string `json:"suposiciones"`
}

type Resumen struct {
	Marca                string `json:"marca"`
	Modelo               string `json:"modelo"`
	Horas                int    `json:"horas"`
	IntervaloMasCercanoH int    `json:"intervalo_mas_cercano_h"`
	RazonIntervalo       string `json:"razon_intervalo"`
	Confianza            string `json:"confianza"`
}

type Sistema struct {
	Sistema string `json:"sistema"`
	Items   []Item `json:"items"`
}

type Item struct {
	Tarea             string   `json:"tarea"`
	Tipo              string   `json:"tipo"`
	Prioridad         string   `json:"prioridad"`
	FrecuenciaH       int      `json:"frecuencia_h"`
	TiempoEstimadoMin int      `json:"tiempo_estimado_min"`
	Materiales        []string `json:"materiales"`
	Notas             string   `json:"notas"`
}

type ParteRef struct {
	Componente string `json:"componente"`
	Referencia string `json:"referencia"`
	Confianza  string `json:"confianza"`
}

// Fuente is a source citation. An empty URL signals the model had no real
// grounding for the claim.
type Fuente struct {
	Titulo string `json:"titulo"`
	URL    string `json:"url"`
}

type Consumible struct {
	Nombre        string `json:"nombre"`
	CantidadAprox string `json:"cantidad_aprox"`
}

type Chequeo struct {
	Alerta   string   `json:"alerta"`
	QueMirar []string `json:"que_mirar"`
	Accion   string   `json:"accion"`
}

// UnknownSystems lists system names that fall outside Systems. Violations
// are rendered as-is; callers may warn but never reject.
func (p *Plan) UnknownSystems() []string {
	known := make(map[string]struct{}, len(Systems))
	for _, s := range Systems {
		known[s] = struct{}{}
	}
	var out []string
	for _, b := range p.Puntos {
		if _, ok := known[b.Sistema]; !ok {
			out = append(out, b.Sistema)
		}
	}
	return out
}

// Indent serializes the plan the way the download artifact expects it:
// indented UTF-8 JSON.
func (p *Plan) Indent() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// ArtifactName derives the download filename from the request triple,
// spaces replaced with underscores.
func ArtifactName(marca, modelo string, horas int) string {
	name := fmt.Sprintf("mantenimiento_%s_%s_%dh.json", marca, modelo, horas)
	return strings.ReplaceAll(name, " ", "_")
}
