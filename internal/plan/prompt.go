package plan

import (
	"fmt"
	"strings"
)

// maxTareasPorSistema caps list growth so the answer stays inside the
// output-token ceiling; truncated JSON is the main failure mode.
const maxTareasPorSistema = 6

// BuildPrompt interpolates the request triple into the fixed Spanish
// workshop-chief template. The template is the whole contract: it pins the
// output schema, the system enumeration and the confidence labels.
func BuildPrompt(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Eres un jefe de taller especialista en tractores agrícolas.

Quiero que calcules el mantenimiento que corresponde con:
- Marca: %s
- Modelo: %s
- Horas actuales: %d
- Investiga la referencia de las partes a montar e indica tus fuentes.

Entregable (en ESPAÑOL) y SOLO en JSON válido (sin texto adicional), con esta estructura exacta:

{
  "resumen": {
    "marca": "...",
    "modelo": "...",
    "horas": 0,
    "intervalo_mas_cercano_h": 0,
    "razon_intervalo": "...",
    "confianza": "Alta | Media | Baja"
  },
  "puntos_mantenimiento": [
    {
      "sistema": "Motor y admisión",
      "items": [
        {
          "tarea": "Cambiar aceite motor",
          "tipo": "Sustitución | Inspección | Limpieza | Ajuste | Engrase",
          "prioridad": "Alta | Media | Baja",
          "frecuencia_h": 0,
          "tiempo_estimado_min": 0,
          "materiales": ["..."],
          "notas": "..."
        }
      ]
    }
  ],
  "ref_partes": [
    {
      "componente": "Filtro de aceite",
      "referencia": "...",
      "confianza": "Alta | Media | Baja"
    }
  ],
  "fuentes": [
    {
      "titulo": "...",
      "url": ""
    }
  ],
  "consumibles_recomendados": [
    {
      "nombre": "Aceite motor 15W-40",
      "cantidad_aprox": "..."
    }
  ],
  "chequeos_criticos": [
    {
      "alerta": "Sobrecalentamiento",
      "que_mirar": ["..."],
      "accion": "..."
    }
  ],
  "suposiciones": ["Si falta info, indica aquí lo supuesto (ej. intervalo típico 500h, etc.)"]
}

Reglas:
- Usa SOLO estos sistemas en "puntos_mantenimiento": %s.
- Máximo %d tareas por sistema.
- Si no sabes el intervalo exacto del modelo, usa intervalos típicos (250/500/1000/1500/2000h) y explícalo en "suposiciones".
- Incluye tareas realistas: filtros (aire/combustible/hidráulico), correas, refrigerante, engrase, niveles, holguras, fugas, diagnosis básica.
- Etiqueta los datos inciertos con "confianza": Alta|Media|Baja en vez de inventar cifras exactas; usa "aprox" y déjalo claro en notas/suposiciones.
- En "fuentes", si no tienes una referencia real deja "url" vacía.
`, in.Marca, in.Modelo, in.Horas, strings.Join(Systems, ", "), maxTareasPorSistema)

	if obj := strings.TrimSpace(in.Options.Objetivo); obj != "" {
		fmt.Fprintf(&b, "- Objetivo/estilo pedido por el usuario: %s\n", obj)
	}
	return b.String()
}

// buildRepairPrompt wraps malformed model output in the fixed corrective
// instruction for the single repair pass.
func buildRepairPrompt(malformed string) string {
	return `El siguiente JSON es inválido o está truncado. Devuelve SOLO JSON válido (sin explicación ni texto adicional).
Conserva la estructura y el contenido existentes y cierra todas las listas y objetos abiertos.

` + malformed
}
