package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

const (
	// analysisSystemPrompt define el rol del modelo para el análisis de stock.
	// La salida es markdown libre, no JSON: se muestra tal cual al usuario.
	analysisSystemPrompt = `Eres un asistente experto en gestión de inventario farmacéutico.
Recibirás el inventario completo de una farmacia en formato JSON.
Genera un análisis en español, en formato markdown, con estas secciones:

1. **Resumen general**: total de medicamentos y estado global del stock.
2. **Stock bajo**: medicamentos con menos de 20 unidades.
3. **Próximos a vencer**: medicamentos que caducan dentro de los próximos 90 días.
4. **Vencidos**: medicamentos ya caducados (requieren retiro inmediato).
5. **Recomendaciones**: acciones concretas de reposición o descarte.

Sé conciso y usa listas. No inventes medicamentos que no estén en los datos.`

	// chatSystemPrompt define el rol del modelo para preguntas libres.
	chatSystemPrompt = `Eres un asistente de inventario farmacéutico.
Recibirás el inventario actual y los movimientos recientes en formato JSON,
seguidos de una pregunta del usuario.
Responde en español, de forma breve y precisa, usando EXCLUSIVAMENTE los
datos proporcionados. Si la respuesta no está en los datos, dilo claramente.
No inventes cantidades, fechas ni medicamentos.`
)

// drugContext forma compacta de un medicamento para el prompt.
type drugContext struct {
	Name       string `json:"nombre"`
	Quantity   int    `json:"cantidad"`
	Unit       string `json:"unidad"`
	ExpiryDate string `json:"caducidad"`
	Location   string `json:"ubicacion,omitempty"`
	Notes      string `json:"notas,omitempty"`
}

// transactionContext forma compacta de un movimiento para el prompt.
type transactionContext struct {
	Date           string `json:"fecha"`
	Type           string `json:"tipo"`
	DrugName       string `json:"medicamento"`
	QuantityChange int    `json:"delta"`
	QuantityAfter  int    `json:"cantidadResultante"`
	Reason         string `json:"motivo"`
	User           string `json:"usuario"`
}

// inventoryJSON serializa el inventario en la forma compacta del prompt.
func inventoryJSON(drugs []entity.Drug) string {
	docs := make([]drugContext, 0, len(drugs))
	for _, d := range drugs {
		docs = append(docs, drugContext{
			Name:       d.Name,
			Quantity:   d.Quantity,
			Unit:       d.Unit,
			ExpiryDate: d.ExpiryDate.Format("2006-01-02"),
			Location:   d.Location,
			Notes:      d.Notes,
		})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// transactionsJSON serializa los movimientos recientes en la forma compacta del prompt.
func transactionsJSON(txs []entity.Transaction) string {
	docs := make([]transactionContext, 0, len(txs))
	for _, t := range txs {
		docs = append(docs, transactionContext{
			Date:           t.Timestamp.Format("2006-01-02 15:04"),
			Type:           t.Type,
			DrugName:       t.DrugName,
			QuantityChange: t.QuantityChange,
			QuantityAfter:  t.QuantityAfter,
			Reason:         t.Reason,
			User:           t.User,
		})
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// buildAnalysisPrompt arma el mensaje de usuario para el análisis de stock.
func buildAnalysisPrompt(drugs []entity.Drug) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fecha de hoy: %s\n\n", time.Now().Format("2006-01-02"))
	b.WriteString("Inventario actual:\n")
	b.WriteString(inventoryJSON(drugs))
	return b.String()
}

// buildChatPrompt arma el mensaje de usuario para una pregunta libre.
func buildChatPrompt(question string, drugs []entity.Drug, recent []entity.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Fecha de hoy: %s\n\n", time.Now().Format("2006-01-02"))
	b.WriteString("Inventario actual:\n")
	b.WriteString(inventoryJSON(drugs))
	b.WriteString("\n\nMovimientos recientes:\n")
	b.WriteString(transactionsJSON(recent))
	b.WriteString("\n\nPregunta del usuario: ")
	b.WriteString(question)
	return b.String()
}
