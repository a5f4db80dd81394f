package ports

import (
	"context"

	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// La aplicación solo conoce este contrato, no la implementación concreta.
// Ambas operaciones son sin estado: petición/respuesta sobre un snapshot
// del inventario; el contexto debe llevar un timeout para evitar bloqueos.
type LLMService interface {
	// GenerateStockAnalysis analiza la lista completa de medicamentos y
	// devuelve un resumen en texto libre (estilo markdown) de la situación
	// del stock: faltantes, próximos a vencer, vencidos y recomendaciones.
	GenerateStockAnalysis(ctx context.Context, drugs []entity.Drug) (string, error)

	// AnswerInventoryQuestion responde una pregunta del usuario usando
	// exclusivamente el inventario actual y los movimientos recientes
	// como contexto.
	AnswerInventoryQuestion(ctx context.Context, question string, drugs []entity.Drug, recent []entity.Transaction) (string, error)
}
