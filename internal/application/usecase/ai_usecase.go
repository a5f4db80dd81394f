package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/farmacia-stock/internal/application/ports"
	"github.com/tu-usuario/farmacia-stock/internal/domain"
	"github.com/tu-usuario/farmacia-stock/internal/domain/repository"
)

// recentTransactionsForContext cuántos movimientos recientes acompañan cada
// pregunta al modelo.
const recentTransactionsForContext = 50

// Mensajes de degradación: el asistente nunca propaga el fallo del proveedor
// al usuario como error; responde con un texto explicativo y no reintenta.
const (
	msgNoAPIKey = "El asistente de IA no está configurado: falta la clave del proveedor (GEMINI_API_KEY o ANTHROPIC_API_KEY)."
	msgUpstream = "No fue posible contactar al servicio de IA en este momento. Verifica la configuración e intenta de nuevo."
)

// AIUseCase orquesta el asistente de inventario asistido por IA. Arma el
// snapshot (inventario completo + últimos movimientos), aplica un timeout
// por llamada y degrada con un mensaje explicativo si el proveedor falla.
type AIUseCase struct {
	llm      ports.LLMService
	drugRepo repository.DrugRepository
	txRepo   repository.TransactionRepository
	timeout  time.Duration
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, drugRepo repository.DrugRepository, txRepo repository.TransactionRepository) *AIUseCase {
	return &AIUseCase{
		llm:      llm,
		drugRepo: drugRepo,
		txRepo:   txRepo,
		// Las llamadas a LLMs pueden demorar varios segundos.
		timeout: 20 * time.Second,
	}
}

// AnalyzeStock genera el análisis de situación del inventario completo.
func (uc *AIUseCase) AnalyzeStock(ctx context.Context) (string, error) {
	drugs, err := uc.drugRepo.List()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	answer, err := uc.llm.GenerateStockAnalysis(ctx, drugs)
	if err != nil {
		return uc.fallback(err), nil
	}
	return answer, nil
}

// Chat responde una pregunta del usuario con el inventario actual y los
// últimos 50 movimientos como contexto.
func (uc *AIUseCase) Chat(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", domain.ErrInvalidInput
	}

	drugs, err := uc.drugRepo.List()
	if err != nil {
		return "", err
	}
	recent, err := uc.txRepo.Recent(recentTransactionsForContext)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	answer, err := uc.llm.AnswerInventoryQuestion(ctx, question, drugs, recent)
	if err != nil {
		return uc.fallback(err), nil
	}
	return answer, nil
}

// fallback registra el fallo y devuelve el mensaje para el usuario.
func (uc *AIUseCase) fallback(err error) string {
	log.Warn().Err(err).Msg("llamada al servicio de IA fallida")
	if strings.Contains(err.Error(), "no configurad") {
		return msgNoAPIKey
	}
	return msgUpstream
}
