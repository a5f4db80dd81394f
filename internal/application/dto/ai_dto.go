package dto

// AIChatRequest pregunta en lenguaje natural sobre el inventario.
type AIChatRequest struct {
	Question string `json:"question"`
}

// AIResponse texto libre generado por el modelo (o el mensaje explicativo
// de degradación cuando no hay credencial o el upstream falla).
type AIResponse struct {
	Answer string `json:"answer"`
}
