// Package alerts deriva alertas de stock bajo del catálogo. El motor es
// puramente derivado: no guarda estado de alertas, cada evaluación parte del
// catálogo actual. Una alerta desaparece sola cuando el stock se recupera.
package alerts

import (
	"context"

	"github.com/tu-usuario/ferreteria-api/internal/application/dto"
	"github.com/tu-usuario/ferreteria-api/internal/domain/entity"
)

// Catalogo es lo que el motor de alertas necesita del catálogo.
type Catalogo interface {
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}

// UseCase es el motor de alertas.
type UseCase struct {
	catalogo Catalogo
}

// NewUseCase construye el motor de alertas.
func NewUseCase(catalogo Catalogo) *UseCase {
	return &UseCase{catalogo: catalogo}
}

// Evaluate consulta el catálogo y devuelve las alertas vigentes, ordenadas
// por stock ascendente (agotados primero) y nombre. Un producto con
// stock == 0 es "critical"; con 0 < stock <= mínimo es "warning".
func (uc *UseCase) Evaluate(ctx context.Context) ([]dto.AlertDTO, error) {
	low, err := uc.catalogo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.AlertDTO, 0, len(low))
	for _, p := range low {
		alerts = append(alerts, dto.AlertDTO{
			ProductID:    p.ID,
			Code:         p.Code,
			Name:         p.Name,
			CurrentStock: p.Stock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
			Severity:     string(entity.SeverityFor(p.Stock)),
		})
	}
	return alerts, nil
}
