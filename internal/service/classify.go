package service

import (
	"context"
	"fmt"

	"github.com/statuswatch/backend/internal/model"
)

// StatusPredictor is the external pre-trained model behind a numeric-vector
// interface. Implementations own scaling and inference.
type StatusPredictor interface {
	Predict(ctx context.Context, features []float64) (int, error)
}

type ClassifyService struct {
	predictor StatusPredictor
}

func NewClassifyService(predictor StatusPredictor) *ClassifyService {
	return &ClassifyService{predictor: predictor}
}

// Classify maps a snapshot to NORMAL/WARNING/CRITICAL. Snapshot values are
// passed through untouched; range enforcement is the submitting UI's
// responsibility. A predictor failure is fatal to the request.
func (s *ClassifyService) Classify(ctx context.Context, snap model.MetricSnapshot) (model.SystemStatus, error) {
	class, err := s.predictor.Predict(ctx, snap.FeatureVector())
	if err != nil {
		return "", fmt.Errorf("status prediction failed: %w", err)
	}

	switch class {
	case 0:
		return model.StatusNormal, nil
	case 1:
		return model.StatusWarning, nil
	case 2:
		return model.StatusCritical, nil
	default:
		return "", fmt.Errorf("classifier returned unknown class %d", class)
	}
}
