package rate

import (
	"errors"
	"strings"

	"cryptoquote/internal/domain"
)

var (
	ErrDirectionRequired    = errors.New("direction is required")
	ErrDirectionUnsupported = errors.New("direction must be buy or sell")
	ErrAssetRequired        = errors.New("asset is required")
	ErrAssetUnsupported     = errors.New("asset not supported")
)

type RequestValidator struct {
	catalog *domain.Catalog
}

// ValidateQuoteRequest normalises and checks the direction and asset of a quote request.
func (v *RequestValidator) ValidateQuoteRequest(direction, asset string) (domain.Direction, domain.AssetSymbol, error) {
	if strings.TrimSpace(direction) == "" {
		return "", "", ErrDirectionRequired
	}
	dir, err := domain.ParseDirection(direction)
	if err != nil {
		return "", "", ErrDirectionUnsupported
	}
	symbol, err := v.ValidateAsset(asset)
	if err != nil {
		return "", "", err
	}
	return dir, symbol, nil
}

func (v *RequestValidator) ValidateAsset(asset string) (domain.AssetSymbol, error) {
	if strings.TrimSpace(asset) == "" {
		return "", ErrAssetRequired
	}
	symbol, err := v.catalog.ParseSymbol(asset)
	if err != nil {
		return "", ErrAssetUnsupported
	}
	return symbol, nil
}

func (v *RequestValidator) SupportedAssets() []domain.Asset {
	return v.catalog.Assets()
}

func NewValidator(catalog *domain.Catalog) *RequestValidator {
	return &RequestValidator{catalog: catalog}
}
