package handler

import (
	"net/http"

	"cryptoquote/internal/domain"
)

type AssetView struct {
	Symbol     domain.AssetSymbol `json:"symbol" example:"BTC"`
	Name       string             `json:"name" example:"Bitcoin"`
	Stablecoin bool               `json:"stablecoin"`
	Decimals   int32              `json:"decimals" example:"8"`
}

type GetAssetsResponse struct {
	Fiat   string      `json:"fiat" example:"GHS"`
	Assets []AssetView `json:"assets"`
}

// GetAssets godoc
// @Summary List tradable assets
// @Description Assets offered on the buy/sell screen, in display order
// @Tags Rates
// @Produce json
// @Success 200 {object} GetAssetsResponse
// @Router /api/v1/assets [get]
func (h *Handler) GetAssets(w http.ResponseWriter, _ *http.Request) {
	assets := h.validator.SupportedAssets()
	res := GetAssetsResponse{Fiat: h.rates.LocalFiat(), Assets: make([]AssetView, 0, len(assets))}
	for _, a := range assets {
		res.Assets = append(res.Assets, AssetView{
			Symbol:     a.Symbol,
			Name:       a.Name,
			Stablecoin: a.Stablecoin,
			Decimals:   a.Decimals(),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
