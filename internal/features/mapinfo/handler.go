package mapinfo

import (
	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
)

// plaza is the default map center: Plaza San Martín, El Manantial.
var plaza = LatLng{Lat: -26.84808, Lng: -65.28191}

const (
	defaultZoom = 17
	tileURL     = "https://{s}.google.com/vt/lyrs=m&x={x}&y={y}&z={z}"
	attribution = "© Google"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// GetConfig godoc
// @Summary Community map configuration
// @Description Returns the map center, zoom, tile source and points of interest
// @Tags map
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Router /map/config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	response.Success(c, MapConfig{
		Center:      plaza,
		Zoom:        defaultZoom,
		TileURL:     tileURL,
		Attribution: attribution,
		Markers: []Marker{
			{
				ID:          "plaza-san-martin",
				Name:        "Plaza San Martín",
				Description: "El Manantial, Tucumán",
				Position:    plaza,
			},
		},
	})
}
