package handlers

import (
	"net/http"

	"github.com/adspaceng/ratecard-wallet/internal/walletapi"
)

// ServiceName is reported by the version endpoint
const ServiceName = "ratecard-server"

// HandleVersion godoc
//
//	@Summary		Get version information
//	@Description	Returns the version and build information for the service
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	VersionResponse	"Version information"
//	@Router			/version [get]
func HandleVersion(version, buildTime, commit string) http.HandlerFunc {
	response := VersionResponse{
		Version:   version,
		BuildTime: buildTime,
		Commit:    commit,
		Service:   ServiceName,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		walletapi.RespondWithJSONPayload(w, http.StatusOK, response)
	}
}

type VersionResponse struct {
	Version   string `json:"version" example:"1.0.0"`
	BuildTime string `json:"build_time" example:"2024-01-28T10:00:00Z"`
	Commit    string `json:"commit,omitempty" example:"3f2c1ab"`
	Service   string `json:"service" example:"ratecard-server"`
}
