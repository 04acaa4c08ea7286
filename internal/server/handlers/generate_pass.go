package handlers

// generate_pass.go implements the POST /generate-pass endpoint

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/adspaceng/ratecard-wallet/internal/logger"
	"github.com/adspaceng/ratecard-wallet/internal/ratecard"
	"github.com/adspaceng/ratecard-wallet/internal/walletapi"
)

// PassGenerator creates signed passes for validated requests
type PassGenerator interface {
	Generate(ctx context.Context, req ratecard.PassRequest) (*ratecard.GeneratedPass, error)
}

// GeneratePassHandler handles POST /generate-pass requests
type GeneratePassHandler struct {
	generator   PassGenerator
	exposeTrace bool
}

// NewGeneratePassHandler creates the handler. When exposeTrace is true, 500 responses include the error stack trace.
func NewGeneratePassHandler(generator PassGenerator, exposeTrace bool) *GeneratePassHandler {
	return &GeneratePassHandler{
		generator:   generator,
		exposeTrace: exposeTrace,
	}
}

// HandleGeneratePass godoc
//
//	@Summary		Generate a rate card pass
//	@Description	Creates a signed Apple Wallet pass for a rate card profile.
//	@Description
//	@Description	The pass barcode links to the public profile page (`<profile url base><username>`).
//	@Description	Missing profile values use defaults: username `demo`, industry `Professional Services`
//	@Description	and a standard bio. `profile.name` overrides the name shown on the front of the pass.
//	@Description
//	@Description	A body that is not a JSON object is treated as an empty object and reported as missing fields.
//	@Tags			Passes
//	@Accept			json
//	@Produce		application/vnd.apple.pkpass
//	@Produce		json
//	@Param			request	body		walletapi.GeneratePassRequest	true	"Rate card profile"
//	@Success		200		{file}		binary							"Signed .pkpass archive"
//	@Failure		400		{object}	walletapi.ErrorResponse			"Missing required fields"
//	@Failure		413		{object}	walletapi.ErrorResponse			"Request body too large"
//	@Failure		500		{object}	walletapi.ErrorResponse			"Failed to generate pass"
//	@Router			/generate-pass [post]
func (h *GeneratePassHandler) HandleGeneratePass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqLogger := logger.ContextRequestLogger(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			walletapi.RespondWithErrorResponse(w, r, walletapi.NewRequestTooLargeError(err.Error()), false)
			return
		}
		// an unreadable body is handled like a malformed one
		reqLogger.Warn("Failed to read request body", slog.String("error", err.Error()))
		body = nil
	}

	req := ratecard.ParseRequest(body)

	pass, err := h.generator.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, ratecard.ErrMissingFields) {
			walletapi.RespondWithErrorResponse(w, r, walletapi.WrapMissingFieldsError(err, "invalid pass request"), false)
			return
		}
		walletapi.RespondWithErrorResponse(w, r, walletapi.WrapGenerationError(err), h.exposeTrace)
		return
	}

	reqLogger.Info("Pass generated",
		slog.String("serial_number", pass.SerialNumber),
		slog.Int("archive_bytes", len(pass.Archive)),
	)

	walletapi.RespondWithPass(w, pass.Filename, pass.Archive)
}
